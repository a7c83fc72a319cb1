package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/riddlewars/riddlewars-cli/internal/model"
	"github.com/riddlewars/riddlewars-cli/internal/session"
)

// terminalView renders session state to the terminal and doubles as the
// controller's Dialogs and URLOpener. Checkout URLs are printed rather than
// launched; the user opens them in their own browser.
type terminalView struct {
	out *Output
	in  *bufio.Reader

	// autoConfirm answers every confirmation prompt with yes (--yes).
	autoConfirm bool

	// showStatus prints a coins/streak line whenever the cached user is
	// refreshed. Enabled in interactive play, too noisy for one-shot
	// commands.
	showStatus bool
}

var _ session.View = (*terminalView)(nil)
var _ session.Dialogs = (*terminalView)(nil)
var _ session.URLOpener = (*terminalView)(nil)

func newTerminalView(out *Output, in io.Reader, autoConfirm, showStatus bool) *terminalView {
	// bufio.NewReader returns in unchanged when it is already a
	// *bufio.Reader, so interactive callers share one buffered reader
	// between the view's prompts and their own line loop. Two buffered
	// readers over the same stream would steal each other's input.
	return &terminalView{
		out:         out,
		in:          bufio.NewReader(in),
		autoConfirm: autoConfirm,
		showStatus:  showStatus,
	}
}

// ShowScreen and ShowOverlay are no-ops: the terminal has no persistent
// chrome, so screen changes only matter through what gets printed next.
func (v *terminalView) ShowScreen(model.Screen) {}

func (v *terminalView) ShowOverlay(model.Overlay) {}

func (v *terminalView) RenderUser(user *model.User) {
	if !v.showStatus || user == nil {
		return
	}
	v.out.PrintMessage(fmt.Sprintf("Coins: %d | Streak: %d", user.Coins, user.Streak))
}

func (v *terminalView) ShowRiddle(riddle model.Riddle, progress session.Progress) {
	v.out.Print(RiddleOutput{
		Question: riddle.Question,
		Index:    riddle.Index,
		Total:    riddle.Total,
		Progress: progress.Text(),
		Width:    progress.Width(),
	})
}

func (v *terminalView) ShowRiddleMessage(msg string) {
	v.out.PrintMessage(msg)
}

func (v *terminalView) RenderLeaderboard(entries []model.LeaderboardEntry) {
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}
	v.out.Print(entries)
}

func (v *terminalView) Confirm(prompt string) bool {
	if v.autoConfirm {
		return true
	}
	fmt.Fprintf(v.out.w, "%s [y/N]: ", prompt)
	line, err := v.in.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (v *terminalView) Notify(msg string) {
	v.out.PrintMessage(msg)
}

func (v *terminalView) Open(url string) error {
	v.out.PrintMessage("Open this link to complete payment: " + url)
	return nil
}
