package session

import "github.com/riddlewars/riddlewars-cli/internal/model"

// View receives render updates from the controller. Implementations own the
// actual presentation (terminal output, test recorder); the controller only
// decides what is shown, never how.
type View interface {
	// ShowScreen is called whenever the primary screen changes.
	ShowScreen(screen model.Screen)

	// ShowOverlay is called whenever the overlay changes, including to
	// OverlayNone when an overlay closes.
	ShowOverlay(overlay model.Overlay)

	// RenderUser refreshes the displayed coin balance, streak and profile
	// fields from the cached user.
	RenderUser(user *model.User)

	// ShowRiddle displays a riddle and the progress through the pack.
	ShowRiddle(riddle model.Riddle, progress Progress)

	// ShowRiddleMessage displays error or status text in place of a riddle.
	ShowRiddleMessage(msg string)

	// RenderLeaderboard displays the ranked list in backend order. An empty
	// list renders the empty-state message.
	RenderLeaderboard(entries []model.LeaderboardEntry)
}

// Dialogs is the confirmation/notification abstraction that replaces the
// original blocking alert/confirm primitives.
type Dialogs interface {
	// Confirm asks the user a yes/no question and returns their choice.
	Confirm(prompt string) bool

	// Notify shows the user a message.
	Notify(msg string)
}

// URLOpener opens a checkout URL in a new browsing context.
type URLOpener interface {
	Open(url string) error
}
