package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/riddlewars/riddlewars-cli/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter writing to stdout/stderr
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout, errW: os.Stderr}
}

// NewOutputTo creates an Output writing to the given writers
func NewOutputTo(format string, w, errW io.Writer) *Output {
	return &Output{format: format, w: w, errW: errW}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errW, string(data))
	} else {
		fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *model.User:
		o.printUser(v)
	case model.User:
		o.printUser(&v)
	case RiddleOutput:
		o.printRiddle(v)
	case []model.LeaderboardEntry:
		o.printLeaderboard(v)
	case HealthOutput:
		fmt.Fprintln(o.w, v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// RiddleOutput is the displayed riddle plus pack progress
type RiddleOutput struct {
	Question string `json:"question"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Progress string `json:"progress"`
	Width    string `json:"width"`
}

// HealthOutput is the backend's banner text
type HealthOutput struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u *model.User) {
	if u == nil {
		fmt.Fprintln(o.w, "No user loaded")
		return
	}
	name := u.Name
	if name == "" {
		name = "(guest)"
	}
	fmt.Fprintf(o.w, "Name: %s\n", name)
	fmt.Fprintf(o.w, "User ID: %s\n", u.ID)
	if u.Phone != "" {
		fmt.Fprintf(o.w, "Phone: %s\n", u.Phone)
	}
	if u.Bank != "" {
		fmt.Fprintf(o.w, "Bank: %s\n", u.Bank)
	}
	if u.AccountNumber != "" {
		fmt.Fprintf(o.w, "Account: %s\n", u.AccountNumber)
	}
	fmt.Fprintf(o.w, "Coins: %d\n", u.Coins)
	fmt.Fprintf(o.w, "Streak: %d\n", u.Streak)
	fmt.Fprintf(o.w, "Score: %d\n", u.Score)
}

func (o *Output) printRiddle(r RiddleOutput) {
	fmt.Fprintf(o.w, "Riddle %s\n", r.Progress)
	fmt.Fprintln(o.w, r.Question)
}

func (o *Output) printLeaderboard(entries []model.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(o.w, "No leaderboard yet")
		return
	}
	for i, e := range entries {
		fmt.Fprintf(o.w, "%d. %s  %s  %d\n", i+1, e.DisplayName(), e.UserID, e.TotalScore)
	}
}
