package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riddlewars/riddlewars-cli/internal/model"
)

func TestConfirmSharesBufferedReaderWithCaller(t *testing.T) {
	var buf bytes.Buffer
	in := bufio.NewReader(strings.NewReader("hint\ny\n"))
	view := newTerminalView(NewOutputTo("text", &buf, &buf), in, false, false)

	// The caller's line loop consumes a line first; the confirmation prompt
	// must still see the next one instead of hitting EOF behind a second
	// buffer.
	line, err := in.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "hint\n", line)

	assert.True(t, view.Confirm("Use a hint?"))
	assert.Contains(t, buf.String(), "Use a hint? [y/N]: ")
}

func TestConfirmAnswers(t *testing.T) {
	confirm := func(input string) bool {
		var buf bytes.Buffer
		view := newTerminalView(NewOutputTo("text", &buf, &buf), strings.NewReader(input), false, false)
		return view.Confirm("Sure?")
	}

	assert.True(t, confirm("y\n"))
	assert.True(t, confirm("YES\n"))
	assert.False(t, confirm("n\n"))
	assert.False(t, confirm(""))
}

func TestConfirmAutoYesReadsNothing(t *testing.T) {
	var buf bytes.Buffer
	in := bufio.NewReader(strings.NewReader("piano\n"))
	view := newTerminalView(NewOutputTo("text", &buf, &buf), in, true, false)

	assert.True(t, view.Confirm("Sure?"))

	// The answer line is still there for the caller
	line, err := in.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "piano\n", line)
}

func TestRenderUserWritesStatusToOutput(t *testing.T) {
	var buf bytes.Buffer
	view := newTerminalView(NewOutputTo("text", &buf, &buf), strings.NewReader(""), false, true)

	view.RenderUser(&model.User{Coins: 10, Streak: 2})

	assert.Equal(t, "Coins: 10 | Streak: 2\n", buf.String())
}

func TestRenderUserQuietWithoutStatus(t *testing.T) {
	var buf bytes.Buffer
	view := newTerminalView(NewOutputTo("text", &buf, &buf), strings.NewReader(""), false, false)

	view.RenderUser(&model.User{Coins: 10})
	view.RenderUser(nil)

	assert.Empty(t, buf.String())
}
