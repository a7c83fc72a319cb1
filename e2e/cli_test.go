package e2e_test

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riddlewars/riddlewars-cli/internal/model"
	"github.com/riddlewars/riddlewars-cli/internal/stubserver"
	"github.com/riddlewars/riddlewars-cli/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	idFile     string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "riddlewars-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/riddlewars")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		idFile:     filepath.Join(t.TempDir(), "user_id"),
	}
}

// run executes the CLI with JSON output.
func (r *cliRunner) run(args ...string) (string, error) {
	return r.runIn("", append(r.baseArgs("json"), args...)...)
}

// runText executes the CLI with text output, feeding stdin for interactive
// commands.
func (r *cliRunner) runText(stdin string, args ...string) (string, error) {
	return r.runIn(stdin, append(r.baseArgs("text"), args...)...)
}

func (r *cliRunner) baseArgs(format string) []string {
	return []string{
		"--server", r.serverURL,
		"--id-file", r.idFile,
		"--output", format,
		"--yes",
	}
}

// runPrompted executes the CLI with text output and without --yes, so
// confirmation prompts read their answers from stdin.
func (r *cliRunner) runPrompted(stdin string, args ...string) (string, error) {
	base := []string{
		"--server", r.serverURL,
		"--id-file", r.idFile,
		"--output", "text",
	}
	return r.runIn(stdin, append(base, args...)...)
}

func (r *cliRunner) runIn(stdin string, args ...string) (string, error) {
	cmd := exec.Command(r.binaryPath, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// userID reads the identifier the CLI saved for itself.
func (r *cliRunner) userID(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(r.idFile)
	require.NoError(t, err)
	return string(data)
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// startTestServer runs the stub backend in-process.
func startTestServer(t *testing.T) (*stubserver.Store, string) {
	t.Helper()

	store := stubserver.NewStore()
	srv := httptest.NewServer(stubserver.New(store, testutil.NopLogger()).Handler())
	t.Cleanup(srv.Close)
	return store, srv.URL
}

type riddleResponse struct {
	Question string `json:"question"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Progress string `json:"progress"`
	Width    string `json:"width"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	_, url := startTestServer(t)
	cli := newCLIRunner(t, url)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "RiddleWars backend is live!", resp.Status)
}

func TestCLI_SignupAndProfile(t *testing.T) {
	_, url := startTestServer(t)
	cli := newCLIRunner(t, url)

	output, err := cli.run("signup", "--name", "Alice", "--phone", "0800", "--bank", "First Bank", "--account", "0123456789")
	require.NoError(t, err, "output: %s", output)

	var user model.User
	require.NoError(t, json.Unmarshal([]byte(output), &user))
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, 0, user.Coins)

	// The generated id was saved and is reused on the next invocation
	savedID := cli.userID(t)
	assert.Equal(t, model.UserID(savedID), user.ID)

	output, err = cli.run("profile")
	require.NoError(t, err, "output: %s", output)

	var profile model.User
	require.NoError(t, json.Unmarshal([]byte(output), &profile))
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, "Alice", profile.Name)
}

func TestCLI_SignupRequiresName(t *testing.T) {
	_, url := startTestServer(t)
	cli := newCLIRunner(t, url)

	output, err := cli.run("signup")
	require.Error(t, err)
	assert.Contains(t, output, "name")
}

func TestCLI_StartShowsFirstRiddle(t *testing.T) {
	_, url := startTestServer(t)
	cli := newCLIRunner(t, url)

	output, err := cli.run("signup", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("start")
	require.NoError(t, err, "output: %s", output)

	var riddle riddleResponse
	require.NoError(t, json.Unmarshal([]byte(output), &riddle))
	assert.Equal(t, "What has keys but can't open locks?", riddle.Question)
	assert.Equal(t, "1 / 5", riddle.Progress)
	assert.Equal(t, "20%", riddle.Width)
}

func TestCLI_PlaySession(t *testing.T) {
	store, url := startTestServer(t)
	cli := newCLIRunner(t, url)

	output, err := cli.run("signup", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	store.AddCoins(model.UserID(cli.userID(t)), 20)

	stdin := strings.Join([]string{
		"piano",
		"hint",
		"coin",
		"exit",
	}, "\n") + "\n"

	output, err = cli.runText(stdin, "play")
	require.NoError(t, err, "output: %s", output)

	assert.Contains(t, output, "What has keys but can't open locks?")
	assert.Contains(t, output, "Correct! +10")
	assert.Contains(t, output, "What has a head and a tail but no body?")
	assert.Contains(t, output, "Hint: You spend it.")
	// The hinted solve scores 7
	assert.Contains(t, output, "Correct! +7")
	// The status line reflects the refreshed user
	assert.Contains(t, output, "Coins: 10 | Streak: 2")

	user, ok := store.GetUser(model.UserID(cli.userID(t)))
	require.True(t, ok)
	assert.Equal(t, 17, user.Score)
}

func TestCLI_PlayHintConfirmationReadsStdin(t *testing.T) {
	store, url := startTestServer(t)
	cli := newCLIRunner(t, url)

	output, err := cli.run("signup", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	store.AddCoins(model.UserID(cli.userID(t)), 20)

	// Without --yes the "y" line answers the hint prompt; it must not be
	// swallowed or dispatched as an answer.
	stdin := strings.Join([]string{
		"hint",
		"y",
		"piano",
		"exit",
	}, "\n") + "\n"

	output, err = cli.runPrompted(stdin, "play")
	require.NoError(t, err, "output: %s", output)

	assert.Contains(t, output, "[y/N]")
	assert.Contains(t, output, "Hint: It makes music.")
	assert.Contains(t, output, "Correct! +7")
	assert.NotContains(t, output, "Wrong.")

	user, ok := store.GetUser(model.UserID(cli.userID(t)))
	require.True(t, ok)
	assert.Equal(t, 7, user.Score)
	assert.Equal(t, 10, user.Coins)
}

func TestCLI_PlayHintDeclinedKeepsCoins(t *testing.T) {
	store, url := startTestServer(t)
	cli := newCLIRunner(t, url)

	output, err := cli.run("signup", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)
	store.AddCoins(model.UserID(cli.userID(t)), 20)

	stdin := "hint\nn\npiano\nexit\n"
	output, err = cli.runPrompted(stdin, "play")
	require.NoError(t, err, "output: %s", output)

	assert.NotContains(t, output, "Hint:")
	assert.Contains(t, output, "Correct! +10")

	user, ok := store.GetUser(model.UserID(cli.userID(t)))
	require.True(t, ok)
	assert.Equal(t, 20, user.Coins)
}

func TestCLI_PlayAsGuest(t *testing.T) {
	_, url := startTestServer(t)
	cli := newCLIRunner(t, url)

	output, err := cli.runText("exit\n", "play")
	require.NoError(t, err, "output: %s", output)

	assert.Contains(t, output, "playing as guest")
	assert.Contains(t, output, "What has keys but can't open locks?")
}

func TestCLI_Leaderboard(t *testing.T) {
	store, url := startTestServer(t)
	cli := newCLIRunner(t, url)

	output, err := cli.runText("", "leaderboard")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "No leaderboard yet")

	store.RegisterUser("7", "ann", "", "", "")
	_, _, code := store.SubmitAnswer("7", "1", "piano", false)
	require.Empty(t, code)

	output, err = cli.runText("", "leaderboard")
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "1. ann  7  10")
}

func TestCLI_UnlockOpensCheckout(t *testing.T) {
	_, url := startTestServer(t)
	cli := newCLIRunner(t, url)

	output, err := cli.runText("", "unlock", "--pack", "premium")
	require.NoError(t, err, "output: %s", output)

	assert.Contains(t, output, "Open this link to complete payment: https://pay.example.test/checkout/unlock/premium/")
	assert.Contains(t, output, "Complete payment in the opened window")
}

func TestCLI_BuyCoinsOpensCheckout(t *testing.T) {
	_, url := startTestServer(t)
	cli := newCLIRunner(t, url)

	output, err := cli.runText("", "buy-coins")
	require.NoError(t, err, "output: %s", output)

	assert.Contains(t, output, "checkout/coins/50_coins/")
	assert.Contains(t, output, "Payment window opened for coin purchase.")
}
