package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/riddlewars/riddlewars-cli/internal/backend"
	"github.com/riddlewars/riddlewars-cli/internal/model"
)

// User-facing messages. Cost figures appear only in confirmation prompt
// text; actual costs and scores are backend-determined.
const (
	msgSignupFailed    = "Signup failed. Try again."
	msgNoRiddles       = "No riddles available."
	msgPackFinished    = "You've finished this pack or something went wrong."
	msgSubmitError     = "Error submitting answer."
	msgHintConfirm     = "Use a hint for 10 coins? This reduces the riddle score from 10 to 7."
	msgHintUnavailable = "Hint not available."
	msgNotEnoughCoins  = "Not enough coins."
	msgUnlockConfirm   = "Unlock the full pack now? This will open payment."
	msgUnlockOpened    = "Complete payment in the opened window. After payment, return here and start again."
	msgUnlockFailed    = "Failed to initiate payment."
	msgCoinsOpened     = "Payment window opened for coin purchase."
	msgCoinsFailed     = "Could not start purchase."
)

// timeNow is a test seam.
var timeNow = time.Now

// Config holds the controller's collaborators and the resolved user
// identifier.
type Config struct {
	Backend *backend.Client
	View    View
	Dialogs Dialogs
	Opener  URLOpener
	Logger  *slog.Logger

	// UserID is the identifier resolved by the caller (platform-supplied id
	// or a previously saved one). When empty the controller generates a
	// timestamp-based identifier once, at construction, and holds it for the
	// session's lifetime.
	UserID model.UserID
}

// Controller owns all mutable session state and drives the backend calls for
// every user-initiated action. It is the single place state is mutated;
// screens and overlays are rendered through the injected View.
//
// Backend failures are rendered through the View/Dialogs and leave the
// session in its previous or a degraded-but-stable state; they are never
// returned as errors. Only local precondition violations (ErrBusy,
// ErrNameRequired, ErrAnswerRequired, ErrNoRiddle) surface to the caller,
// and those never issue a network call.
type Controller struct {
	backend *backend.Client
	view    View
	dialogs Dialogs
	opener  URLOpener
	logger  *slog.Logger
	userID  model.UserID

	mu      sync.Mutex
	busy    bool
	user    *model.User
	sess    model.Session
	screen  model.Screen
	overlay model.Overlay
}

// NewController creates a session controller with default session state.
func NewController(cfg Config) *Controller {
	userID := cfg.UserID
	if userID == "" {
		userID = model.UserID(fmt.Sprintf("%d", timeNow().UnixMilli()))
	}
	return &Controller{
		backend: cfg.Backend,
		view:    cfg.View,
		dialogs: cfg.Dialogs,
		opener:  cfg.Opener,
		logger:  cfg.Logger,
		userID:  userID,
		sess:    model.NewSession(),
		screen:  model.ScreenSignup,
	}
}

// UserID returns the identifier resolved at construction.
func (c *Controller) UserID() model.UserID {
	return c.userID
}

// User returns a copy of the cached user, or nil before Init has run.
func (c *Controller) User() *model.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Session returns a copy of the current session state.
func (c *Controller) Session() model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// Screen returns the active primary screen.
func (c *Controller) Screen() model.Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

// Overlay returns the active overlay, or OverlayNone.
func (c *Controller) Overlay() model.Overlay {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlay
}

// begin acquires the single in-flight action slot. Overlapping actions are
// rejected rather than queued.
func (c *Controller) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
}

// Init resolves the initial screen: Game when the backend knows the user by
// name, Signup otherwise.
func (c *Controller) Init(ctx context.Context) error {
	if !c.begin() {
		return model.ErrBusy
	}
	defer c.end()

	c.loadUser(ctx)

	c.mu.Lock()
	named := c.user != nil && c.user.Name != ""
	c.mu.Unlock()

	if named {
		c.setScreen(model.ScreenGame)
	} else {
		c.setScreen(model.ScreenSignup)
	}
	return nil
}

// Register submits the signup form. An empty (or whitespace-only) name is
// rejected locally without a network call.
func (c *Controller) Register(ctx context.Context, reg model.Registration) error {
	reg.Name = strings.TrimSpace(reg.Name)
	if reg.Name == "" {
		return model.ErrNameRequired
	}
	if !c.begin() {
		return model.ErrBusy
	}
	defer c.end()

	status, err := c.backend.Register(ctx, c.userID, reg)
	if err != nil || (status != backend.StatusRegistered && status != backend.StatusAlreadyRegistered) {
		c.logger.Warn("registration failed",
			slog.String("user_id", string(c.userID)),
			slog.String("status", status),
			slog.Any("error", err),
		)
		c.dialogs.Notify(msgSignupFailed)
		return nil
	}

	c.loadUser(ctx)
	c.setScreen(model.ScreenGame)
	return nil
}

// SkipSignup moves to the game screen without registering.
func (c *Controller) SkipSignup() {
	c.setScreen(model.ScreenGame)
}

// SelectPack changes the active pack without fetching anything. The riddle
// state resets when the next Start succeeds.
func (c *Controller) SelectPack(pack string) {
	if pack == "" {
		return
	}
	c.mu.Lock()
	c.sess.Pack = pack
	c.mu.Unlock()
}

// Start fetches the first (or current) riddle of the pack and displays it.
// An empty pack keeps the currently selected one.
func (c *Controller) Start(ctx context.Context, pack string) error {
	if !c.begin() {
		return model.ErrBusy
	}
	defer c.end()

	c.mu.Lock()
	if pack != "" {
		c.sess.Pack = pack
	}
	pack = c.sess.Pack
	c.mu.Unlock()

	riddle, err := c.backend.GetRiddle(ctx, c.userID, pack, nil)
	if err != nil {
		c.view.ShowRiddleMessage(errText(err, msgNoRiddles))
		return nil
	}

	c.mu.Lock()
	c.sess.RiddleIndex = riddle.Index
	c.sess.RiddlesCount = riddle.Total
	c.sess.CurrentRiddleID = riddle.ID
	c.sess.HintUsed = false
	progress := Progress{Index: c.sess.RiddleIndex, Total: c.sess.RiddlesCount}
	c.mu.Unlock()

	c.view.ShowRiddle(*riddle, progress)
	return nil
}

// SubmitAnswer scores the trimmed answer against the displayed riddle. On a
// scored verdict the user is notified, the next riddle is fetched
// automatically and the cached user is refreshed before control returns.
func (c *Controller) SubmitAnswer(ctx context.Context, answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return model.ErrAnswerRequired
	}

	if !c.begin() {
		return model.ErrBusy
	}
	defer c.end()

	c.mu.Lock()
	riddleID := c.sess.CurrentRiddleID
	usedHint := c.sess.HintUsed
	c.mu.Unlock()
	if riddleID == "" {
		return model.ErrNoRiddle
	}

	result, err := c.backend.SubmitAnswer(ctx, c.userID, riddleID, answer, usedHint)
	if err != nil {
		c.logger.Warn("answer submission failed", slog.Any("error", err))
		c.dialogs.Notify(msgSubmitError)
		return nil
	}

	if result.Correct {
		c.dialogs.Notify(fmt.Sprintf("Correct! +%d", result.Score))
	} else {
		c.dialogs.Notify(fmt.Sprintf("Wrong. +%d", result.Score))
	}

	c.advance(ctx)
	c.refreshUser(ctx)
	return nil
}

// advance fetches the riddle after the current one. Runs inside the caller's
// busy slot.
func (c *Controller) advance(ctx context.Context) {
	c.mu.Lock()
	pack := c.sess.Pack
	next := c.sess.RiddleIndex + 1
	c.mu.Unlock()

	riddle, err := c.backend.GetRiddle(ctx, c.userID, pack, &next)
	if err != nil {
		// No riddle is on screen anymore; index and total stay for the
		// progress display.
		c.mu.Lock()
		c.sess.CurrentRiddleID = ""
		c.mu.Unlock()
		c.view.ShowRiddleMessage(errText(err, msgPackFinished))
		return
	}

	c.mu.Lock()
	c.sess.RiddleIndex = riddle.Index
	if riddle.Total > 0 {
		c.sess.RiddlesCount = riddle.Total
	}
	c.sess.CurrentRiddleID = riddle.ID
	c.sess.HintUsed = false
	progress := Progress{Index: c.sess.RiddleIndex, Total: c.sess.RiddlesCount}
	c.mu.Unlock()

	c.view.ShowRiddle(*riddle, progress)
}

// UseHint asks for confirmation, charges the hint against the displayed
// riddle, then fetches and shows the hint text.
func (c *Controller) UseHint(ctx context.Context) error {
	c.mu.Lock()
	riddleID := c.sess.CurrentRiddleID
	c.mu.Unlock()
	if riddleID == "" {
		return model.ErrNoRiddle
	}

	if !c.dialogs.Confirm(msgHintConfirm) {
		return nil
	}

	if !c.begin() {
		return model.ErrBusy
	}
	defer c.end()

	// The confirmation wait is unbounded; the riddle may have advanced or
	// disappeared while the prompt was open. Charge whatever is on screen
	// now, so HintUsed and the charge always refer to the same riddle.
	c.mu.Lock()
	riddleID = c.sess.CurrentRiddleID
	c.mu.Unlock()
	if riddleID == "" {
		return model.ErrNoRiddle
	}

	if err := c.backend.UseHint(ctx, c.userID, riddleID); err != nil {
		c.dialogs.Notify(errText(err, msgNotEnoughCoins))
		return nil
	}

	hint, err := c.backend.GetHint(ctx, riddleID)
	if err != nil {
		c.dialogs.Notify(msgHintUnavailable)
		return nil
	}

	c.mu.Lock()
	c.sess.HintUsed = true
	c.mu.Unlock()

	c.dialogs.Notify("Hint: " + hint)
	c.refreshUser(ctx)
	return nil
}

// UnlockPack asks for confirmation, then opens the backend-provided checkout
// URL for unlocking the active pack.
func (c *Controller) UnlockPack(ctx context.Context) error {
	if !c.dialogs.Confirm(msgUnlockConfirm) {
		return nil
	}

	if !c.begin() {
		return model.ErrBusy
	}
	defer c.end()

	c.mu.Lock()
	pack := c.sess.Pack
	c.mu.Unlock()

	checkoutURL, err := c.backend.BuyUnlock(ctx, c.userID, pack)
	if err != nil {
		c.dialogs.Notify(msgUnlockFailed)
		return nil
	}

	if err := c.opener.Open(checkoutURL); err != nil {
		c.logger.Warn("failed to open checkout URL", slog.Any("error", err))
		c.dialogs.Notify(msgUnlockFailed)
		return nil
	}
	c.dialogs.Notify(msgUnlockOpened)
	return nil
}

// BuyCoins opens the checkout URL for the fixed coin pack.
func (c *Controller) BuyCoins(ctx context.Context) error {
	if !c.begin() {
		return model.ErrBusy
	}
	defer c.end()

	checkoutURL, err := c.backend.BuyCoins(ctx, c.userID, model.CoinPack)
	if err != nil {
		c.dialogs.Notify(msgCoinsFailed)
		return nil
	}

	if err := c.opener.Open(checkoutURL); err != nil {
		c.logger.Warn("failed to open checkout URL", slog.Any("error", err))
		c.dialogs.Notify(msgCoinsFailed)
		return nil
	}
	c.dialogs.Notify(msgCoinsOpened)
	return nil
}

// ShowLeaderboard fetches the ranked list and opens the leaderboard overlay.
// A failed fetch renders the empty state.
func (c *Controller) ShowLeaderboard(ctx context.Context) error {
	if !c.begin() {
		return model.ErrBusy
	}
	defer c.end()

	entries, err := c.backend.Leaderboard(ctx)
	if err != nil {
		c.logger.Warn("leaderboard fetch failed", slog.Any("error", err))
		entries = nil
	}

	c.view.RenderLeaderboard(entries)
	c.setOverlay(model.OverlayLeaderboard)
	return nil
}

// ShowProfile opens the profile overlay over the cached user. No network
// call is made.
func (c *Controller) ShowProfile() {
	c.mu.Lock()
	user := c.user
	c.mu.Unlock()
	c.view.RenderUser(user)
	c.setOverlay(model.OverlayProfile)
}

// CloseOverlay hides whichever overlay is open.
func (c *Controller) CloseOverlay() {
	c.setOverlay(model.OverlayNone)
}

// loadUser replaces the cached user with the backend's record, or with a
// zero-balance placeholder when the backend cannot supply one. Never fails.
func (c *Controller) loadUser(ctx context.Context) {
	user, err := c.backend.GetUser(ctx, c.userID)
	if err != nil {
		c.logger.Info("no backend user record, using placeholder",
			slog.String("user_id", string(c.userID)),
			slog.Any("error", err),
		)
		user = model.PlaceholderUser(c.userID)
	}

	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	c.view.RenderUser(user)
}

// refreshUser re-fetches the cached user after a mutating action. Unlike
// loadUser it keeps the existing cache on failure.
func (c *Controller) refreshUser(ctx context.Context) {
	user, err := c.backend.GetUser(ctx, c.userID)
	if err != nil {
		c.logger.Warn("user refresh failed", slog.Any("error", err))
		return
	}

	c.mu.Lock()
	c.user = user
	c.mu.Unlock()
	c.view.RenderUser(user)
}

func (c *Controller) setScreen(screen model.Screen) {
	c.mu.Lock()
	changed := c.screen != screen
	c.screen = screen
	c.mu.Unlock()
	if changed {
		c.view.ShowScreen(screen)
	}
}

func (c *Controller) setOverlay(overlay model.Overlay) {
	c.mu.Lock()
	c.overlay = overlay
	c.mu.Unlock()
	c.view.ShowOverlay(overlay)
}

// errText extracts a displayable message from a backend failure: the
// application-level error code when the backend supplied one, the generic
// fallback otherwise.
func errText(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		return apiErr.Code
	}
	return fallback
}
