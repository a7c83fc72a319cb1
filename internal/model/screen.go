package model

// Screen is the primary screen state. Primary screens are mutually
// exclusive.
type Screen string

const (
	ScreenSignup Screen = "signup"
	ScreenGame   Screen = "game"
)

// Overlay is the secondary overlay state, shown on top of whichever primary
// screen is active. At most one overlay is visible at a time.
type Overlay string

const (
	OverlayNone        Overlay = ""
	OverlayLeaderboard Overlay = "leaderboard"
	OverlayProfile     Overlay = "profile"
)
