package model

// PackFree is the default riddle pack every user can play.
const PackFree = "free"

// CoinPack is the fixed coin bundle identifier used for coin purchases.
const CoinPack = "50_coins"

// Session is the purely local view state for the active pack. It is created
// with defaults at startup, overwritten on each successful riddle fetch, and
// never persisted.
//
// Invariants: RiddleIndex < RiddlesCount whenever a riddle is displayed, and
// CurrentRiddleID is non-empty only while a riddle is on screen.
type Session struct {
	Pack            string
	RiddleIndex     int
	RiddlesCount    int
	CurrentRiddleID RiddleID
	HintUsed        bool
}

// NewSession returns a session with startup defaults.
func NewSession() Session {
	return Session{Pack: PackFree}
}

// Riddle is the currently displayed riddle. It is transient: the session
// controller discards it as soon as play advances.
type Riddle struct {
	ID       RiddleID `json:"id"`
	Question string   `json:"question"`
	Index    int      `json:"index"`
	Total    int      `json:"total"`
}
