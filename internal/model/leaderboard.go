package model

// LeaderboardEntry is one ranked row as returned by the backend. Ranking
// order is whatever the backend returned; the client never re-sorts.
type LeaderboardEntry struct {
	UserID     UserID `json:"user_id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	TotalScore int    `json:"total_score"`
}

// DisplayName returns the username, falling back to the name and finally to
// the literal "Player" when the backend supplied neither.
func (e LeaderboardEntry) DisplayName() string {
	if e.Username != "" {
		return e.Username
	}
	if e.Name != "" {
		return e.Name
	}
	return "Player"
}
