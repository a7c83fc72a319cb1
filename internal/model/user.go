package model

// User is the locally cached copy of the backend's user record.
//
// The cache is only ever replaced wholesale with the backend's latest
// response (after registration or any mutating action); individual fields
// are never mutated locally.
type User struct {
	ID            UserID `json:"id"`
	TelegramID    UserID `json:"telegram_id,omitempty"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Bank          string `json:"bank"`
	AccountNumber string `json:"account_number"`
	Coins         int    `json:"coins"`
	Streak        int    `json:"streak"`
	Score         int    `json:"score"`
}

// PlaceholderUser returns the zero-balance stand-in used when the backend
// cannot supply a user record. It keeps the cached user non-nil so the rest
// of the session never has to handle a missing user.
func PlaceholderUser(id UserID) *User {
	return &User{ID: id}
}

// Registration is the signup form submitted to the backend.
type Registration struct {
	Name          string
	Phone         string
	Bank          string
	AccountNumber string
}
