package stubserver

import (
	"sort"
	"strings"
	"sync"

	"github.com/riddlewars/riddlewars-cli/internal/model"
)

// Scoring and pricing mirror the production backend: a correct answer earns
// 10, 7 if a hint was used, 0 when wrong; a hint costs 10 coins.
const (
	scoreFull     = 10
	scoreWithHint = 7
	hintCost      = 10
)

// Application-level error codes returned in JSON bodies.
const (
	codeUserNotFound   = "user_not_found"
	codePackNotFound   = "pack_not_found"
	codePackFinished   = "pack_finished"
	codeLocked         = "locked"
	codeRiddleNotFound = "riddle_not_found"
	codeAlreadySolved  = "already_solved"
	codeNotEnoughCoins = "not_enough_coins"
)

type stubRiddle struct {
	ID       model.RiddleID
	Question string
	Answer   string
	Hint     string
}

type pack struct {
	riddles []stubRiddle
	// freeLimit is the number of riddles playable without unlocking the
	// pack. Indexes at or beyond it require a purchase.
	freeLimit int
}

type userRecord struct {
	user     model.User
	solved   map[model.RiddleID]bool
	unlocked map[string]bool
}

// Store is the in-memory state behind the stub backend. All access is
// guarded by a single mutex; state resets with each new Store.
type Store struct {
	mu    sync.Mutex
	users map[model.UserID]*userRecord
	packs map[string]pack
}

// NewStore creates a store seeded with the default riddle packs: a fully
// playable "free" pack and a "premium" pack locked beyond its first riddle.
func NewStore() *Store {
	return &Store{
		users: make(map[model.UserID]*userRecord),
		packs: map[string]pack{
			model.PackFree: {
				freeLimit: 5,
				riddles: []stubRiddle{
					{ID: "1", Question: "What has keys but can't open locks?", Answer: "piano", Hint: "It makes music."},
					{ID: "2", Question: "What has a head and a tail but no body?", Answer: "coin", Hint: "You spend it."},
					{ID: "3", Question: "What gets wetter the more it dries?", Answer: "towel", Hint: "Found in bathrooms."},
					{ID: "4", Question: "What can travel around the world while staying in a corner?", Answer: "stamp", Hint: "It rides on envelopes."},
					{ID: "5", Question: "What has one eye but cannot see?", Answer: "needle", Hint: "Used for sewing."},
				},
			},
			"premium": {
				freeLimit: 1,
				riddles: []stubRiddle{
					{ID: "41", Question: "The more you take, the more you leave behind. What am I?", Answer: "footsteps", Hint: "Think of walking."},
					{ID: "42", Question: "What belongs to you but is used more by others?", Answer: "name", Hint: "It's on your passport."},
					{ID: "43", Question: "What breaks when you say it?", Answer: "silence", Hint: "Golden, supposedly."},
				},
			},
		},
	}
}

// RegisterUser creates a user if one does not already exist and reports
// which case occurred.
func (s *Store) RegisterUser(id model.UserID, name, phone, bank, account string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; ok {
		return "already_registered"
	}
	s.users[id] = &userRecord{
		user: model.User{
			ID:            id,
			Name:          name,
			Phone:         phone,
			Bank:          bank,
			AccountNumber: account,
		},
		solved:   make(map[model.RiddleID]bool),
		unlocked: make(map[string]bool),
	}
	return "registered"
}

// GetUser returns a copy of the user's record.
func (s *Store) GetUser(id model.UserID) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return model.User{}, false
	}
	return rec.user, true
}

// AddCoins credits coins to the user's balance.
func (s *Store) AddCoins(id model.UserID, coins int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return false
	}
	rec.user.Coins += coins
	return true
}

// Unlock marks a pack as purchased for the user, as the payment webhook
// would in production.
func (s *Store) Unlock(id model.UserID, packName string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[id]
	if !ok {
		return false
	}
	rec.unlocked[packName] = true
	return true
}

// GetRiddle returns the riddle at the given index, or the user's first
// unsolved riddle when index is nil.
func (s *Store) GetRiddle(userID model.UserID, packName string, index *int) (model.Riddle, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.packs[packName]
	if !ok {
		return model.Riddle{}, codePackNotFound
	}

	rec := s.users[userID]

	i := 0
	if index != nil {
		i = *index
	} else if rec != nil {
		for i < len(p.riddles) && rec.solved[p.riddles[i].ID] {
			i++
		}
	}

	if i < 0 || i >= len(p.riddles) {
		return model.Riddle{}, codePackFinished
	}
	if i >= p.freeLimit && (rec == nil || !rec.unlocked[packName]) {
		return model.Riddle{}, codeLocked
	}

	r := p.riddles[i]
	return model.Riddle{
		ID:       r.ID,
		Question: r.Question,
		Index:    i,
		Total:    len(p.riddles),
	}, ""
}

// SubmitAnswer scores an answer. Case and surrounding whitespace are
// ignored; duplicate solves are rejected.
func (s *Store) SubmitAnswer(userID model.UserID, riddleID model.RiddleID, answer string, usedHint bool) (bool, int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[userID]
	if !ok {
		return false, 0, codeUserNotFound
	}

	riddle, found := s.findRiddle(riddleID)
	if !found {
		return false, 0, codeRiddleNotFound
	}
	if rec.solved[riddleID] {
		return false, 0, codeAlreadySolved
	}

	correct := strings.EqualFold(strings.TrimSpace(answer), riddle.Answer)
	if !correct {
		rec.user.Streak = 0
		return false, 0, ""
	}

	score := scoreFull
	if usedHint {
		score = scoreWithHint
	}
	rec.solved[riddleID] = true
	rec.user.Score += score
	rec.user.Streak++
	return true, score, ""
}

// UseHint deducts the hint cost from the user's balance.
func (s *Store) UseHint(userID model.UserID, riddleID model.RiddleID) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[userID]
	if !ok {
		return codeUserNotFound
	}
	if _, found := s.findRiddle(riddleID); !found {
		return codeRiddleNotFound
	}
	if rec.user.Coins < hintCost {
		return codeNotEnoughCoins
	}
	rec.user.Coins -= hintCost
	return ""
}

// GetHint returns the hint text for a riddle.
func (s *Store) GetHint(riddleID model.RiddleID) (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	riddle, found := s.findRiddle(riddleID)
	if !found {
		return "", codeRiddleNotFound
	}
	return riddle.Hint, ""
}

// Leaderboard returns users with a positive score, highest first. Ties are
// broken by identifier so the order is deterministic.
func (s *Store) Leaderboard() []model.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]model.LeaderboardEntry, 0, len(s.users))
	for id, rec := range s.users {
		if rec.user.Score <= 0 {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			UserID:     id,
			Username:   rec.user.Name,
			TotalScore: rec.user.Score,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}

// findRiddle looks a riddle up across all packs. Caller must hold the mutex.
func (s *Store) findRiddle(id model.RiddleID) (stubRiddle, bool) {
	for _, p := range s.packs {
		for _, r := range p.riddles {
			if r.ID == id {
				return r, true
			}
		}
	}
	return stubRiddle{}, false
}
