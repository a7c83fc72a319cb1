// Package stubserver is an in-process double of the riddle backend, used by
// tests and local development. It implements the wire contract with the
// production backend's semantics but holds everything in memory.
package stubserver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/riddlewars/riddlewars-cli/internal/model"
)

// Server serves the riddle backend API over an in-memory store.
type Server struct {
	store  *Store
	logger *slog.Logger
}

// New creates a stub server over the given store.
func New(store *Store, logger *slog.Logger) *Server {
	return &Server{store: store, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(recovery(s.logger))
	r.Use(logging(s.logger))

	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.HandleFunc("/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/get_user", s.getUser).Methods(http.MethodGet)
	r.HandleFunc("/get_riddle", s.getRiddle).Methods(http.MethodPost)
	r.HandleFunc("/submit_answer", s.submitAnswer).Methods(http.MethodPost)
	r.HandleFunc("/use_hint", s.useHint).Methods(http.MethodPost)
	r.HandleFunc("/get_hint", s.getHint).Methods(http.MethodPost)
	r.HandleFunc("/buy_unlock", s.buyUnlock).Methods(http.MethodPost)
	r.HandleFunc("/buy_coins", s.buyCoins).Methods(http.MethodPost)
	r.HandleFunc("/add_coins", s.addCoins).Methods(http.MethodPost)
	r.HandleFunc("/leaderboard", s.leaderboard).Methods(http.MethodGet)

	return r
}

// writeJSON writes a JSON response. Like the production backend, application
// errors still travel with a 200 status; the body carries the error field.
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code string) {
	writeJSON(w, map[string]string{"error": code})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeError(w, "invalid_request")
		return false
	}
	return true
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprint(w, "RiddleWars backend is live!")
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  model.UserID `json:"user_id"`
		Name    string       `json:"name"`
		Phone   string       `json:"phone"`
		Bank    string       `json:"bank"`
		Account string       `json:"account"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" || req.Name == "" {
		writeError(w, "invalid_request")
		return
	}

	status := s.store.RegisterUser(req.UserID, req.Name, req.Phone, req.Bank, req.Account)
	writeJSON(w, map[string]string{"status": status})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(r.URL.Query().Get("user_id"))
	user, ok := s.store.GetUser(userID)
	if !ok {
		writeError(w, codeUserNotFound)
		return
	}
	writeJSON(w, user)
}

func (s *Server) getRiddle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID model.UserID `json:"user_id"`
		Pack   string       `json:"pack"`
		Index  *int         `json:"index"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	riddle, code := s.store.GetRiddle(req.UserID, req.Pack, req.Index)
	if code != "" {
		writeError(w, code)
		return
	}
	writeJSON(w, riddle)
}

func (s *Server) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   model.UserID   `json:"user_id"`
		RiddleID model.RiddleID `json:"riddle_id"`
		Answer   string         `json:"answer"`
		UsedHint bool           `json:"used_hint"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	correct, score, code := s.store.SubmitAnswer(req.UserID, req.RiddleID, req.Answer, req.UsedHint)
	if code != "" {
		writeError(w, code)
		return
	}
	writeJSON(w, map[string]any{"correct": correct, "score": score})
}

func (s *Server) useHint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   model.UserID   `json:"user_id"`
		RiddleID model.RiddleID `json:"riddle_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if code := s.store.UseHint(req.UserID, req.RiddleID); code != "" {
		writeError(w, code)
		return
	}
	writeJSON(w, map[string]string{"status": "hint_used"})
}

func (s *Server) getHint(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RiddleID model.RiddleID `json:"riddle_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	hint, code := s.store.GetHint(req.RiddleID)
	if code != "" {
		writeError(w, code)
		return
	}
	writeJSON(w, map[string]string{"hint": hint})
}

func (s *Server) buyUnlock(w http.ResponseWriter, r *http.Request) {
	s.checkout(w, r, "unlock")
}

func (s *Server) buyCoins(w http.ResponseWriter, r *http.Request) {
	s.checkout(w, r, "coins")
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request, kind string) {
	var req struct {
		UserID model.UserID `json:"user_id"`
		Pack   string       `json:"pack"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" || req.Pack == "" {
		writeError(w, "invalid_request")
		return
	}

	url := fmt.Sprintf("https://pay.example.test/checkout/%s/%s/%s", kind, req.Pack, req.UserID)
	writeJSON(w, map[string]string{"checkout_url": url})
}

func (s *Server) addCoins(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID model.UserID `json:"user_id"`
		Coins  int          `json:"coins"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if !s.store.AddCoins(req.UserID, req.Coins) {
		writeError(w, codeUserNotFound)
		return
	}
	writeJSON(w, map[string]string{"status": "coins_added"})
}

func (s *Server) leaderboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.store.Leaderboard())
}
