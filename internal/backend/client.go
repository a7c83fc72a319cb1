package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/riddlewars/riddlewars-cli/internal/model"
)

// ErrNetwork is the single normalized error for transport failures and
// responses whose body was not valid JSON. Callers never see raw transport
// errors; everything below the JSON layer collapses into this sentinel.
var ErrNetwork = errors.New("network error")

// APIError is an application-level failure: the backend answered with a JSON
// body carrying an error field instead of the expected success fields.
type APIError struct {
	Code string `json:"error"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error: %s", e.Code)
}

// Client is an HTTP client for the riddle backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// do performs an HTTP round trip and decodes the JSON response into result.
// Transport failures and non-JSON bodies are normalized to ErrNetwork.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("%w: invalid response body", ErrNetwork)
		}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

type registerRequest struct {
	UserID  model.UserID `json:"user_id"`
	Name    string       `json:"name"`
	Phone   string       `json:"phone"`
	Bank    string       `json:"bank"`
	Account string       `json:"account"`
}

type registerResponse struct {
	Status string `json:"status"`
	Err    string `json:"error"`
}

// Register statuses returned by the backend.
const (
	StatusRegistered        = "registered"
	StatusAlreadyRegistered = "already_registered"
)

// Register creates or re-confirms an account for the user.
func (c *Client) Register(ctx context.Context, userID model.UserID, reg model.Registration) (string, error) {
	req := registerRequest{
		UserID:  userID,
		Name:    reg.Name,
		Phone:   reg.Phone,
		Bank:    reg.Bank,
		Account: reg.AccountNumber,
	}
	var resp registerResponse
	if err := c.post(ctx, "/register", req, &resp); err != nil {
		return "", err
	}
	if resp.Err != "" {
		return "", &APIError{Code: resp.Err}
	}
	return resp.Status, nil
}

type userResponse struct {
	model.User
	Err string `json:"error"`
}

// GetUser fetches the user record for the given identifier.
func (c *Client) GetUser(ctx context.Context, userID model.UserID) (*model.User, error) {
	path := "/get_user?user_id=" + url.QueryEscape(string(userID))
	var resp userResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	if resp.Err != "" {
		return nil, &APIError{Code: resp.Err}
	}
	u := resp.User
	if u.ID == "" {
		u.ID = userID
	}
	return &u, nil
}

type riddleRequest struct {
	UserID model.UserID `json:"user_id"`
	Pack   string       `json:"pack"`
	Index  *int         `json:"index,omitempty"`
}

type riddleResponse struct {
	model.Riddle
	Err string `json:"error"`
}

// GetRiddle fetches a riddle from the pack. A nil index asks the backend for
// the user's current riddle; otherwise the riddle at that zero-based index is
// requested.
func (c *Client) GetRiddle(ctx context.Context, userID model.UserID, pack string, index *int) (*model.Riddle, error) {
	req := riddleRequest{UserID: userID, Pack: pack, Index: index}
	var resp riddleResponse
	if err := c.post(ctx, "/get_riddle", req, &resp); err != nil {
		return nil, err
	}
	if resp.Err != "" {
		return nil, &APIError{Code: resp.Err}
	}
	if resp.Question == "" {
		return nil, fmt.Errorf("riddle response missing question")
	}
	return &resp.Riddle, nil
}

type answerRequest struct {
	UserID   model.UserID   `json:"user_id"`
	RiddleID model.RiddleID `json:"riddle_id"`
	Answer   string         `json:"answer"`
	UsedHint bool           `json:"used_hint"`
}

type answerResponse struct {
	Correct *bool  `json:"correct"`
	Score   int    `json:"score"`
	Err     string `json:"error"`
}

// AnswerResult is the backend's scoring verdict for a submitted answer.
type AnswerResult struct {
	Correct bool
	Score   int
}

// SubmitAnswer scores the answer for the given riddle. The score and cost
// semantics are entirely backend-determined; the client only reports them.
func (c *Client) SubmitAnswer(ctx context.Context, userID model.UserID, riddleID model.RiddleID, answer string, usedHint bool) (*AnswerResult, error) {
	req := answerRequest{UserID: userID, RiddleID: riddleID, Answer: answer, UsedHint: usedHint}
	var resp answerResponse
	if err := c.post(ctx, "/submit_answer", req, &resp); err != nil {
		return nil, err
	}
	if resp.Err != "" {
		return nil, &APIError{Code: resp.Err}
	}
	if resp.Correct == nil {
		return nil, fmt.Errorf("answer response missing verdict")
	}
	return &AnswerResult{Correct: *resp.Correct, Score: resp.Score}, nil
}

type hintRequest struct {
	UserID   model.UserID   `json:"user_id,omitempty"`
	RiddleID model.RiddleID `json:"riddle_id"`
}

type hintStatusResponse struct {
	Status string `json:"status"`
	Err    string `json:"error"`
}

// UseHint charges the user for a hint on the given riddle. The hint text
// itself is fetched separately via GetHint.
func (c *Client) UseHint(ctx context.Context, userID model.UserID, riddleID model.RiddleID) error {
	req := hintRequest{UserID: userID, RiddleID: riddleID}
	var resp hintStatusResponse
	if err := c.post(ctx, "/use_hint", req, &resp); err != nil {
		return err
	}
	if resp.Err != "" {
		return &APIError{Code: resp.Err}
	}
	if resp.Status != "hint_used" {
		return fmt.Errorf("unexpected hint status %q", resp.Status)
	}
	return nil
}

type hintTextResponse struct {
	Hint string `json:"hint"`
	Err  string `json:"error"`
}

// GetHint fetches the hint text for a riddle the user has already paid for.
func (c *Client) GetHint(ctx context.Context, riddleID model.RiddleID) (string, error) {
	req := hintRequest{RiddleID: riddleID}
	var resp hintTextResponse
	if err := c.post(ctx, "/get_hint", req, &resp); err != nil {
		return "", err
	}
	if resp.Err != "" {
		return "", &APIError{Code: resp.Err}
	}
	if resp.Hint == "" {
		return "", fmt.Errorf("hint response missing hint")
	}
	return resp.Hint, nil
}

type purchaseRequest struct {
	UserID model.UserID `json:"user_id"`
	Pack   string       `json:"pack"`
}

type purchaseResponse struct {
	CheckoutURL string `json:"checkout_url"`
	Err         string `json:"error"`
}

// BuyUnlock initiates a pack unlock purchase and returns the payment
// provider's checkout URL.
func (c *Client) BuyUnlock(ctx context.Context, userID model.UserID, pack string) (string, error) {
	return c.purchase(ctx, "/buy_unlock", userID, pack)
}

// BuyCoins initiates a coin purchase and returns the checkout URL.
func (c *Client) BuyCoins(ctx context.Context, userID model.UserID, pack string) (string, error) {
	return c.purchase(ctx, "/buy_coins", userID, pack)
}

func (c *Client) purchase(ctx context.Context, path string, userID model.UserID, pack string) (string, error) {
	req := purchaseRequest{UserID: userID, Pack: pack}
	var resp purchaseResponse
	if err := c.post(ctx, path, req, &resp); err != nil {
		return "", err
	}
	if resp.Err != "" {
		return "", &APIError{Code: resp.Err}
	}
	if resp.CheckoutURL == "" {
		return "", fmt.Errorf("purchase response missing checkout URL")
	}
	return resp.CheckoutURL, nil
}

// Leaderboard fetches the ranked score list. The order is the backend's; it
// is not recomputed client-side.
func (c *Client) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	var entries []model.LeaderboardEntry
	if err := c.get(ctx, "/leaderboard", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Health probes the backend's index route and returns its banner text.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return strings.TrimSpace(string(body)), nil
}
