package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/riddlewars/riddlewars-cli/internal/model"
)

type ClientSuite struct {
	suite.Suite
	ctx context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.ctx = context.Background()
}

// serve creates a client pointed at a one-off handler.
func (s *ClientSuite) serve(handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	s.T().Cleanup(srv.Close)
	return New(srv.URL)
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func (s *ClientSuite) TestUnreachableServerIsNetworkError() {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := New(srv.URL).GetUser(s.ctx, "1")
	s.ErrorIs(err, ErrNetwork)
}

func (s *ClientSuite) TestNonJSONBodyIsNetworkError() {
	client := s.serve(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>gateway error</html>"))
	})

	_, err := client.GetUser(s.ctx, "1")
	s.ErrorIs(err, ErrNetwork)
}

func (s *ClientSuite) TestErrorFieldBecomesAPIError() {
	client := s.serve(jsonHandler(`{"error":"user_not_found"}`))

	_, err := client.GetUser(s.ctx, "1")

	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("user_not_found", apiErr.Code)
	s.NotErrorIs(err, ErrNetwork)
}

func (s *ClientSuite) TestGetUserFillsMissingID() {
	client := s.serve(jsonHandler(`{"name":"Ann","coins":30,"streak":2}`))

	user, err := client.GetUser(s.ctx, "77")
	s.Require().NoError(err)
	s.Equal(model.UserID("77"), user.ID)
	s.Equal("Ann", user.Name)
	s.Equal(30, user.Coins)
}

func (s *ClientSuite) TestGetUserAcceptsNumericID() {
	client := s.serve(jsonHandler(`{"id":77,"name":"Ann"}`))

	user, err := client.GetUser(s.ctx, "77")
	s.Require().NoError(err)
	s.Equal(model.UserID("77"), user.ID)
}

func (s *ClientSuite) TestGetRiddleRejectsMissingQuestion() {
	client := s.serve(jsonHandler(`{"id":"9","index":0,"total":5}`))

	_, err := client.GetRiddle(s.ctx, "1", "free", nil)
	s.Require().Error(err)
	s.NotErrorIs(err, ErrNetwork)
	var apiErr *APIError
	s.False(errors.As(err, &apiErr))
}

func (s *ClientSuite) TestGetRiddleSendsIndexOnlyWhenSet() {
	var bodies []string
	client := s.serve(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(buf))
		_, _ = w.Write([]byte(`{"id":"1","question":"q","index":0,"total":5}`))
	})

	_, err := client.GetRiddle(s.ctx, "1", "free", nil)
	s.Require().NoError(err)
	idx := 3
	_, err = client.GetRiddle(s.ctx, "1", "free", &idx)
	s.Require().NoError(err)

	s.Require().Len(bodies, 2)
	s.NotContains(bodies[0], "index")
	s.Contains(bodies[1], `"index":3`)
}

func (s *ClientSuite) TestSubmitAnswerRejectsMissingVerdict() {
	client := s.serve(jsonHandler(`{"score":10}`))

	_, err := client.SubmitAnswer(s.ctx, "1", "9", "piano", false)
	s.Require().Error(err)
}

func (s *ClientSuite) TestSubmitAnswerVerdict() {
	client := s.serve(jsonHandler(`{"correct":true,"score":7}`))

	result, err := client.SubmitAnswer(s.ctx, "1", "9", "piano", true)
	s.Require().NoError(err)
	s.True(result.Correct)
	s.Equal(7, result.Score)
}

func (s *ClientSuite) TestUseHintRejectsUnexpectedStatus() {
	client := s.serve(jsonHandler(`{"status":"pending"}`))

	err := client.UseHint(s.ctx, "1", "9")
	s.Require().Error(err)
}

func (s *ClientSuite) TestLeaderboardAcceptsNumericUserIDs() {
	client := s.serve(jsonHandler(`[{"user_id":7,"username":"ann","total_score":120}]`))

	entries, err := client.Leaderboard(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(model.UserID("7"), entries[0].UserID)
	s.Equal("ann", entries[0].Username)
	s.Equal(120, entries[0].TotalScore)
}

func (s *ClientSuite) TestPurchaseRequiresCheckoutURL() {
	client := s.serve(jsonHandler(`{}`))

	_, err := client.BuyCoins(s.ctx, "1", model.CoinPack)
	s.Require().Error(err)
}

func (s *ClientSuite) TestHealthReturnsBannerText() {
	client := s.serve(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("RiddleWars backend is live!\n"))
	})

	banner, err := client.Health(s.ctx)
	s.Require().NoError(err)
	s.Equal("RiddleWars backend is live!", banner)
}
