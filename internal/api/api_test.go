package api_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/solaropoly/internal/api"
	"github.com/mcoot/solaropoly/internal/api/apierr"
	"github.com/mcoot/solaropoly/internal/api/response"
	"github.com/mcoot/solaropoly/internal/factory"
	"github.com/mcoot/solaropoly/internal/services/game"
	"github.com/mcoot/solaropoly/internal/testutil"
)

// testServer creates a test server with mocked clock and dice
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		Random:         app.Random,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) createSession(t *testing.T, players ...string) response.Session {
	t.Helper()
	ts.app.MockRandom.QueueString("SESSION00001")

	rr := ts.request(http.MethodPost, "/api/v1/sessions", map[string]any{
		"board":   "mini",
		"players": players,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestListBoards(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/boards", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var boards []response.Board
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &boards))
	require.Len(t, boards, 2)
	assert.Equal(t, "mini", boards[0].Name)
	assert.Equal(t, 12, boards[0].Size)
	assert.Equal(t, "solar", boards[1].Name)
	assert.Equal(t, 40, boards[1].Size)
	assert.Empty(t, boards[1].Tiles)
}

func TestGetBoard(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/boards/mini", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var b response.Board
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &b))
	require.Len(t, b.Tiles, 12)
	assert.Equal(t, "start", b.Tiles[0].Kind)
	assert.Equal(t, "Phobos", b.Tiles[1].Group)
	assert.Equal(t, 60, b.Tiles[1].Price)

	rr = ts.request(http.MethodGet, "/api/v1/boards/pluto", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeLayoutNotFound, decodeError(t, rr).Code)
}

func TestCreateSession(t *testing.T) {
	ts := newTestServer(t)

	session := ts.createSession(t, "Alice", "Bob")

	assert.Equal(t, "SESSION00001", session.ID)
	assert.Equal(t, "mini", session.Board)
	assert.Equal(t, "in_progress", session.State)
	require.Len(t, session.Players, 2)
	assert.Equal(t, "Alice", session.Players[0].Name)
	assert.Equal(t, game.DefaultStartBalance, session.Players[0].Balance)
	assert.Equal(t, []int{}, session.Players[0].OwnedTiles)
	require.NotNil(t, session.CurrentPlayer)
	assert.Equal(t, session.Players[0].ID, *session.CurrentPlayer)
	assert.Nil(t, session.Winner)
}

func TestCreateSessionValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"one player", map[string]any{"players": []string{"Solo"}}, http.StatusBadRequest, apierr.CodeInsufficientPlayers},
		{"blank name", map[string]any{"players": []string{"Alice", " "}}, http.StatusBadRequest, apierr.CodeInvalidName},
		{"unknown board", map[string]any{"board": "pluto", "players": []string{"A", "B"}}, http.StatusNotFound, apierr.CodeLayoutNotFound},
		{"bad body", "not an object", http.StatusBadRequest, apierr.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/sessions", tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.code, decodeError(t, rr).Code)
		})
	}
}

func TestGetSessionNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/sessions/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeSessionNotFound, decodeError(t, rr).Code)
}

func TestTakeTurn(t *testing.T) {
	ts := newTestServer(t)
	session := ts.createSession(t, "Alice", "Bob")
	alice := session.Players[0].ID
	ts.app.QueueRoll(4, 6)

	rr := ts.request(http.MethodPost, "/api/v1/sessions/SESSION00001/turns", map[string]string{
		"player_id": alice,
		"buy":       "always",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var turn response.Turn
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &turn))
	assert.Equal(t, []int{4, 6}, turn.Dice)
	assert.Equal(t, 10, turn.To)
	assert.Equal(t, "Occator Crater", turn.Tile)
	assert.Equal(t, 1350, turn.Balance)
	assert.Contains(t, turn.Notices, "You bought Occator Crater for £150.")
	assert.Equal(t, session.Players[1].ID, string(turn.NextPlayer))

	rr = ts.request(http.MethodGet, "/api/v1/sessions/SESSION00001", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var updated response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, []int{10}, updated.Players[0].OwnedTiles)
	assert.Equal(t, 1, updated.Turn)
}

func TestTakeTurnErrors(t *testing.T) {
	ts := newTestServer(t)
	session := ts.createSession(t, "Alice", "Bob")
	bob := session.Players[1].ID

	rr := ts.request(http.MethodPost, "/api/v1/sessions/SESSION00001/turns", map[string]string{"player_id": bob})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, apierr.CodeNotYourTurn, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/sessions/SESSION00001/turns", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/sessions/SESSION00001/turns", map[string]string{
		"player_id": session.Players[0].ID,
		"buy":       "sometimes",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidPolicy, decodeError(t, rr).Code)

	rr = ts.request(http.MethodPost, "/api/v1/sessions/SESSION00001/turns", map[string]string{"player_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodePlayerNotFound, decodeError(t, rr).Code)
}

func TestQuitAndStandings(t *testing.T) {
	ts := newTestServer(t)
	session := ts.createSession(t, "Alice", "Bob")
	bob := session.Players[1].ID

	rr := ts.request(http.MethodPost, "/api/v1/sessions/SESSION00001/players/"+bob+"/quit", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var finished response.Session
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &finished))
	assert.Equal(t, "finished", finished.State)
	assert.Nil(t, finished.CurrentPlayer)
	require.NotNil(t, finished.Winner)
	assert.Equal(t, session.Players[0].ID, *finished.Winner)

	rr = ts.request(http.MethodPost, "/api/v1/sessions/SESSION00001/turns", map[string]string{"player_id": session.Players[0].ID})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeSessionOver, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/v1/sessions/SESSION00001/standings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var standings response.Standings
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
	require.Len(t, standings.Standings, 2)
	assert.Equal(t, 1, standings.Standings[0].Rank)
	assert.Equal(t, 1, standings.Standings[1].Rank)
}

func TestListSessions(t *testing.T) {
	ts := newTestServer(t)
	ts.createSession(t, "Alice", "Bob", "Carol")

	rr := ts.request(http.MethodGet, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var sessions []response.SessionSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, 3, sessions[0].Players)
	assert.Equal(t, 3, sessions[0].Active)
}

// readEvent reads one server-sent event, skipping keepalive comments
func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var name, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSuffix(line, "\n")
		switch {
		case line == "":
			if name != "" {
				return name, data
			}
		case strings.HasPrefix(line, "event: "):
			name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data += strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestSessionEvents(t *testing.T) {
	ts := newTestServer(t)
	session := ts.createSession(t, "Alice", "Bob")
	alice, bob := session.Players[0].ID, session.Players[1].ID

	srv := httptest.NewServer(ts.handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/sessions/SESSION00001/events")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := bufio.NewReader(resp.Body)
	name, _ := readEvent(t, events)
	require.Equal(t, "connected", name)

	ts.app.QueueRoll(2, 3)
	rr := ts.request(http.MethodPost, "/api/v1/sessions/SESSION00001/turns", map[string]any{"player_id": alice})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	name, data := readEvent(t, events)
	assert.Equal(t, "turn", name)
	var turn response.Turn
	require.NoError(t, json.Unmarshal([]byte(data), &turn))
	assert.Equal(t, 5, turn.To)
	assert.Equal(t, "Swift Crater", turn.Tile)

	rr = ts.request(http.MethodPost, "/api/v1/sessions/SESSION00001/players/"+bob+"/quit", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	name, _ = readEvent(t, events)
	assert.Equal(t, "session", name)
	name, data = readEvent(t, events)
	assert.Equal(t, "game-over", name)
	assert.JSONEq(t, `{"winner":"`+alice+`"}`, data)

	// The stream ends with the game
	done := make(chan error, 1)
	go func() {
		_, err := io.ReadAll(events)
		done <- err
	}()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("event stream was not closed")
	}

	// Finished sessions have nothing to stream
	rr = ts.request(http.MethodGet, "/api/v1/sessions/SESSION00001/events", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodeSessionOver, decodeError(t, rr).Code)
}

func TestSessionEventsNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/sessions/NOPE/events", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
