package cli

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/solaropoly/internal/api"
	"github.com/mcoot/solaropoly/internal/api/request"
	"github.com/mcoot/solaropoly/internal/api/response"
	"github.com/mcoot/solaropoly/internal/dependencies/mocks"
	"github.com/mcoot/solaropoly/internal/factory"
	"github.com/mcoot/solaropoly/internal/model"
	"github.com/mcoot/solaropoly/internal/testutil"
)

func playConfig(rnd *mocks.MockRandom) factory.Config {
	rnd.QueueString("PLAY00000001")
	return factory.Config{
		Logger: testutil.NopLogger(),
		Random: rnd,
	}
}

func miniGame(buy string) playOptions {
	return playOptions{
		Players: []string{"Alice", "Bob"},
		Board:   "mini",
		Balance: 1500,
		Buy:     buy,
	}
}

func TestRunPlayScriptedGame(t *testing.T) {
	t.Setenv("COLUMNS", "20")
	rnd := mocks.NewMockRandom()
	fc := playConfig(rnd)
	rnd.QueueIntn(0, 2) // Alice: 1+3 lands on Fuel Levy
	rnd.QueueIntn(0, 4) // Bob: 1+5 lands on Space Station

	var out bytes.Buffer
	in := strings.NewReader("b\nr\nr\ns\nq\n")

	err := runPlay(context.Background(), in, &out, miniGame("never"), fc)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Starting a game on mini with 2 players.")
	assert.Contains(t, text, "Alice, your current balance is £1,500.")
	assert.Contains(t, text, "Player Alice, take action!")
	assert.Contains(t, text, "You paid £50 Fuel Levy.")
	assert.Contains(t, text, "Alice, your current balance is £1,450.")
	assert.Contains(t, text, "Player Bob, take action!")
	assert.Contains(t, text, "1. Bob  £1,500 cash")
	assert.Contains(t, text, "2. Alice  £1,450 cash")
	assert.Contains(t, text, "Alice has left the game.")
	assert.Contains(t, text, "Bob wins the game!")
}

func TestRunPlayAsksBeforeBuying(t *testing.T) {
	rnd := mocks.NewMockRandom()
	fc := playConfig(rnd)
	rnd.QueueIntn(0, 1) // Alice: 1+2 lands on Limtoc Crater

	var out bytes.Buffer
	in := strings.NewReader("r\ny\nq\n")

	err := runPlay(context.Background(), in, &out, miniGame(buyAsk), fc)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Buy Limtoc Crater (Phobos) for £80? You have £1,500. [y/N] ")
	assert.Contains(t, text, "You bought Limtoc Crater for £80.")
	assert.Contains(t, text, "Bob has left the game.")
	assert.Contains(t, text, "Alice wins the game!")
	assert.Contains(t, text, "1. Alice  £1,420 cash + £80 property = £1,500")
}

func TestRunPlayDeclinesOnClosedInput(t *testing.T) {
	rnd := mocks.NewMockRandom()
	fc := playConfig(rnd)
	rnd.QueueIntn(0, 1)

	var out bytes.Buffer
	err := runPlay(context.Background(), strings.NewReader("r\n"), &out, miniGame(buyAsk), fc)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "You did not buy Limtoc Crater.")
	assert.Contains(t, text, "Input closed, ending the game.")
}

func TestRunPlayUnknownCommand(t *testing.T) {
	rnd := mocks.NewMockRandom()

	var out bytes.Buffer
	err := runPlay(context.Background(), strings.NewReader("dance\n"), &out, miniGame("never"), playConfig(rnd))
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Unknown command. Type help for the list.")
}

func TestRunPlayRejectsBadOptions(t *testing.T) {
	var out bytes.Buffer

	opts := miniGame("sometimes")
	err := runPlay(context.Background(), strings.NewReader(""), &out, opts, playConfig(mocks.NewMockRandom()))
	assert.ErrorIs(t, err, model.ErrInvalidDecider)

	opts = miniGame("never")
	opts.Players = []string{"Alice"}
	err = runPlay(context.Background(), strings.NewReader(""), &out, opts, playConfig(mocks.NewMockRandom()))
	assert.ErrorIs(t, err, model.ErrInsufficientPlayers)

	opts = miniGame("never")
	opts.Board = "pluto"
	err = runPlay(context.Background(), strings.NewReader(""), &out, opts, playConfig(mocks.NewMockRandom()))
	assert.ErrorIs(t, err, model.ErrLayoutNotFound)
}

func TestClientAgainstServer(t *testing.T) {
	app := factory.NewTestApp()
	app.MockRandom.QueueString("REMOTE000001")
	srv := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		Random:         app.Random,
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")

	var created response.Session
	err := c.Post("/api/v1/sessions", request.CreateSessionRequest{
		Board:   "mini",
		Players: []string{"Alice", "Bob"},
	}, &created)
	require.NoError(t, err)
	assert.Equal(t, "REMOTE000001", created.ID)
	require.Len(t, created.Players, 2)

	var got response.Session
	require.NoError(t, c.Get("/api/v1/sessions/REMOTE000001", &got))
	assert.Equal(t, created.ID, got.ID)

	var health HealthResult
	require.NoError(t, c.Get("/api/v1/health", &health))
	assert.Equal(t, "ok", health.Status)

	err = c.Get("/api/v1/sessions/NOPE", &got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_NOT_FOUND")
}

func TestStreamAgainstServer(t *testing.T) {
	app := factory.NewTestApp()
	app.MockRandom.QueueString("STREAM000001")
	srv := httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:         testutil.NopLogger(),
		GameController: app.GameController,
		Random:         app.Random,
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	var created response.Session
	require.NoError(t, c.Post("/api/v1/sessions", request.CreateSessionRequest{
		Board:   "mini",
		Players: []string{"Alice", "Bob"},
	}, &created))
	bob := created.Players[1].ID

	connected := make(chan struct{})
	var events []string
	done := make(chan error, 1)
	go func() {
		done <- c.Stream(context.Background(), "/api/v1/sessions/STREAM000001/events", func(event, data string) {
			events = append(events, event)
			if event == "connected" {
				close(connected)
			}
		})
	}()

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not connect")
	}

	var quit response.Session
	require.NoError(t, c.Post("/api/v1/sessions/STREAM000001/players/"+bob+"/quit", nil, &quit))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close after the game ended")
	}
	assert.Equal(t, []string{"connected", "session", "game-over"}, events)

	err := c.Stream(context.Background(), "/api/v1/sessions/NOPE/events", func(string, string) {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_NOT_FOUND")
}

func TestPrintEventJSON(t *testing.T) {
	var out bytes.Buffer
	printEvent(&out, "game-over", `{"winner":"p1"}`, true)
	printEvent(&out, "note", "plain text", true)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"event":"game-over","data":{"winner":"p1"}`)
	assert.Contains(t, lines[1], `"data":"plain text"`)
}

func TestPrintEventText(t *testing.T) {
	var out bytes.Buffer
	printEvent(&out, "turn", "line one\nline two", false)

	assert.Contains(t, out.String(), "] turn: line one line two\n")
}

func TestOutputText(t *testing.T) {
	var out bytes.Buffer
	o := NewOutputTo("text", &out)

	o.Print([]response.SessionSummary{})
	o.Print(response.Turn{Notices: []string{"You rolled 2 and 3 (5)."}, NextPlayer: "p2"})
	o.Print(response.Turn{GameOver: true, Winner: "p1"})

	assert.Equal(t, "No sessions\nYou rolled 2 and 3 (5).\nNext player: p2\nGame over. Winner: p1\n", out.String())
}

func TestOutputJSON(t *testing.T) {
	var out bytes.Buffer
	NewOutputTo("json", &out).Print(HealthResult{Status: "ok"})

	assert.JSONEq(t, `{"status":"ok"}`, out.String())
}
