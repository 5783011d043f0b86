package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/solaropoly/internal/api"
	"github.com/mcoot/solaropoly/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "solaropoly-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/solaropoly")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.Output()
	return string(output), err
}

func (r *cliRunner) runWithInput(input string, args ...string) (string, error) {
	cmd := exec.Command(r.binaryPath, args...)
	cmd.Stdin = strings.NewReader(input)
	output, err := cmd.Output()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		Random:         app.Random,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type sessionResponse struct {
	ID            string  `json:"id"`
	Board         string  `json:"board"`
	State         string  `json:"state"`
	CurrentPlayer *string `json:"current_player"`
	Turn          int     `json:"turn"`
	Winner        *string `json:"winner"`
	Players       []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Balance  int    `json:"balance"`
		Position int    `json:"position"`
		Active   bool   `json:"active"`
	} `json:"players"`
}

type turnResponse struct {
	PlayerID   string   `json:"player_id"`
	Dice       []int    `json:"dice"`
	Total      int      `json:"total"`
	To         int      `json:"to"`
	Notices    []string `json:"notices"`
	NextPlayer string   `json:"next_player"`
	GameOver   bool     `json:"game_over"`
}

type standingsResponse struct {
	SessionID string `json:"session_id"`
	Standings []struct {
		Rank     int    `json:"rank"`
		Name     string `json:"name"`
		Active   bool   `json:"active"`
		NetWorth int    `json:"net_worth"`
	} `json:"standings"`
}

type boardResponse struct {
	Name  string `json:"name"`
	Size  int    `json:"size"`
	Tiles []struct {
		Name string `json:"name"`
	} `json:"tiles"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_Boards(t *testing.T) {
	cli := newCLIRunner(t, "")

	output, err := cli.run("boards")
	require.NoError(t, err, "output: %s", output)

	var boards []boardResponse
	require.NoError(t, json.Unmarshal([]byte(output), &boards))
	require.Len(t, boards, 2)
	assert.Equal(t, "mini", boards[0].Name)
	assert.Empty(t, boards[0].Tiles)

	output, err = cli.run("boards", "solar")
	require.NoError(t, err, "output: %s", output)

	var solar boardResponse
	require.NoError(t, json.Unmarshal([]byte(output), &solar))
	assert.Equal(t, 40, solar.Size)
	assert.Len(t, solar.Tiles, 40)

	_, err = cli.run("boards", "pluto")
	assert.Error(t, err)
}

func TestCLI_FullSessionFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create a session
	output, err := cli.run("session", "create", "-p", "Alice", "-p", "Bob", "--board", "mini")
	require.NoError(t, err, "output: %s", output)

	var session sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "in_progress", session.State)
	assert.Equal(t, "mini", session.Board)
	require.Len(t, session.Players, 2)
	require.NotNil(t, session.CurrentPlayer)
	alice := session.Players[0].ID
	bob := session.Players[1].ID
	assert.Equal(t, alice, *session.CurrentPlayer)
	t.Logf("Created session: %s", session.ID)

	// Bob cannot move out of turn
	_, err = cli.run("session", "turn", session.ID, bob)
	assert.Error(t, err)

	// Alice takes a turn; dice are random so only check the shape
	output, err = cli.run("session", "turn", session.ID, alice, "--buy", "never")
	require.NoError(t, err, "output: %s", output)

	var turn turnResponse
	require.NoError(t, json.Unmarshal([]byte(output), &turn))
	assert.Equal(t, alice, turn.PlayerID)
	assert.Len(t, turn.Dice, 2)
	assert.Equal(t, turn.Total%12, turn.To)
	assert.NotEmpty(t, turn.Notices)
	assert.False(t, turn.GameOver)

	// List sessions
	output, err = cli.run("session", "list")
	require.NoError(t, err, "output: %s", output)

	var sessions []sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, session.ID, sessions[0].ID)

	// Bob quits, which ends the game
	output, err = cli.run("session", "quit", session.ID, bob)
	require.NoError(t, err, "output: %s", output)

	var finished sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &finished))
	assert.Equal(t, "finished", finished.State)
	require.NotNil(t, finished.Winner)
	assert.Equal(t, alice, *finished.Winner)
	assert.Nil(t, finished.CurrentPlayer)

	// Standings rank the remaining player first unless Bob is richer
	output, err = cli.run("session", "standings", session.ID)
	require.NoError(t, err, "output: %s", output)

	var standings standingsResponse
	require.NoError(t, json.Unmarshal([]byte(output), &standings))
	assert.Equal(t, session.ID, standings.SessionID)
	assert.Len(t, standings.Standings, 2)

	// No more turns once finished
	_, err = cli.run("session", "turn", session.ID, alice)
	assert.Error(t, err)
}

func TestCLI_SessionNotFound(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	_, err := cli.run("session", "get", "NOSUCHSESSION")
	assert.Error(t, err)
}

func TestCLI_PlaySeededGame(t *testing.T) {
	cli := newCLIRunner(t, "")

	output, err := cli.runWithInput("r\nr\nb\nq\n",
		"play", "-p", "Alice", "-p", "Bob", "--board", "mini", "--buy", "always", "--seed", "42")
	require.NoError(t, err, "output: %s", output)

	assert.Contains(t, output, "Starting a game on mini with 2 players.")
	assert.Contains(t, output, "You rolled")
	assert.Contains(t, output, "wins the game!")

	// The same seed replays the same game
	again, err := cli.runWithInput("r\nr\nb\nq\n",
		"play", "-p", "Alice", "-p", "Bob", "--board", "mini", "--buy", "always", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, output, again)
}
