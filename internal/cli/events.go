package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newSessionEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events <id>",
		Short: "Stream live events from a session",
		Long: `Connect to the session's event stream and print events as they happen.

Events:
  - connected: Stream opened
  - turn: A player finished a turn
  - session: The session changed outside a turn (a player quit)
  - game-over: The game finished; the stream then closes

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return streamEvents(ctx, client, args[0], cmd.OutOrStdout(), cfg.Output == "json")
		},
	}

	return cmd
}

// SSEEvent represents a parsed SSE event
type SSEEvent struct {
	Time  time.Time       `json:"time"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Stream reads the server-sent events at path, calling fn once per event
// until the server closes the stream or ctx is cancelled
func (c *Client) Stream(ctx context.Context, path string, fn func(event, data string)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// No timeout: the stream stays open for the whole game
	streamClient := &http.Client{Transport: c.httpClient.Transport}

	resp, err := streamClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Code != "" {
			return errors.New(errResp.Error.String())
		}
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	var (
		event string
		data  []string
	)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, ":"):
			// comment, used for keepalives
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		case line == "":
			if event != "" {
				fn(event, strings.Join(data, "\n"))
			}
			event = ""
			data = nil
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

func streamEvents(ctx context.Context, c *Client, id string, out io.Writer, jsonOutput bool) error {
	if !jsonOutput {
		fmt.Fprintf(out, "Watching session %s\n", id)
	}

	err := c.Stream(ctx, "/api/v1/sessions/"+id+"/events", func(event, data string) {
		printEvent(out, event, data, jsonOutput)
	})
	if err != nil {
		return err
	}

	if !jsonOutput {
		fmt.Fprintln(out, "Disconnected")
	}
	return nil
}

func printEvent(out io.Writer, event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		raw := json.RawMessage(data)
		if !json.Valid(raw) {
			raw, _ = json.Marshal(data)
		}
		line, _ := json.Marshal(SSEEvent{Time: now, Event: event, Data: raw})
		fmt.Fprintln(out, string(line))
		return
	}

	shown := strings.ReplaceAll(data, "\n", " ")
	if len(shown) > 100 {
		shown = shown[:100] + "..."
	}
	fmt.Fprintf(out, "[%s] %s: %s\n", now.Format(time.DateTime), event, shown)
}

// isTerminal reports whether out is the process's stdout
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && f == os.Stdout
}
