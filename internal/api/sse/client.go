package sse

import (
	"bytes"
	"net/http"
	"time"

	"github.com/mcoot/solaropoly/internal/model"
)

const (
	// Time between keepalive pings
	pingPeriod = 30 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client represents a connected SSE client
type Client struct {
	id          string
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client
func NewClient(id string) *Client {
	return &Client{
		id:          id,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeSSE streams a session's events to the client until it disconnects or
// the session's hub closes
func ServeSSE(w http.ResponseWriter, r *http.Request, hubs *HubManager, sessionID model.SessionID, clientID string) {
	// Check if SSE is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	// Streams outlive the server's write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	client := NewClient(clientID)
	hub, ok := hubs.Join(sessionID, client)
	if !ok {
		if winner, done := hubs.Finished(sessionID); done {
			_, _ = w.Write(formatSSEMessage(EventGameOver, gameOverData(winner)))
		} else {
			_, _ = w.Write(formatSSEMessage(EventClosed, `{"status":"closed"}`))
		}
		flusher.Flush()
		return
	}
	defer hub.Unregister(client)

	// Send initial connection event
	_, _ = w.Write(formatSSEMessage(EventConnected, `{"status":"connected"}`))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	gameOverPrefix := []byte("event: " + EventGameOver + "\n")
	sawGameOver := false

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				// Hub closed. A client registered as the game ended may have
				// missed game-over.
				if winner, done := hubs.Finished(sessionID); done && !sawGameOver {
					_, _ = w.Write(formatSSEMessage(EventGameOver, gameOverData(winner)))
					flusher.Flush()
				}
				return
			}
			sawGameOver = sawGameOver || bytes.HasPrefix(message, gameOverPrefix)
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
