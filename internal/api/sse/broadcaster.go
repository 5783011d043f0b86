package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/solaropoly/internal/api/response"
	"github.com/mcoot/solaropoly/internal/model"
	"github.com/mcoot/solaropoly/internal/services/game"
)

// Event names sent to clients
const (
	EventConnected = "connected"
	EventClosed    = "closed"
	EventTurn      = "turn"
	EventSession   = "session"
	EventGameOver  = "game-over"
)

// Broadcaster publishes session changes to the session's hub
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// BroadcastTurn sends a completed turn. A turn that ends the game also sends
// game-over and closes the hub.
func (b *Broadcaster) BroadcastTurn(id model.SessionID, turn *game.TurnResult) {
	if hub := b.hubManager.GetHub(id); hub != nil {
		b.send(hub, EventTurn, turn)
	}
	if turn.GameOver {
		b.finish(id, turn.Winner)
	}
}

// BroadcastSession sends the current session state, e.g. after a player quits
func (b *Broadcaster) BroadcastSession(record *model.SessionRecord) {
	if hub := b.hubManager.GetHub(record.ID); hub != nil {
		b.send(hub, EventSession, response.SessionFromModel(record))
	}
	if record.State == model.SessionStateFinished {
		b.finish(record.ID, record.Winner)
	}
}

// finish records the session as over, even with nobody watching, so a
// spectator joining afterwards is told the game ended
func (b *Broadcaster) finish(id model.SessionID, winner model.PlayerID) {
	hub := b.hubManager.Finish(id, winner)
	if hub == nil {
		return
	}
	hub.BroadcastEvent(EventGameOver, gameOverData(winner))
	hub.Close()
}

func gameOverData(winner model.PlayerID) string {
	data, _ := json.Marshal(map[string]string{"winner": string(winner)})
	return string(data)
}

func (b *Broadcaster) send(hub *Hub, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		b.logger.Error("sse failed to encode event",
			slog.String("event", event),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(event, string(payload))
}
