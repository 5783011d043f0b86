package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// SessionState represents the current phase of a session
type SessionState string

const (
	SessionStateInProgress SessionState = "in_progress" // Players are taking turns
	SessionStateFinished   SessionState = "finished"    // At most one active player remains
)

// SessionRecord is the persisted form of a game session
type SessionRecord struct {
	ID           SessionID     `json:"id"`
	BoardName    string        `json:"board_name"`
	State        SessionState  `json:"state"`
	Players      []PlayerState `json:"players"`
	CurrentIdx   int           `json:"current_idx"` // Index into Players whose turn it is
	Turn         int           `json:"turn"`        // Completed turns
	DoublesCount int           `json:"doubles_count"`
	Winner       PlayerID      `json:"winner,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// CurrentPlayer returns the state of the player whose turn it is
func (r *SessionRecord) CurrentPlayer() *PlayerState {
	if r.CurrentIdx < 0 || r.CurrentIdx >= len(r.Players) {
		return nil
	}
	return &r.Players[r.CurrentIdx]
}

// Standing is one row of a session scoreboard
type Standing struct {
	Rank     int      `json:"rank"`
	PlayerID PlayerID `json:"player_id"`
	Name     string   `json:"name"`
	Active   bool     `json:"active"`
	Balance  int      `json:"balance"`
	Assets   int      `json:"assets"`    // Purchase price of owned tiles
	NetWorth int      `json:"net_worth"` // Balance + Assets
}

// Clone returns a deep copy of the record
func (r *SessionRecord) Clone() *SessionRecord {
	c := *r
	c.Players = make([]PlayerState, len(r.Players))
	for i, ps := range r.Players {
		c.Players[i] = ps
		c.Players[i].OwnedTiles = append([]int(nil), ps.OwnedTiles...)
		c.Players[i].OwnedGroups = append([]string(nil), ps.OwnedGroups...)
	}
	return &c
}

// ActivePlayers returns the number of players still in the session
func (r *SessionRecord) ActivePlayers() int {
	n := 0
	for _, ps := range r.Players {
		if ps.Active {
			n++
		}
	}
	return n
}
