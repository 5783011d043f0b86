package response

import (
	"time"

	"github.com/mcoot/solaropoly/internal/board"
	"github.com/mcoot/solaropoly/internal/model"
	"github.com/mcoot/solaropoly/internal/services/game"
)

// Player represents a player in API responses
type Player struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Balance     int      `json:"balance"`
	Position    int      `json:"position"`
	Active      bool     `json:"active"`
	OwnedTiles  []int    `json:"owned_tiles"`
	OwnedGroups []string `json:"owned_groups"`
}

// PlayerFromModel converts a model.PlayerState to a response Player
func PlayerFromModel(ps model.PlayerState) Player {
	p := Player{
		ID:          string(ps.ID),
		Name:        ps.Name,
		Balance:     ps.Balance,
		Position:    ps.Position,
		Active:      ps.Active,
		OwnedTiles:  ps.OwnedTiles,
		OwnedGroups: ps.OwnedGroups,
	}
	if p.OwnedTiles == nil {
		p.OwnedTiles = []int{}
	}
	if p.OwnedGroups == nil {
		p.OwnedGroups = []string{}
	}
	return p
}

// Session represents a game session
type Session struct {
	ID            string    `json:"id"`
	Board         string    `json:"board"`
	State         string    `json:"state"`
	Players       []Player  `json:"players"`
	CurrentPlayer *string   `json:"current_player"`
	Turn          int       `json:"turn"`
	Winner        *string   `json:"winner"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SessionFromModel converts model.SessionRecord
func SessionFromModel(r *model.SessionRecord) Session {
	players := make([]Player, len(r.Players))
	for i, ps := range r.Players {
		players[i] = PlayerFromModel(ps)
	}

	var current *string
	if r.State == model.SessionStateInProgress {
		if ps := r.CurrentPlayer(); ps != nil {
			id := string(ps.ID)
			current = &id
		}
	}

	var winner *string
	if r.Winner != "" {
		w := string(r.Winner)
		winner = &w
	}

	return Session{
		ID:            string(r.ID),
		Board:         r.BoardName,
		State:         string(r.State),
		Players:       players,
		CurrentPlayer: current,
		Turn:          r.Turn,
		Winner:        winner,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// SessionSummary is a session in list responses
type SessionSummary struct {
	ID        string    `json:"id"`
	Board     string    `json:"board"`
	State     string    `json:"state"`
	Players   int       `json:"players"`
	Active    int       `json:"active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionSummaryFromModel converts model.SessionRecord
func SessionSummaryFromModel(r *model.SessionRecord) SessionSummary {
	return SessionSummary{
		ID:        string(r.ID),
		Board:     r.BoardName,
		State:     string(r.State),
		Players:   len(r.Players),
		Active:    r.ActivePlayers(),
		UpdatedAt: r.UpdatedAt,
	}
}

// Standings is the scoreboard of a session
type Standings struct {
	SessionID string           `json:"session_id"`
	Standings []model.Standing `json:"standings"`
}

// Turn is the response after taking a turn
type Turn = game.TurnResult

// Tile describes one tile of a board layout
type Tile struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
	Price int    `json:"price,omitempty"`
}

// Board describes a board layout
type Board struct {
	Name       string `json:"name"`
	Size       int    `json:"size"`
	StartBonus int    `json:"start_bonus"`
	Tiles      []Tile `json:"tiles,omitempty"`
}

// BoardFromLayout converts a board.Layout. Tiles are only listed when
// withTiles is set.
func BoardFromLayout(l *board.Layout, withTiles bool) Board {
	b := Board{
		Name:       l.Name,
		Size:       len(l.Tiles),
		StartBonus: l.StartBonus,
	}
	if withTiles {
		b.Tiles = make([]Tile, len(l.Tiles))
		for i, t := range l.Tiles {
			b.Tiles[i] = Tile{Index: i, Kind: t.Kind, Name: t.Name, Group: t.Group, Price: t.Price}
		}
	}
	return b
}
