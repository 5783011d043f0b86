package game

import (
	"fmt"
	"sync"

	"github.com/mcoot/solaropoly/internal/board"
	"github.com/mcoot/solaropoly/internal/display"
	"github.com/mcoot/solaropoly/internal/model"
)

// liveSession is a session with its board and players rebuilt in memory.
// mu is held for the whole of any operation that reads or changes it.
// stale is set once the session is evicted; its state may then hold changes
// that were never saved.
type liveSession struct {
	mu       sync.Mutex
	stale    bool
	record   *model.SessionRecord
	board    *board.Board
	players  []*model.Player
	recorder *display.Recorder
}

func (s *liveSession) playerIndex(id model.PlayerID) int {
	for i, p := range s.players {
		if p.ID() == id {
			return i
		}
	}
	return -1
}

func (s *liveSession) current() *model.Player {
	return s.players[s.record.CurrentIdx]
}

// snapshot copies player state back into the record
func (s *liveSession) snapshot() {
	for i, p := range s.players {
		s.record.Players[i] = p.State()
	}
}

// advance hands the turn to the next active player after the current one
func (s *liveSession) advance() {
	s.record.DoublesCount = 0
	n := len(s.players)
	for step := 1; step <= n; step++ {
		idx := (s.record.CurrentIdx + step) % n
		if s.players[idx].IsActive() {
			s.record.CurrentIdx = idx
			return
		}
	}
}

// checkFinished ends the session once at most one player is still active
func (s *liveSession) checkFinished() bool {
	var last *model.Player
	active := 0
	for _, p := range s.players {
		if p.IsActive() {
			active++
			last = p
		}
	}
	if active > 1 {
		return false
	}
	s.record.State = model.SessionStateFinished
	if last != nil {
		s.record.Winner = last.ID()
		last.Notify(fmt.Sprintf("%s wins the game!", last.Name()))
	}
	return true
}

// restore rebuilds a live session from its stored record
func restore(record *model.SessionRecord, opts board.Options, out model.Display) (*liveSession, error) {
	layout, err := board.LoadLayout(record.BoardName)
	if err != nil {
		return nil, err
	}
	b, err := board.Build(layout, opts)
	if err != nil {
		return nil, err
	}

	s := &liveSession{
		record:   record,
		board:    b,
		recorder: display.NewRecorder(),
	}
	disp := sessionDisplay(s.recorder, out)

	for _, ps := range record.Players {
		p, err := model.NewPlayer(ps.ID, b, disp, ps.Name, ps.Balance, ps.Position, ps.Active)
		if err != nil {
			return nil, fmt.Errorf("player %q: %w", ps.Name, err)
		}
		for _, idx := range ps.OwnedTiles {
			if err := b.AssignOwner(p, idx); err != nil {
				return nil, fmt.Errorf("player %q: %w", ps.Name, err)
			}
		}
		for _, name := range ps.OwnedGroups {
			group := b.Group(name)
			if group == nil {
				return nil, fmt.Errorf("player %q: %w: unknown group %q", ps.Name, model.ErrCorruptSession, name)
			}
			p.AddOwnedGroup(group)
		}
		s.players = append(s.players, p)
	}

	if record.CurrentPlayer() == nil {
		return nil, fmt.Errorf("%w: current player index %d", model.ErrCorruptSession, record.CurrentIdx)
	}
	return s, nil
}

func sessionDisplay(rec *display.Recorder, out model.Display) model.Display {
	if out == nil {
		return rec
	}
	return display.Multi{out, rec}
}
