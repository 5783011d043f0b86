package game

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/solaropoly/internal/board"
	"github.com/mcoot/solaropoly/internal/dependencies/clock"
	"github.com/mcoot/solaropoly/internal/dependencies/random"
	"github.com/mcoot/solaropoly/internal/model"
	"github.com/mcoot/solaropoly/internal/services/dice"
	"github.com/mcoot/solaropoly/internal/storage"
)

const (
	MinPlayers            = 2
	MaxPlayers            = 8
	DefaultStartBalance   = 1500
	MaxConsecutiveDoubles = 3

	sessionIDLength   = 12
	sessionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// SessionConfig describes a new session
type SessionConfig struct {
	BoardName    string
	PlayerNames  []string
	StartBalance int // DefaultStartBalance when zero or negative
}

// TurnResult describes what happened during one turn
type TurnResult struct {
	PlayerID       model.PlayerID `json:"player_id"`
	Dice           []int          `json:"dice"`
	Total          int            `json:"total"`
	Doubles        bool           `json:"doubles"`
	From           int            `json:"from"`
	To             int            `json:"to"`
	StartCrossings int            `json:"start_crossings"`
	Tile           string         `json:"tile"`
	Balance        int            `json:"balance"`
	Notices        []string       `json:"notices"`
	Eliminated     bool           `json:"eliminated"`
	NextPlayer     model.PlayerID `json:"next_player,omitempty"`
	GameOver       bool           `json:"game_over"`
	Winner         model.PlayerID `json:"winner,omitempty"`
}

// Controller runs game sessions: turn order, dice, bankruptcy and persistence
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	dice    *dice.Roller
	logger  *slog.Logger
	output  model.Display

	mu       sync.Mutex
	sessions map[model.SessionID]*liveSession
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		clock:    clock,
		random:   random,
		dice:     dice.New(random),
		logger:   logger,
		sessions: make(map[model.SessionID]*liveSession),
	}
}

// SetOutput mirrors every player message to d as well as the turn results.
// Only sessions created or restored afterwards are affected.
func (c *Controller) SetOutput(d model.Display) {
	c.output = d
}

// CreateSession starts a new session with players seated in the given order
func (c *Controller) CreateSession(ctx context.Context, cfg SessionConfig) (*model.SessionRecord, error) {
	if len(cfg.PlayerNames) < MinPlayers {
		return nil, fmt.Errorf("%w: need at least %d", model.ErrInsufficientPlayers, MinPlayers)
	}
	if len(cfg.PlayerNames) > MaxPlayers {
		return nil, fmt.Errorf("%w: at most %d", model.ErrTooManyPlayers, MaxPlayers)
	}
	if cfg.BoardName == "" {
		cfg.BoardName = board.DefaultLayout
	}
	if cfg.StartBalance <= 0 {
		cfg.StartBalance = DefaultStartBalance
	}

	now := c.clock.Now()
	record := &model.SessionRecord{
		ID:        model.SessionID(c.random.String(sessionIDLength, sessionIDAlphabet)),
		BoardName: cfg.BoardName,
		State:     model.SessionStateInProgress,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, name := range cfg.PlayerNames {
		record.Players = append(record.Players, model.PlayerState{
			ID:      model.PlayerID(uuid.NewString()),
			Name:    name,
			Balance: cfg.StartBalance,
			Active:  true,
		})
	}

	s, err := restore(record, c.boardOptions(), c.output)
	if err != nil {
		return nil, err
	}
	// Names may have been shortened
	s.snapshot()

	if err := c.storage.SaveSession(ctx, record); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(record.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.mu.Lock()
	c.sessions[record.ID] = s
	c.mu.Unlock()

	c.logger.Info("session created",
		slog.String("session_id", string(record.ID)),
		slog.String("board", record.BoardName),
		slog.Int("player_count", len(record.Players)),
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone(), nil
}

// GetSession returns the current record of a session
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.SessionRecord, error) {
	s, err := c.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()
	return s.record.Clone(), nil
}

// ListSessions returns every stored session
func (c *Controller) ListSessions(ctx context.Context) ([]*model.SessionRecord, error) {
	return c.storage.ListSessions(ctx)
}

// TakeTurn rolls and moves for the current player. decider answers any
// purchase offer raised during the move; nil buys whenever affordable.
func (c *Controller) TakeTurn(ctx context.Context, id model.SessionID, playerID model.PlayerID, decider board.PurchaseDecider) (*TurnResult, error) {
	s, err := c.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if s.record.State == model.SessionStateFinished {
		return nil, model.ErrSessionOver
	}
	idx := s.playerIndex(playerID)
	if idx == -1 {
		return nil, model.ErrPlayerNotFound
	}
	if idx != s.record.CurrentIdx {
		return nil, model.ErrNotPlayerTurn
	}

	p := s.current()
	s.recorder.Drain()
	s.board.SetDecider(decider)

	p.GetAttention()
	roll := c.dice.Roll()
	p.Notify(fmt.Sprintf("You rolled %s.", describeRoll(roll)))

	from := p.Position()
	res, err := p.Move(roll.Total)
	if err != nil {
		c.evict(s)
		return nil, err
	}
	p.DisplayBalance()

	result := &TurnResult{
		PlayerID:       p.ID(),
		Dice:           roll.Dice,
		Total:          roll.Total,
		Doubles:        roll.Doubles,
		From:           from,
		To:             res.Position,
		StartCrossings: res.StartCrossings,
		Tile:           res.Tile.Name(),
		Balance:        p.Balance(),
	}

	s.record.Turn++
	switch {
	case p.Balance() < 0:
		p.SetActive(false)
		p.Notify(fmt.Sprintf("%s is bankrupt and out of the game.", p.Name()))
		result.Eliminated = true
		c.logger.Info("player eliminated",
			slog.String("session_id", string(id)),
			slog.String("player_id", string(p.ID())),
			slog.Int("balance", p.Balance()),
		)
		s.advance()
	case roll.Doubles && s.record.DoublesCount+1 < MaxConsecutiveDoubles:
		s.record.DoublesCount++
		p.Notify("Doubles! Roll again.")
	default:
		s.advance()
	}

	if s.checkFinished() {
		result.GameOver = true
		result.Winner = s.record.Winner
		c.logger.Info("session finished",
			slog.String("session_id", string(id)),
			slog.String("winner", string(s.record.Winner)),
			slog.Int("turns", s.record.Turn),
		)
	} else {
		result.NextPlayer = s.current().ID()
	}

	if err := c.save(ctx, s); err != nil {
		return nil, err
	}

	result.Notices = s.recorder.Drain()
	return result, nil
}

// Quit removes a player from a session. Their properties stay on the board
// but no longer collect rent.
func (c *Controller) Quit(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.SessionRecord, error) {
	s, err := c.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if s.record.State == model.SessionStateFinished {
		return nil, model.ErrSessionOver
	}
	idx := s.playerIndex(playerID)
	if idx == -1 {
		return nil, model.ErrPlayerNotFound
	}
	p := s.players[idx]
	if !p.IsActive() {
		return nil, model.ErrPlayerInactive
	}

	s.recorder.Drain()
	p.SetActive(false)
	p.Notify(fmt.Sprintf("%s has left the game.", p.Name()))
	if idx == s.record.CurrentIdx {
		s.advance()
	}
	s.checkFinished()

	c.logger.Info("player quit",
		slog.String("session_id", string(id)),
		slog.String("player_id", string(playerID)),
	)

	if err := c.save(ctx, s); err != nil {
		return nil, err
	}
	s.recorder.Drain()
	return s.record.Clone(), nil
}

// Standings ranks every player, including eliminated ones, by net worth.
// Players with equal net worth share a rank.
func (c *Controller) Standings(ctx context.Context, id model.SessionID) ([]model.Standing, error) {
	s, err := c.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	standings := make([]model.Standing, len(s.players))
	for i, p := range s.players {
		assets := s.board.AssetValue(p)
		standings[i] = model.Standing{
			PlayerID: p.ID(),
			Name:     p.Name(),
			Active:   p.IsActive(),
			Balance:  p.Balance(),
			Assets:   assets,
			NetWorth: p.Balance() + assets,
		}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].NetWorth > standings[j].NetWorth
	})
	for i := range standings {
		if i > 0 && standings[i].NetWorth == standings[i-1].NetWorth {
			standings[i].Rank = standings[i-1].Rank
		} else {
			standings[i].Rank = i + 1
		}
	}
	return standings, nil
}

// load returns the live session, restoring it from storage if needed
func (c *Controller) load(ctx context.Context, id model.SessionID) (*liveSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sessions[id]; ok {
		return s, nil
	}

	record, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	s, err := restore(record, c.boardOptions(), c.output)
	if err != nil {
		c.logger.Error("failed to restore session",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	c.sessions[id] = s

	c.logger.Debug("session restored", slog.String("session_id", string(id)))
	return s, nil
}

// acquire returns the live session with its lock held. A session evicted
// while the caller waited for the lock is dropped and reloaded from storage.
func (c *Controller) acquire(ctx context.Context, id model.SessionID) (*liveSession, error) {
	for {
		s, err := c.load(ctx, id)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if !s.stale {
			return s, nil
		}
		s.mu.Unlock()
	}
}

// save persists the session, dropping it from the cache on failure so the
// next access reloads the last stored state
func (c *Controller) save(ctx context.Context, s *liveSession) error {
	s.snapshot()
	s.record.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, s.record); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(s.record.ID)),
			slog.String("error", err.Error()),
		)
		c.evict(s)
		return err
	}
	return nil
}

// evict marks s stale and drops it from the cache. The caller holds s.mu.
func (c *Controller) evict(s *liveSession) {
	s.stale = true

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessions[s.record.ID] == s {
		delete(c.sessions, s.record.ID)
	}
}

func (c *Controller) boardOptions() board.Options {
	return board.Options{Random: c.random}
}

func describeRoll(r dice.Roll) string {
	if len(r.Dice) == 2 {
		return fmt.Sprintf("%d and %d (%d)", r.Dice[0], r.Dice[1], r.Total)
	}
	return fmt.Sprintf("%v (%d)", r.Dice, r.Total)
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateSession(ctx context.Context, cfg SessionConfig) (*model.SessionRecord, error)
	GetSession(ctx context.Context, id model.SessionID) (*model.SessionRecord, error)
	ListSessions(ctx context.Context) ([]*model.SessionRecord, error)
	TakeTurn(ctx context.Context, id model.SessionID, playerID model.PlayerID, decider board.PurchaseDecider) (*TurnResult, error)
	Quit(ctx context.Context, id model.SessionID, playerID model.PlayerID) (*model.SessionRecord, error)
	Standings(ctx context.Context, id model.SessionID) ([]model.Standing, error)
}

var _ ControllerInterface = (*Controller)(nil)
