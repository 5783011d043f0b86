package model

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// LoopLimit caps how many board lengths a stored position may span
	LoopLimit = 1

	// DiceCount is the number of dice thrown per roll
	DiceCount = 2

	// MinimumRoll is the smallest total DiceCount dice can produce
	MinimumRoll = DiceCount

	// MaxNameLength is the longest name stored unchanged
	MaxNameLength = 20

	// TruncatedNameLength is the length an over-long name is cut to
	TruncatedNameLength = 19
)

// NameTruncatedNotice is written to the display when a name is shortened
const NameTruncatedNotice = "We did have to shorten that - sorry!"

// PlayerID uniquely identifies a player within a session
type PlayerID string

// Player holds one participant's name, balance, position and assets.
// Every setter validates before mutating, so a failed call leaves the
// player exactly as it was.
type Player struct {
	id       PlayerID
	active   bool
	name     string
	balance  int
	position int

	ownedTiles  map[Tile]struct{}
	ownedGroups []*Group

	board   Board
	display Display
}

// NewPlayer creates a player bound to the given board and display
func NewPlayer(id PlayerID, board Board, display Display, name string, balance, position int, active bool) (*Player, error) {
	if display == nil {
		display = NopDisplay{}
	}
	p := &Player{
		id:         id,
		active:     active,
		balance:    balance,
		ownedTiles: make(map[Tile]struct{}),
		board:      board,
		display:    display,
	}
	if err := p.SetName(name); err != nil {
		return nil, err
	}
	if err := p.SetPosition(position); err != nil {
		return nil, err
	}
	return p, nil
}

// ID returns the player's identifier
func (p *Player) ID() PlayerID {
	return p.id
}

// IsActive reports whether the player is still in the game
func (p *Player) IsActive() bool {
	return p.active
}

// SetActive marks the player as playing or out of the game
func (p *Player) SetActive(active bool) {
	p.active = active
}

// Name returns the player's name
func (p *Player) Name() string {
	return p.name
}

// SetName validates and stores a name. Blank names are rejected; names
// longer than MaxNameLength are cut to TruncatedNameLength with a notice.
func (p *Player) SetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: need at least one non-whitespace character", ErrInvalidName)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		p.name = string([]rune(name)[:TruncatedNameLength])
		p.display.Notice(NameTruncatedNotice)
		return nil
	}
	p.name = name
	return nil
}

// Balance returns the player's cash balance
func (p *Player) Balance() int {
	return p.balance
}

// SetBalance overwrites the balance. Negative values are allowed.
func (p *Player) SetBalance(balance int) {
	p.balance = balance
}

// IncreaseBalance credits the player
func (p *Player) IncreaseBalance(credit int) {
	p.SetBalance(p.balance + credit)
}

// DecreaseBalance debits the player
func (p *Player) DecreaseBalance(debit int) {
	p.SetBalance(p.balance - debit)
}

// Position returns the player's board index
func (p *Player) Position() int {
	return p.position
}

// SetPosition stores a board index within [0, board size * LoopLimit)
func (p *Player) SetPosition(position int) error {
	limit := p.board.Size() * LoopLimit
	if position < 0 || position >= limit {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrPositionOutOfRange, position, limit)
	}
	p.position = position
	return nil
}

// Board returns the board the player moves on
func (p *Player) Board() Board {
	return p.board
}

// LandedTile returns the tile at the player's current position
func (p *Player) LandedTile() Tile {
	return p.board.TileAt(p.position)
}

// Move advances the player by a dice total.
//
// Start tile crossings are paid out before the new position is committed, then
// the destination tile's full effect runs once. Crossed tiles never receive
// the landing effect, except a start tile that is not Passable: its Land
// stands in for each crossing. A resolution outside the board fails before
// any effect runs.
func (p *Player) Move(roll int) (MoveResolution, error) {
	if roll < MinimumRoll {
		return MoveResolution{}, fmt.Errorf("%w: %d is below the minimum of %d", ErrInvalidRoll, roll, MinimumRoll)
	}

	res, err := p.board.ResolveMove(p.position, roll)
	if err != nil {
		return MoveResolution{}, err
	}
	if limit := p.board.Size() * LoopLimit; res.Position < 0 || res.Position >= limit {
		return MoveResolution{}, fmt.Errorf("%w: %d not in [0, %d)", ErrPositionOutOfRange, res.Position, limit)
	}

	start := p.board.TileAt(StartIndex)
	for i := 0; i < res.StartCrossings; i++ {
		if passable, ok := start.(Passable); ok {
			passable.Pass(p)
		} else {
			start.Land(p)
		}
	}

	if err := p.SetPosition(res.Position); err != nil {
		return MoveResolution{}, err
	}

	res.Tile.Land(p)
	return res, nil
}

// OwnsTile reports whether the tile is in the player's owned set
func (p *Player) OwnsTile(tile Tile) bool {
	_, ok := p.ownedTiles[tile]
	return ok
}

// GainOwnership records the tile as owned. Adding an owned tile is a no-op.
func (p *Player) GainOwnership(tile Tile) {
	p.ownedTiles[tile] = struct{}{}
}

// OwnedTiles returns the owned tiles ordered by board index
func (p *Player) OwnedTiles() []Tile {
	tiles := make([]Tile, 0, len(p.ownedTiles))
	for t := range p.ownedTiles {
		tiles = append(tiles, t)
	}
	sort.Slice(tiles, func(i, j int) bool {
		return tiles[i].Index() < tiles[j].Index()
	})
	return tiles
}

// OwnedGroups returns the completed groups in the order they were added
func (p *Player) OwnedGroups() []*Group {
	groups := make([]*Group, len(p.ownedGroups))
	copy(groups, p.ownedGroups)
	return groups
}

// AddOwnedGroup records a completed group
func (p *Player) AddOwnedGroup(group *Group) {
	for _, g := range p.ownedGroups {
		if g == group {
			return
		}
	}
	p.ownedGroups = append(p.ownedGroups, group)
}

// GetAttention asks the display to prompt this player for an action
func (p *Player) GetAttention() {
	p.display.Attention(p.name)
}

// DisplayBalance asks the display to show this player's balance
func (p *Player) DisplayBalance() {
	p.display.Balance(p.name, p.balance)
}

// Notify passes an informational message to the player's display
func (p *Player) Notify(msg string) {
	p.display.Notice(msg)
}

// State returns a plain-data snapshot of the player
func (p *Player) State() PlayerState {
	state := PlayerState{
		ID:       p.id,
		Name:     p.name,
		Balance:  p.balance,
		Position: p.position,
		Active:   p.active,
	}
	for _, t := range p.OwnedTiles() {
		state.OwnedTiles = append(state.OwnedTiles, t.Index())
	}
	for _, g := range p.ownedGroups {
		state.OwnedGroups = append(state.OwnedGroups, g.Name)
	}
	return state
}

func (p *Player) String() string {
	return fmt.Sprintf("Player [name=%s, balance=%d, position=%d, ownedTiles=%d, ownedGroups=%d]",
		p.name, p.balance, p.position, len(p.ownedTiles), len(p.ownedGroups))
}

// PlayerState is the persisted form of a Player
type PlayerState struct {
	ID          PlayerID `json:"id"`
	Name        string   `json:"name"`
	Balance     int      `json:"balance"`
	Position    int      `json:"position"`
	Active      bool     `json:"active"`
	OwnedTiles  []int    `json:"owned_tiles,omitempty"`
	OwnedGroups []string `json:"owned_groups,omitempty"`
}
