package model

// StartIndex is the board index of the start tile
const StartIndex = 0

// Board is the surface players move around
type Board interface {
	// Size returns the number of tiles
	Size() int

	// TileAt returns the tile at a board index
	TileAt(position int) Tile

	// ResolveMove works out where a roll from current ends up and how many
	// times the start tile is crossed on the way
	ResolveMove(current, roll int) (MoveResolution, error)
}

// MoveResolution is the outcome of resolving a roll against a board
type MoveResolution struct {
	Position       int  // Destination index, wrapped to the board size
	StartCrossings int  // Times the start tile was passed without stopping on it
	Tile           Tile // Tile at Position
}

// Tile is a board square with an effect applied to whoever lands on it
type Tile interface {
	Index() int
	Name() string

	// Land applies the tile's full effect
	Land(p *Player)
}

// Passable is implemented by tiles that react to being crossed
type Passable interface {
	Pass(p *Player)
}

// Group is a named set of tiles forming a monopoly-style bundle
type Group struct {
	Name  string
	Tiles []int // Board indexes of member tiles
}

// Display renders player-facing information. It never changes game state.
type Display interface {
	Attention(name string)
	Balance(name string, balance int)
	Notice(msg string)
}

// NopDisplay discards everything
type NopDisplay struct{}

func (NopDisplay) Attention(string)    {}
func (NopDisplay) Balance(string, int) {}
func (NopDisplay) Notice(string)       {}
