// Package board provides the concrete board, its tiles and the layouts they
// are built from.
package board

import (
	"fmt"

	"github.com/mcoot/solaropoly/internal/dependencies/random"
	"github.com/mcoot/solaropoly/internal/model"
)

// Options holds the collaborators tiles need when applying effects
type Options struct {
	// Decider answers purchase offers. Defaults to BuyIfAffordable.
	Decider PurchaseDecider
	// Random drives card draws. Defaults to crypto randomness.
	Random random.Random
}

// Board is a ring of tiles with the start tile at index 0
type Board struct {
	name       string
	tiles      []model.Tile
	groups     []*model.Group
	multiplier map[string]int
	deck       *Deck
	decider    PurchaseDecider
	startBonus int
}

// Ensure Board implements the model contract
var _ model.Board = (*Board)(nil)

// Build creates a fresh board from a layout. Tile state such as ownership
// belongs to the returned board, so each session needs its own.
func Build(layout *Layout, opts Options) (*Board, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if opts.Decider == nil {
		opts.Decider = BuyIfAffordable
	}
	if opts.Random == nil {
		opts.Random = random.New()
	}

	b := &Board{
		name:       layout.Name,
		multiplier: make(map[string]int),
		decider:    opts.Decider,
		startBonus: layout.StartBonus,
		deck:       NewDeck(layout.Cards, opts.Random),
	}

	groupsByName := make(map[string]*model.Group)
	for _, g := range layout.Groups {
		group := &model.Group{Name: g.Name}
		b.groups = append(b.groups, group)
		groupsByName[g.Name] = group
		b.multiplier[g.Name] = g.Multiplier
	}

	for i, ts := range layout.Tiles {
		base := baseTile{index: i, name: ts.Name}
		switch ts.Kind {
		case KindStart:
			b.tiles = append(b.tiles, &StartTile{baseTile: base, bonus: layout.StartBonus})
		case KindProperty:
			group := groupsByName[ts.Group]
			group.Tiles = append(group.Tiles, i)
			b.tiles = append(b.tiles, &PropertyTile{
				baseTile: base,
				board:    b,
				group:    group,
				price:    ts.Price,
				rent:     ts.Rent,
			})
		case KindTax:
			b.tiles = append(b.tiles, &TaxTile{baseTile: base, amount: ts.Amount})
		case KindCard:
			b.tiles = append(b.tiles, &CardTile{baseTile: base, deck: b.deck})
		case KindRest:
			b.tiles = append(b.tiles, &RestTile{baseTile: base})
		default:
			return nil, fmt.Errorf("%w: tile %d has unknown kind %q", model.ErrInvalidLayout, i, ts.Kind)
		}
	}

	return b, nil
}

// Name returns the layout name the board was built from
func (b *Board) Name() string {
	return b.name
}

// Size returns the number of tiles
func (b *Board) Size() int {
	return len(b.tiles)
}

// StartBonus returns the amount credited for passing or landing on start
func (b *Board) StartBonus() int {
	return b.startBonus
}

// TileAt returns the tile at a board index, or nil when out of range
func (b *Board) TileAt(position int) model.Tile {
	if position < 0 || position >= len(b.tiles) {
		return nil
	}
	return b.tiles[position]
}

// Tiles returns all tiles in board order
func (b *Board) Tiles() []model.Tile {
	tiles := make([]model.Tile, len(b.tiles))
	copy(tiles, b.tiles)
	return tiles
}

// ResolveMove wraps current+roll around the board. Every wrap counts as a
// start crossing except a final one that comes to rest on the start tile.
func (b *Board) ResolveMove(current, roll int) (model.MoveResolution, error) {
	size := len(b.tiles)
	if current < 0 || current >= size {
		return model.MoveResolution{}, fmt.Errorf("%w: %d not in [0, %d)", model.ErrPositionOutOfRange, current, size)
	}
	if roll < 0 {
		return model.MoveResolution{}, fmt.Errorf("%w: %d", model.ErrInvalidRoll, roll)
	}

	total := current + roll
	position := total % size
	crossings := total / size
	if position == model.StartIndex && crossings > 0 {
		crossings--
	}

	return model.MoveResolution{
		Position:       position,
		StartCrossings: crossings,
		Tile:           b.tiles[position],
	}, nil
}

// SetDecider replaces the purchase decider used by property tiles
func (b *Board) SetDecider(d PurchaseDecider) {
	if d == nil {
		d = BuyIfAffordable
	}
	b.decider = d
}

// Groups returns the board's groups in layout order
func (b *Board) Groups() []*model.Group {
	groups := make([]*model.Group, len(b.groups))
	copy(groups, b.groups)
	return groups
}

// Group returns the group with the given name, or nil
func (b *Board) Group(name string) *model.Group {
	for _, g := range b.groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

// GroupOwner returns the player owning every tile in the group, or nil
func (b *Board) GroupOwner(group *model.Group) *model.Player {
	var owner *model.Player
	for _, idx := range group.Tiles {
		prop, ok := b.tiles[idx].(*PropertyTile)
		if !ok || prop.owner == nil {
			return nil
		}
		if owner == nil {
			owner = prop.owner
		} else if owner != prop.owner {
			return nil
		}
	}
	return owner
}

// Properties returns every property tile in board order
func (b *Board) Properties() []*PropertyTile {
	var props []*PropertyTile
	for _, t := range b.tiles {
		if prop, ok := t.(*PropertyTile); ok {
			props = append(props, prop)
		}
	}
	return props
}

// AssignOwner gives the property at index to p without charging for it.
// Used when restoring a saved session.
func (b *Board) AssignOwner(p *model.Player, index int) error {
	prop, ok := b.TileAt(index).(*PropertyTile)
	if !ok {
		return fmt.Errorf("%w: tile %d is not a property", model.ErrInvalidLayout, index)
	}
	prop.owner = p
	p.GainOwnership(prop)
	return nil
}

// AssetValue returns the summed purchase price of the tiles p owns
func (b *Board) AssetValue(p *model.Player) int {
	total := 0
	for _, t := range p.OwnedTiles() {
		if prop, ok := t.(*PropertyTile); ok {
			total += prop.price
		}
	}
	return total
}
