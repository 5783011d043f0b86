package board

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/solaropoly/internal/model"
)

// Tile kinds accepted in layout files
const (
	KindStart    = "start"
	KindProperty = "property"
	KindTax      = "tax"
	KindCard     = "card"
	KindRest     = "rest"
)

// DefaultLayout is the layout used when none is requested
const DefaultLayout = "solar"

//go:embed layouts/*.yaml
var layoutFS embed.FS

// Layout describes a board: its tiles in order, groups and card deck
type Layout struct {
	Name       string      `yaml:"name"`
	StartBonus int         `yaml:"start_bonus"`
	Groups     []GroupSpec `yaml:"groups"`
	Tiles      []TileSpec  `yaml:"tiles"`
	Cards      []Card      `yaml:"cards"`
}

// GroupSpec declares a property group
type GroupSpec struct {
	Name       string `yaml:"name"`
	Multiplier int    `yaml:"multiplier"` // Rent multiplier when one player owns the group
}

// TileSpec declares one tile. Fields beyond Kind and Name depend on the kind.
type TileSpec struct {
	Kind   string `yaml:"kind"`
	Name   string `yaml:"name"`
	Group  string `yaml:"group,omitempty"`
	Price  int    `yaml:"price,omitempty"`
	Rent   int    `yaml:"rent,omitempty"`
	Amount int    `yaml:"amount,omitempty"`
}

// ParseLayout decodes and validates a YAML layout
func ParseLayout(data []byte) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidLayout, err)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// LoadLayout returns a built-in layout by name
func LoadLayout(name string) (*Layout, error) {
	if name == "" {
		name = DefaultLayout
	}
	data, err := layoutFS.ReadFile(path.Join("layouts", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrLayoutNotFound, name)
	}
	return ParseLayout(data)
}

// Layouts returns the names of the built-in layouts
func Layouts() []string {
	entries, err := layoutFS.ReadDir("layouts")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Validate checks the layout describes a playable board
func (l *Layout) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", model.ErrInvalidLayout, fmt.Sprintf(format, args...))
	}

	if l.Name == "" {
		return invalid("missing name")
	}
	if len(l.Tiles) < model.MinimumRoll {
		return invalid("need at least %d tiles, got %d", model.MinimumRoll, len(l.Tiles))
	}
	if l.Tiles[model.StartIndex].Kind != KindStart {
		return invalid("tile %d must be the start tile", model.StartIndex)
	}

	groups := make(map[string]bool)
	for _, g := range l.Groups {
		if g.Name == "" {
			return invalid("group with no name")
		}
		if groups[g.Name] {
			return invalid("duplicate group %q", g.Name)
		}
		groups[g.Name] = true
	}

	hasCardTile := false
	for i, t := range l.Tiles {
		if t.Name == "" {
			return invalid("tile %d has no name", i)
		}
		switch t.Kind {
		case KindStart:
			if i != model.StartIndex {
				return invalid("tile %d: only tile %d may be a start tile", i, model.StartIndex)
			}
		case KindProperty:
			if !groups[t.Group] {
				return invalid("tile %d: unknown group %q", i, t.Group)
			}
			if t.Price <= 0 {
				return invalid("tile %d: price must be positive", i)
			}
			if t.Rent < 0 {
				return invalid("tile %d: rent must not be negative", i)
			}
		case KindTax:
			if t.Amount < 0 {
				return invalid("tile %d: tax must not be negative", i)
			}
		case KindCard:
			hasCardTile = true
		case KindRest:
		default:
			return invalid("tile %d: unknown kind %q", i, t.Kind)
		}
	}

	if hasCardTile && len(l.Cards) == 0 {
		return invalid("card tiles need at least one card")
	}
	return nil
}
