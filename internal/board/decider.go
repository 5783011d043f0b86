package board

import (
	"github.com/mcoot/solaropoly/internal/dependencies/random"
	"github.com/mcoot/solaropoly/internal/model"
)

// Decider names accepted by DeciderByName
const (
	DeciderAlways     = "always"
	DeciderNever      = "never"
	DeciderAffordable = "affordable"
	DeciderRandom     = "random"
)

// Offer describes an unowned property a player has landed on
type Offer struct {
	Tile  string
	Group string
	Price int
}

// PurchaseDecider decides whether a player buys an offered property
type PurchaseDecider interface {
	ShouldBuy(p *model.Player, offer Offer) bool
}

// DeciderFunc adapts a function to PurchaseDecider
type DeciderFunc func(p *model.Player, offer Offer) bool

// ShouldBuy calls f
func (f DeciderFunc) ShouldBuy(p *model.Player, offer Offer) bool {
	return f(p, offer)
}

var (
	// AlwaysBuy accepts every offer
	AlwaysBuy PurchaseDecider = DeciderFunc(func(*model.Player, Offer) bool { return true })

	// NeverBuy declines every offer
	NeverBuy PurchaseDecider = DeciderFunc(func(*model.Player, Offer) bool { return false })

	// BuyIfAffordable accepts offers the player can pay for outright
	BuyIfAffordable PurchaseDecider = DeciderFunc(func(p *model.Player, o Offer) bool {
		return p.Balance() >= o.Price
	})
)

// RandomDecider buys affordable properties on a coin flip
type RandomDecider struct {
	random random.Random
}

// NewRandomDecider creates a RandomDecider
func NewRandomDecider(rnd random.Random) *RandomDecider {
	return &RandomDecider{random: rnd}
}

// ShouldBuy flips a coin for affordable offers
func (d *RandomDecider) ShouldBuy(p *model.Player, offer Offer) bool {
	if p.Balance() < offer.Price {
		return false
	}
	return d.random.Intn(2) == 1
}

// DeciderByName returns the named decider, or nil and false if unknown.
// An empty name selects DeciderAffordable.
func DeciderByName(name string, rnd random.Random) (PurchaseDecider, bool) {
	switch name {
	case DeciderAlways:
		return AlwaysBuy, true
	case DeciderNever:
		return NeverBuy, true
	case "", DeciderAffordable:
		return BuyIfAffordable, true
	case DeciderRandom:
		return NewRandomDecider(rnd), true
	default:
		return nil, false
	}
}

// DeciderNames returns all names accepted by DeciderByName
func DeciderNames() []string {
	return []string{DeciderAffordable, DeciderAlways, DeciderNever, DeciderRandom}
}
