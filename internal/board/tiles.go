package board

import (
	"fmt"

	"github.com/mcoot/solaropoly/internal/model"
)

type baseTile struct {
	index int
	name  string
}

func (t baseTile) Index() int {
	return t.index
}

func (t baseTile) Name() string {
	return t.name
}

// StartTile pays a bonus to players passing or landing on it
type StartTile struct {
	baseTile
	bonus int
}

// Pass credits the bonus for crossing the start tile
func (t *StartTile) Pass(p *model.Player) {
	p.IncreaseBalance(t.bonus)
	p.Notify(fmt.Sprintf("You passed %s and collected £%d.", t.name, t.bonus))
}

// Land credits the bonus for stopping on the start tile
func (t *StartTile) Land(p *model.Player) {
	p.IncreaseBalance(t.bonus)
	p.Notify(fmt.Sprintf("You landed on %s and collected £%d.", t.name, t.bonus))
}

// PropertyTile can be bought, and charges rent to other players once owned
type PropertyTile struct {
	baseTile
	board *Board
	group *model.Group
	price int
	rent  int
	owner *model.Player
}

// Price returns the purchase price
func (t *PropertyTile) Price() int {
	return t.price
}

// Group returns the group the property belongs to
func (t *PropertyTile) Group() *model.Group {
	return t.group
}

// Owner returns the owning player, or nil
func (t *PropertyTile) Owner() *model.Player {
	return t.owner
}

// Rent returns the rent currently due, doubled (or more) when one player
// owns the whole group
func (t *PropertyTile) Rent() int {
	if t.owner != nil && t.board.GroupOwner(t.group) == t.owner {
		if m := t.board.multiplier[t.group.Name]; m > 1 {
			return t.rent * m
		}
	}
	return t.rent
}

// Land offers an unowned property for sale or charges rent on an owned one
func (t *PropertyTile) Land(p *model.Player) {
	switch {
	case t.owner == nil:
		t.offer(p)
	case t.owner == p:
		p.Notify(fmt.Sprintf("You own %s.", t.name))
	case !t.owner.IsActive():
		p.Notify(fmt.Sprintf("%s belongs to %s, who has left the game. No rent is due.", t.name, t.owner.Name()))
	default:
		rent := t.Rent()
		p.DecreaseBalance(rent)
		t.owner.IncreaseBalance(rent)
		p.Notify(fmt.Sprintf("You paid £%d rent to %s for %s.", rent, t.owner.Name(), t.name))
	}
}

func (t *PropertyTile) offer(p *model.Player) {
	offer := Offer{Tile: t.name, Group: t.group.Name, Price: t.price}
	if !t.board.decider.ShouldBuy(p, offer) {
		p.Notify(fmt.Sprintf("You did not buy %s.", t.name))
		return
	}
	if p.Balance() < t.price {
		p.Notify(fmt.Sprintf("You cannot afford %s (£%d).", t.name, t.price))
		return
	}

	p.DecreaseBalance(t.price)
	t.owner = p
	p.GainOwnership(t)
	p.Notify(fmt.Sprintf("You bought %s for £%d.", t.name, t.price))

	if t.board.GroupOwner(t.group) == p {
		p.AddOwnedGroup(t.group)
		p.Notify(fmt.Sprintf("You now own all of %s!", t.group.Name))
	}
}

// TaxTile charges a fixed amount
type TaxTile struct {
	baseTile
	amount int
}

// Land debits the tax
func (t *TaxTile) Land(p *model.Player) {
	p.DecreaseBalance(t.amount)
	p.Notify(fmt.Sprintf("You paid £%d %s.", t.amount, t.name))
}

// Amount returns the tax charged
func (t *TaxTile) Amount() int {
	return t.amount
}

// CardTile draws a card from the board's deck
type CardTile struct {
	baseTile
	deck *Deck
}

// Land draws a card and applies its balance change
func (t *CardTile) Land(p *model.Player) {
	card, ok := t.deck.Draw()
	if !ok {
		p.Notify(fmt.Sprintf("The %s deck is empty.", t.name))
		return
	}
	if card.Amount >= 0 {
		p.IncreaseBalance(card.Amount)
	} else {
		p.DecreaseBalance(-card.Amount)
	}
	p.Notify(fmt.Sprintf("%s: %s", t.name, card.Text))
}

// RestTile has no effect
type RestTile struct {
	baseTile
}

// Land does nothing beyond telling the player where they are
func (t *RestTile) Land(p *model.Player) {
	p.Notify(fmt.Sprintf("You are resting at %s.", t.name))
}
