package board

import "github.com/mcoot/solaropoly/internal/dependencies/random"

// Card is a drawable card that changes the drawer's balance
type Card struct {
	Text   string `yaml:"text"`
	Amount int    `yaml:"amount"` // Positive credits, negative debits
}

// Deck draws cards with replacement
type Deck struct {
	cards  []Card
	random random.Random
}

// NewDeck creates a deck over the given cards
func NewDeck(cards []Card, rnd random.Random) *Deck {
	c := make([]Card, len(cards))
	copy(c, cards)
	return &Deck{cards: c, random: rnd}
}

// Draw returns a random card, or false if the deck has no cards
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[d.random.Intn(len(d.cards))], true
}
