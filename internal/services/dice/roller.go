package dice

import (
	"github.com/mcoot/solaropoly/internal/dependencies/random"
	"github.com/mcoot/solaropoly/internal/model"
)

// DefaultSides is the number of faces on each die
const DefaultSides = 6

// Roll is the outcome of throwing all dice once
type Roll struct {
	Dice    []int
	Total   int
	Doubles bool // Every die shows the same face
}

// Roller throws a fixed set of dice
type Roller struct {
	random random.Random
	count  int
	sides  int
}

// New creates a Roller for model.DiceCount six-sided dice
func New(rnd random.Random) *Roller {
	return &Roller{
		random: rnd,
		count:  model.DiceCount,
		sides:  DefaultSides,
	}
}

// Roll throws every die
func (r *Roller) Roll() Roll {
	roll := Roll{Dice: make([]int, r.count), Doubles: r.count > 1}
	for i := range roll.Dice {
		roll.Dice[i] = r.random.Intn(r.sides) + 1
		roll.Total += roll.Dice[i]
		if roll.Dice[i] != roll.Dice[0] {
			roll.Doubles = false
		}
	}
	return roll
}
