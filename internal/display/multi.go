package display

import "github.com/mcoot/solaropoly/internal/model"

// Multi fans every message out to each display in order
type Multi []model.Display

// Ensure Multi implements Display
var _ model.Display = Multi(nil)

func (m Multi) Attention(name string) {
	for _, d := range m {
		d.Attention(name)
	}
}

func (m Multi) Balance(name string, balance int) {
	for _, d := range m {
		d.Balance(name, balance)
	}
}

func (m Multi) Notice(msg string) {
	for _, d := range m {
		d.Notice(msg)
	}
}
