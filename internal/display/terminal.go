// Package display renders player-facing text for terminal play.
package display

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mcoot/solaropoly/internal/model"
)

const (
	// DefaultWidth is used when the terminal width cannot be determined
	DefaultWidth = 80

	separatorChar = "_"
)

// Terminal writes styled text to a terminal
type Terminal struct {
	out   io.Writer
	width int
	name  *color.Color
}

// Ensure Terminal implements Display
var _ model.Display = (*Terminal)(nil)

// NewTerminal creates a Terminal writing to out. Colour is only used when
// out is a terminal.
func NewTerminal(out io.Writer) *Terminal {
	name := color.New(color.FgHiRed, color.Bold)
	if !isTerminal(out) {
		name.DisableColor()
	}
	return &Terminal{
		out:   out,
		width: Width(out),
		name:  name,
	}
}

// Attention prints a full-width separator and prompts the player to act
func (t *Terminal) Attention(name string) {
	fmt.Fprintln(t.out, strings.Repeat(separatorChar, t.width))
	fmt.Fprintf(t.out, "Player %s, take action!\n\n", t.name.Sprint(name))
}

// Balance prints the player's balance
func (t *Terminal) Balance(name string, balance int) {
	fmt.Fprintf(t.out, "%s, your current balance is %s.\n", t.name.Sprint(name), Money(balance))
}

// Notice prints a message as-is
func (t *Terminal) Notice(msg string) {
	fmt.Fprintln(t.out, msg)
}

// Width returns the terminal width: $COLUMNS if set, then the size of out if
// it is a terminal, else DefaultWidth
func Width(out io.Writer) int {
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return DefaultWidth
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// moneyPrinter groups digits the British way
var moneyPrinter = message.NewPrinter(language.BritishEnglish)

// Money formats an amount in pounds with thousands separators
func Money(amount int) string {
	digits := moneyPrinter.Sprintf("%d", amount)
	if rest, negative := strings.CutPrefix(digits, "-"); negative {
		return "-£" + rest
	}
	return "£" + digits
}
