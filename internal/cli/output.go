package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mcoot/solaropoly/internal/api/response"
	"github.com/mcoot/solaropoly/internal/display"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	bold   *color.Color
}

// NewOutputTo creates a new Output formatter writing to w
func NewOutputTo(format string, w io.Writer) *Output {
	bold := color.New(color.Bold)
	if !isTerminal(w) {
		bold.DisableColor()
	}
	return &Output{format: format, w: w, bold: bold}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Session:
		o.printSession(v)
	case []response.SessionSummary:
		o.printSessionList(v)
	case response.Turn:
		o.printTurn(v)
	case response.Standings:
		o.printStandings(v)
	case []response.Board:
		o.printBoards(v)
	case response.Board:
		o.printBoard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s response.Session) {
	fmt.Fprintf(o.w, "Session: %s\n", o.bold.Sprint(s.ID))
	fmt.Fprintf(o.w, "Board: %s\n", s.Board)
	fmt.Fprintf(o.w, "State: %s\n", s.State)
	fmt.Fprintf(o.w, "Turns taken: %d\n", s.Turn)
	fmt.Fprintf(o.w, "Players (%d):\n", len(s.Players))
	for _, p := range s.Players {
		var tags []string
		if s.CurrentPlayer != nil && *s.CurrentPlayer == p.ID {
			tags = append(tags, "to play")
		}
		if !p.Active {
			tags = append(tags, "out")
		}
		suffix := ""
		if len(tags) > 0 {
			suffix = " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Fprintf(o.w, "  - %s (%s) %s on tile %d, %d properties%s\n",
			p.Name, p.ID, display.Money(p.Balance), p.Position, len(p.OwnedTiles), suffix)
	}
	if s.Winner != nil {
		fmt.Fprintf(o.w, "Winner: %s\n", *s.Winner)
	}
}

func (o *Output) printSessionList(sessions []response.SessionSummary) {
	if len(sessions) == 0 {
		fmt.Fprintln(o.w, "No sessions")
		return
	}
	for _, s := range sessions {
		fmt.Fprintf(o.w, "%s  %-6s  %-11s  %d/%d players\n", s.ID, s.Board, s.State, s.Active, s.Players)
	}
}

func (o *Output) printTurn(t response.Turn) {
	for _, n := range t.Notices {
		fmt.Fprintln(o.w, n)
	}
	if t.GameOver {
		fmt.Fprintf(o.w, "Game over. Winner: %s\n", t.Winner)
	} else if t.NextPlayer != "" {
		fmt.Fprintf(o.w, "Next player: %s\n", t.NextPlayer)
	}
}

func (o *Output) printStandings(s response.Standings) {
	fmt.Fprintf(o.w, "Standings for %s:\n", s.SessionID)
	for _, st := range s.Standings {
		out := ""
		if !st.Active {
			out = " (out)"
		}
		fmt.Fprintf(o.w, "  %d. %s  %s cash + %s property = %s%s\n",
			st.Rank, st.Name, display.Money(st.Balance), display.Money(st.Assets), display.Money(st.NetWorth), out)
	}
}

func (o *Output) printBoards(boards []response.Board) {
	for _, b := range boards {
		fmt.Fprintf(o.w, "%-8s %2d tiles, %s for passing start\n", b.Name, b.Size, display.Money(b.StartBonus))
	}
}

func (o *Output) printBoard(b response.Board) {
	fmt.Fprintf(o.w, "%s (%d tiles)\n", o.bold.Sprint(b.Name), b.Size)
	for _, t := range b.Tiles {
		line := fmt.Sprintf("  %2d  %-8s %s", t.Index, t.Kind, t.Name)
		if t.Group != "" {
			line += fmt.Sprintf(" [%s] %s", t.Group, display.Money(t.Price))
		}
		fmt.Fprintln(o.w, line)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
