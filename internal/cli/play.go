package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/solaropoly/internal/api/response"
	"github.com/mcoot/solaropoly/internal/board"
	"github.com/mcoot/solaropoly/internal/dependencies/random"
	"github.com/mcoot/solaropoly/internal/display"
	"github.com/mcoot/solaropoly/internal/factory"
	"github.com/mcoot/solaropoly/internal/model"
	"github.com/mcoot/solaropoly/internal/services/game"
)

// buyAsk prompts the current player for every purchase
const buyAsk = "ask"

type playOptions struct {
	Players []string
	Board   string
	Balance int
	Buy     string
}

func newPlayCmd() *cobra.Command {
	var (
		opts playOptions
		seed uint64
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a hot-seat game in this terminal",
		Example: `  solaropoly play -p Alice -p Bob
  solaropoly play -p Alice -p Bob -p Carol --board mini --buy affordable --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := cfg.FactoryConfig(cfg.Logger())
			if err != nil {
				return err
			}
			if seed != 0 {
				fc.Random = random.NewSeeded(seed)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return runPlay(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), opts, fc)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Players, "player", "p", nil, "Player name, in seating order (repeatable)")
	cmd.Flags().StringVar(&opts.Board, "board", cfg.Board, "Board layout (env: SOLAROPOLY_BOARD)")
	cmd.Flags().IntVar(&opts.Balance, "balance", cfg.StartBalance, "Starting balance (env: SOLAROPOLY_START_BALANCE)")
	cmd.Flags().StringVar(&opts.Buy, "buy", buyAsk,
		fmt.Sprintf("Purchase policy: %s, %s", buyAsk, strings.Join(board.DeciderNames(), ", ")))
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible game (0 picks a random game)")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

// runPlay runs a whole game, reading commands from in until one player is
// left or in is exhausted
func runPlay(ctx context.Context, in io.Reader, out io.Writer, opts playOptions, fc factory.Config) error {
	term := display.NewTerminal(out)
	fc.Output = term

	app, err := factory.New(fc)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	scanner := bufio.NewScanner(in)

	var decider board.PurchaseDecider
	if opts.Buy == buyAsk {
		decider = promptDecider(scanner, out)
	} else {
		var ok bool
		if decider, ok = board.DeciderByName(opts.Buy, app.Random); !ok {
			return fmt.Errorf("%w: %q", model.ErrInvalidDecider, opts.Buy)
		}
	}

	ctrl := app.GameController
	record, err := ctrl.CreateSession(ctx, game.SessionConfig{
		BoardName:    opts.Board,
		PlayerNames:  opts.Players,
		StartBalance: opts.Balance,
	})
	if err != nil {
		return err
	}
	id := record.ID

	fmt.Fprintf(out, "Starting a game on %s with %d players.\n", record.BoardName, len(record.Players))
	printPlayHelp(out)

	for record.State == model.SessionStateInProgress {
		if err := ctx.Err(); err != nil {
			return err
		}

		cur := record.CurrentPlayer()
		fmt.Fprintf(out, "%s> ", cur.Name)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			term.Notice("Input closed, ending the game.")
			break
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "", "r", "roll":
			if _, err := ctrl.TakeTurn(ctx, id, cur.ID, decider); err != nil {
				return err
			}
		case "b", "balance":
			term.Balance(cur.Name, cur.Balance)
		case "s", "standings":
			if err := printPlayStandings(ctx, ctrl, id, out); err != nil {
				return err
			}
		case "q", "quit":
			if _, err := ctrl.Quit(ctx, id, cur.ID); err != nil {
				return err
			}
		case "h", "help", "?":
			printPlayHelp(out)
		default:
			term.Notice("Unknown command. Type help for the list.")
		}

		if record, err = ctrl.GetSession(ctx, id); err != nil {
			return err
		}
	}

	return printPlayStandings(ctx, ctrl, id, out)
}

// promptDecider asks the player on out and reads y or n from scanner.
// Anything else, including closed input, declines.
func promptDecider(scanner *bufio.Scanner, out io.Writer) board.PurchaseDecider {
	return board.DeciderFunc(func(p *model.Player, offer board.Offer) bool {
		fmt.Fprintf(out, "Buy %s (%s) for %s? You have %s. [y/N] ",
			offer.Tile, offer.Group, display.Money(offer.Price), display.Money(p.Balance()))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		return answer == "y" || answer == "yes"
	})
}

func printPlayStandings(ctx context.Context, ctrl game.ControllerInterface, id model.SessionID, out io.Writer) error {
	standings, err := ctrl.Standings(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil
		}
		return err
	}
	NewOutputTo("text", out).Print(response.Standings{
		SessionID: string(id),
		Standings: standings,
	})
	return nil
}

func printPlayHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands: [r]oll (or enter), [b]alance, [s]tandings, [q]uit, [h]elp")
}
