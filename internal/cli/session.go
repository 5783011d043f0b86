package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/solaropoly/internal/api/request"
	"github.com/mcoot/solaropoly/internal/api/response"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session commands against a running server",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionTurnCmd())
	cmd.AddCommand(newSessionQuitCmd())
	cmd.AddCommand(newSessionStandingsCmd())
	cmd.AddCommand(newSessionEventsCmd())

	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	var (
		players      []string
		boardName    string
		startBalance int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.CreateSessionRequest{
				Board:        boardName,
				Players:      players,
				StartBalance: startBalance,
			}

			var result response.Session

			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&players, "player", "p", nil, "Player name, in seating order (repeatable)")
	cmd.Flags().StringVar(&boardName, "board", "", "Board layout (default: server default)")
	cmd.Flags().IntVar(&startBalance, "balance", 0, "Starting balance (default: server default)")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []response.SessionSummary

			if err := client.Get("/api/v1/sessions", &result); err != nil {
				return err
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get session details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionTurnCmd() *cobra.Command {
	var buy string

	cmd := &cobra.Command{
		Use:   "turn <id> <player_id>",
		Short: "Roll and move for the current player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := request.TakeTurnRequest{PlayerID: args[1], Buy: buy}

			var result response.Turn

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/turns", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&buy, "buy", "", "Purchase policy: affordable, always, never, random")

	return cmd
}

func newSessionQuitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quit <id> <player_id>",
		Short: "Leave a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/players/%s/quit", args[0], args[1]), nil, &result); err != nil {
				return err
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newSessionStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings <id>",
		Short: "Show the session scoreboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Standings

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s/standings", args[0]), &result); err != nil {
				return err
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
