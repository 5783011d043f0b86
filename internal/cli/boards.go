package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/solaropoly/internal/api/response"
	"github.com/mcoot/solaropoly/internal/board"
)

func newBoardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boards [name]",
		Short: "List the built-in board layouts, or show one in full",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())

			if len(args) == 1 {
				layout, err := board.LoadLayout(args[0])
				if err != nil {
					return err
				}
				out.Print(response.BoardFromLayout(layout, true))
				return nil
			}

			var boards []response.Board
			for _, name := range board.Layouts() {
				layout, err := board.LoadLayout(name)
				if err != nil {
					return err
				}
				boards = append(boards, response.BoardFromLayout(layout, false))
			}
			out.Print(boards)
			return nil
		},
	}
}
