package commands

import (
	"github.com/spf13/cobra"

	"tictactoe/engine"
	"tictactoe/game"
	"tictactoe/player"
	"tictactoe/searcher"
)

func newPlayCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play against a trained agent; it learns from the game",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			agent := a.newAgent(name)
			if err := agent.Load(cmd.Context(), s); err != nil {
				return a.loadFailed(name, err)
			}

			human := player.NewHuman("you", a.in, cmd.OutOrStdout())
			agentBegins := a.coin()
			var x, o player.Player = agent, human
			if !agentBegins {
				x, o = human, agent
				a.printer.StartingBoard(game.NewBoard())
			}

			result, err := engine.New(x, o, engine.WithObserver(a.printer.Move)).Run()
			if err != nil {
				return a.printer.Error("Game aborted", err.Error(), nil)
			}
			a.printer.Winner(result.Winner)

			if err := agent.Save(cmd.Context(), s); err != nil {
				a.printer.Warning("%v\n", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name of the agent to play against")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newMinimaxCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "minimax",
		Short: "Play against the minimax searcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			human := player.NewHuman("you", a.in, cmd.OutOrStdout())
			minimax := searcher.NewMinimax()

			humanBegins := a.coin()
			var x, o player.Player = minimax, human
			if humanBegins {
				x, o = human, minimax
				a.printer.StartingBoard(game.NewBoard())
			}

			result, err := engine.New(x, o, engine.WithObserver(a.printer.Move)).Run()
			if err != nil {
				return a.printer.Error("Game aborted", err.Error(), nil)
			}
			a.printer.Winner(result.Winner)
			return nil
		},
	}
}
