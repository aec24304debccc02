package commands

import (
	"github.com/spf13/cobra"

	"tictactoe/experiments"
)

func newEvaluateCmd(a *app) *cobra.Command {
	var (
		name  string
		games int
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Play an agent against minimax and tally the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("games") {
				games = a.config.Evaluation.Games
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			collector := a.newCollector()
			report, err := experiments.Evaluate(cmd.Context(), s, a.newAgent(name), a.tournamentOptions(games, collector)...)
			if err != nil {
				return a.loadFailedOrAborted(name, err)
			}
			return a.finish(report, collector)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name of the agent to evaluate")
	cmd.Flags().IntVar(&games, "games", 100, "number of games")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newDuelCmd(a *app) *cobra.Command {
	var (
		name     string
		opponent string
		games    int
	)

	cmd := &cobra.Command{
		Use:   "duel",
		Short: "Play two agents against each other; both learn",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == opponent {
				return a.printer.Error("Invalid opponent", "an agent cannot duel itself", nil)
			}
			if !cmd.Flags().Changed("games") {
				games = a.config.Evaluation.Games
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			collector := a.newCollector()
			report, err := experiments.Duel(cmd.Context(), s, a.newAgent(name), a.newAgent(opponent), a.tournamentOptions(games, collector)...)
			if err != nil {
				return a.loadFailedOrAborted(name, err)
			}
			return a.finish(report, collector)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name of the first agent")
	cmd.Flags().StringVar(&opponent, "opponent", "", "name of the second agent")
	cmd.Flags().IntVar(&games, "games", 100, "number of games")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("opponent")
	return cmd
}
