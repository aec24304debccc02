package commands

import (
	"github.com/spf13/cobra"

	"tictactoe/training"
)

func newTrainCmd(a *app) *cobra.Command {
	var (
		name    string
		cycles  int
		workers int
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an agent by self-play and save its value table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cycles < 0 {
				return a.printer.Error("Invalid cycles", "--cycles must not be negative", nil)
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.config.Training.Workers
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			collector := a.newCollector()
			controller := training.NewController(name, s,
				training.WithWorkers(workers),
				training.WithSeed(a.config.Learning.Seed),
				training.WithProgressEvery(a.config.Training.ProgressEvery),
				training.WithLearningRate(a.config.Learning.LearningRate),
				training.WithExplorationRate(a.config.Learning.ExplorationRate),
				training.WithCollector(collector),
			)

			summary, err := controller.Run(cmd.Context(), cycles)
			if err != nil {
				return a.printer.Error("Training failed", err.Error(), nil)
			}
			a.writeMetrics(collector)

			a.printer.Printf("X won %d, O won %d, %d draws\n", summary.XWins, summary.OWins, summary.Draws)
			a.printer.Success("trained %s for %d cycles, %d states saved\n", name, summary.Cycles, summary.States)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name of the agent to train")
	cmd.Flags().IntVar(&cycles, "cycles", 0, "number of self-play games")
	cmd.Flags().IntVar(&workers, "workers", 1, "number of games played in parallel")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("cycles")
	return cmd
}
