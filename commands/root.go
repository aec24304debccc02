package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"tictactoe/config"
	"tictactoe/experiments"
	"tictactoe/experiments/metrics"
	"tictactoe/learner"
	"tictactoe/printer"
	"tictactoe/store"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	in      io.Reader
	printer *printer.Printer
	config  *config.Config

	configPath string
	logLevel   string
	dataDir    string
	backend    string
}

// NewRootCmd builds the command tree reading from in and writing to out and
// errOut.
func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{
		in:      in,
		printer: printer.New(out, errOut),
	}

	rootCmd := &cobra.Command{
		Use:   "tictactoe",
		Short: "Tic-tac-toe with a self-taught agent and a perfect minimax player",
		Long: `Train a tabular temporal-difference agent by self-play, play against it or
against an alpha-beta minimax searcher, and measure agents against each other.

Value tables are stored as JSON in files, Redis or Badger.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, errOut)
		},
		SilenceErrors:      true,
		SilenceUsage:       true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.dataDir, "data-dir", "", "directory holding value tables for the file store")
	flags.StringVar(&a.backend, "store", "", "store backend (file, redis, badger)")

	rootCmd.AddCommand(
		newTrainCmd(a),
		newPlayCmd(a),
		newMinimaxCmd(a),
		newEvaluateCmd(a),
		newDuelCmd(a),
	)
	return rootCmd
}

// Execute runs the command tree on the process streams.
func Execute() error {
	return NewRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute()
}

func (a *app) setup(cmd *cobra.Command, errOut io.Writer) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return a.printer.Error("Invalid configuration", err.Error(), []string{"Fix the file passed with --config"})
		}
		cfg = loaded
	}

	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	if a.backend != "" {
		cfg.Store.Backend = a.backend
	}
	if err := cfg.Validate(); err != nil {
		return a.printer.Error("Invalid configuration", err.Error(), nil)
	}
	a.config = cfg

	level, _ := zerolog.ParseLevel(cfg.Log.Level)
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: errOut, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	return nil
}

func (a *app) openStore() (store.Store, error) {
	s, err := store.Open(a.config)
	if err != nil {
		return nil, a.printer.Error("Cannot open store", err.Error(), []string{
			fmt.Sprintf("Check the %s backend settings", a.config.Store.Backend),
		})
	}
	return s, nil
}

func (a *app) newAgent(name string) *learner.Agent {
	return learner.NewAgent(name,
		learner.WithLearningRate(a.config.Learning.LearningRate),
		learner.WithExplorationRate(a.config.Learning.ExplorationRate),
		learner.WithSeed(a.config.Learning.Seed),
	)
}

func (a *app) newCollector() metrics.Collector {
	if a.config.Metrics.Textfile == "" {
		return metrics.NewDummyCollector()
	}
	return metrics.NewCollector()
}

func (a *app) writeMetrics(collector metrics.Collector) {
	if a.config.Metrics.Textfile == "" {
		return
	}
	if err := collector.WriteTextfile(a.config.Metrics.Textfile); err != nil {
		a.printer.Warning("%v\n", err)
	}
}

// coin tosses are seeded like the agents so that a configured seed replays a
// whole session.
func (a *app) coin() bool {
	seed := a.config.Learning.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed)).Intn(2) == 0
}

func (a *app) loadFailed(name string, err error) error {
	if errors.Is(err, store.ErrModelNotFound) {
		return a.printer.Error("Model not found", err.Error(), []string{
			fmt.Sprintf("Train it first: tictactoe train --name %s --cycles 100000", name),
			"Point --data-dir or --store at where it was saved",
		})
	}
	return a.printer.Error("Cannot load model", err.Error(), nil)
}

func (a *app) tournamentOptions(games int, collector metrics.Collector) []experiments.Option {
	return []experiments.Option{
		experiments.WithGames(games),
		experiments.WithSeed(a.config.Learning.Seed),
		experiments.WithCollector(collector),
	}
}

func (a *app) loadFailedOrAborted(name string, err error) error {
	if errors.Is(err, store.ErrModelNotFound) || errors.Is(err, store.ErrDeserialization) {
		return a.loadFailed(name, err)
	}
	return a.printer.Error("Evaluation aborted", err.Error(), nil)
}

// finish prints the tallies and writes the optional result files. A failed
// save is reported without failing the run.
func (a *app) finish(report experiments.Report, collector metrics.Collector) error {
	a.printer.Tallies(report.Standings)
	if report.SaveErr != nil {
		a.printer.Warning("%v\n", report.SaveErr)
	}
	a.writeMetrics(collector)

	if a.config.Evaluation.ResultsDir != "" {
		dir, err := experiments.Export(a.config.Evaluation.ResultsDir, report)
		if err != nil {
			return a.printer.Error("Cannot write results", err.Error(), nil)
		}
		a.printer.Success("results written to %s\n", dir)
	}
	return nil
}
