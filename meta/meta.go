// meta/meta.go
package meta

// LearningRate is the step size of the temporal-difference update.
const LearningRate = 0.2

// ExplorationRate is the probability of picking a random move.
const ExplorationRate = 0.1

// EvaluationGames defines the number of games per evaluation run.
const EvaluationGames = 100

// ProgressEvery defines how many training cycles pass between progress logs.
const ProgressEvery = 1000

// MaxAttempts bounds consecutive rejected moves before a game is abandoned.
const MaxAttempts = 10

// MinimaxName labels the minimax searcher in tallies.
const MinimaxName = "minimax"
