package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"tictactoe/experiments"
	"tictactoe/game"
)

func init() {
	// Force color output even when not connected to TTY
	// Users can disable with NO_COLOR environment variable
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

// Printer renders games and results for a human.
type Printer struct {
	out io.Writer
	err io.Writer
}

func New(out, err io.Writer) *Printer {
	return &Printer{out: out, err: err}
}

func mark(s game.Symbol) string {
	switch s {
	case game.X:
		return green.Sprint("X")
	case game.O:
		return cyan.Sprint("O")
	default:
		return " "
	}
}

// Board draws the grid the same way game.Board.String does, with colored marks.
func (p *Printer) Board(board *game.Board) {
	var sb strings.Builder
	for i, c := range board.Cells() {
		if i%3 == 0 {
			sb.WriteString("\n")
			if i != 0 {
				sb.WriteString("-----------\n")
			}
		} else {
			sb.WriteString("|")
		}
		fmt.Fprintf(&sb, " %s ", mark(c))
	}
	sb.WriteString("\n")
	fmt.Fprintln(p.out, sb.String())
}

func (p *Printer) StartingBoard(board *game.Board) {
	fmt.Fprintln(p.out, "Starting board")
	p.Board(board)
}

// Move can be used as an engine observer.
func (p *Printer) Move(board *game.Board, mover game.Symbol) {
	fmt.Fprintf(p.out, "Game after %s's move\n", mark(mover))
	p.Board(board)
}

func (p *Printer) Winner(winner game.Symbol) {
	bold.Fprintf(p.out, "The winner is %s.\n", winner)
}

// Tallies prints a win/draw/loss table per participant and side.
func (p *Printer) Tallies(standings []experiments.Standing) {
	fmt.Fprintf(p.out, "%-12s %-6s %6s %6s %6s %6s\n", "player", "side", "wins", "draws", "losses", "sum")
	row := func(name, side string, s experiments.Stat) {
		fmt.Fprintf(p.out, "%-12s %-6s %6d %6d %6d %6d\n", name, side, s.Wins, s.Draws, s.Losses, s.Sum())
	}
	for _, s := range standings {
		row(s.Name, "X", s.PlayingX)
		row(s.Name, "O", s.PlayingO)
		row(s.Name, "total", s.Total())
	}
}

// Success prints a success message in green with a checkmark prefix
func (p *Printer) Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		green.Fprintf(p.out, "✓ %s", msg)
	} else {
		green.Fprint(p.out, msg)
	}
}

// Warning prints a warning message in yellow with a warning emoji prefix
func (p *Printer) Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		yellow.Fprintf(p.err, "⚠️  %s", msg)
	} else {
		yellow.Fprint(p.err, msg)
	}
}

// Error prints a title, an explanation and suggestions to the error stream and
// returns a plain error carrying the title for Cobra
func (p *Printer) Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(p.err, "%s\n\n", title)
	fmt.Fprintf(p.err, "%s\n", explanation)

	if len(suggestions) > 0 {
		fmt.Fprintf(p.err, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(p.err, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(p.err, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(p.err, "  %d. %s\n", i+1, suggestion)
			}
		}
	}
	return fmt.Errorf("%s", title)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}
