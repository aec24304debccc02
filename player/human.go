package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tictactoe/game"
)

var ErrInvalidInput = errors.New("invalid input")

// Human reads moves from a console. Positions are entered as 1 to 9.
type Human struct {
	name    string
	scanner *bufio.Scanner
	out     io.Writer
}

func NewHuman(name string, in io.Reader, out io.Writer) *Human {
	return &Human{
		name:    name,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (h *Human) Name() string {
	return h.name
}

// FindMove prompts until a free cell is entered. It fails only when the input
// ends.
func (h *Human) FindMove(board *game.Board, own game.Symbol) (int, error) {
	for {
		fmt.Fprintf(h.out, "Input your position (1-9) for %s: ", own)
		if !h.scanner.Scan() {
			if err := h.scanner.Err(); err != nil {
				return 0, fmt.Errorf("failed to read input: %w", err)
			}
			return 0, fmt.Errorf("failed to read input: %w", io.EOF)
		}

		position, err := ParsePosition(h.scanner.Text())
		if err != nil {
			fmt.Fprintln(h.out, err)
			continue
		}
		if board.Cells()[position] != game.Empty {
			fmt.Fprintf(h.out, "Position %d is already taken\n", position+1)
			continue
		}
		return position, nil
	}
}

// ParsePosition converts a 1-9 entry into a board index.
func ParsePosition(line string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, strings.TrimSpace(line))
	}
	if n < 1 || n > game.Size {
		return 0, fmt.Errorf("%w: %d is not between 1 and %d", ErrInvalidInput, n, game.Size)
	}
	return n - 1, nil
}
