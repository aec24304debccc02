package game

import (
	"errors"
	"fmt"

	"tictactoe/utils"
)

// Size is the number of cells on the board.
const Size = 9

var (
	ErrOccupiedCell    = errors.New("cell is occupied")
	ErrInvalidPosition = errors.New("position out of range")
	ErrInvalidSymbol   = errors.New("invalid symbol")
)

// Symbol is the content of a cell and identifies a side.
type Symbol int8

const (
	Empty Symbol = iota
	X
	O
)

var marks = []rune{' ', 'X', 'O'}

// Mark returns the single character used in hashes and renderings.
func (s Symbol) Mark() rune {
	if s < Empty || s > O {
		return '?'
	}
	return marks[s]
}

func (s Symbol) String() string {
	switch s {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return "nobody"
	}
}

// Opponent returns the other side. Empty has no opponent.
func (s Symbol) Opponent() Symbol {
	switch s {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

// ParseSymbol converts a mark back into a Symbol.
func ParseSymbol(r rune) (Symbol, error) {
	i := utils.FindIndex(marks, r)
	if i < 0 {
		return Empty, fmt.Errorf("%w: %q", ErrInvalidSymbol, r)
	}
	return Symbol(i), nil
}

// Lines lists the 3 rows, 3 columns and 2 diagonals.
var Lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}
