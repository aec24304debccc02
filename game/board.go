package game

import (
	"fmt"
	"strings"

	"tictactoe/utils"
)

// Board is a 3x3 grid. The side to move is derived from the number of empty
// cells, there is no explicit turn field.
type Board struct {
	cells [Size]Symbol
}

func NewBoard() *Board {
	return &Board{}
}

// FromCells builds a board from raw cells without validating turn order.
func FromCells(cells [Size]Symbol) *Board {
	return &Board{cells: cells}
}

// ParseBoard is the inverse of Hash.
func ParseBoard(hash string) (*Board, error) {
	runes := []rune(hash)
	if len(runes) != Size {
		return nil, fmt.Errorf("board hash must have %d cells, got %d", Size, len(runes))
	}
	b := &Board{}
	for i, r := range runes {
		s, err := ParseSymbol(r)
		if err != nil {
			return nil, err
		}
		b.cells[i] = s
	}
	return b, nil
}

func (b *Board) Cells() [Size]Symbol {
	return b.cells
}

func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// AvailablePositions returns the empty cells in ascending order.
func (b *Board) AvailablePositions() []int {
	return Available(b.cells)
}

// Available returns the empty cells of raw cells in ascending order.
func Available(cells [Size]Symbol) []int {
	positions := make([]int, 0, Size)
	for i, c := range cells {
		if c == Empty {
			positions = append(positions, i)
		}
	}
	return positions
}

func (b *Board) ApplyMove(position int, s Symbol) error {
	if position < 0 || position >= Size {
		return fmt.Errorf("%w: %d", ErrInvalidPosition, position)
	}
	if s != X && s != O {
		return fmt.Errorf("%w: %d", ErrInvalidSymbol, s)
	}
	if b.cells[position] != Empty {
		return fmt.Errorf("%w: position %d is occupied by %s", ErrOccupiedCell, position, b.cells[position])
	}

	b.cells[position] = s
	return nil
}

// Winner reports whether the game is over and who won. A terminal board with
// an Empty winner is a draw.
func (b *Board) Winner() (bool, Symbol) {
	return Winner(b.cells)
}

// Winner checks raw cells for a completed line or a full board.
func Winner(cells [Size]Symbol) (bool, Symbol) {
	for _, line := range Lines {
		a := cells[line[0]]
		if a != Empty && a == cells[line[1]] && a == cells[line[2]] {
			return true, a
		}
	}

	if utils.Count(cells[:], Empty) == 0 {
		return true, Empty
	}
	return false, Empty
}

// TurnToMove returns X when an odd number of cells is empty, O otherwise.
func (b *Board) TurnToMove() Symbol {
	if utils.Count(b.cells[:], Empty)%2 > 0 {
		return X
	}
	return O
}

// Moves returns how many cells are filled.
func (b *Board) Moves() int {
	return Size - utils.Count(b.cells[:], Empty)
}

// Hash encodes the cells in index order, one mark per cell.
func (b *Board) Hash() string {
	return Hash(b.cells)
}

func Hash(cells [Size]Symbol) string {
	var sb strings.Builder
	sb.Grow(Size)
	for _, c := range cells {
		sb.WriteRune(c.Mark())
	}
	return sb.String()
}

func (b *Board) String() string {
	var sb strings.Builder
	for i, c := range b.cells {
		if i%3 == 0 {
			sb.WriteString("\n")
			if i != 0 {
				sb.WriteString("-----------\n")
			}
		} else {
			sb.WriteString("|")
		}
		fmt.Fprintf(&sb, " %c ", c.Mark())
	}
	sb.WriteString("\n")
	return sb.String()
}
