package model

import "fmt"

// Cell counts and well-known indices on the 3x3 grid
const (
	Size       = 3
	CellCount  = Size * Size
	CenterCell = 4
)

// emptySymbol marks an empty cell in a state key
const emptySymbol = '_'

// Corners are the corner cell indices in row-major order
var Corners = [4]int{0, 2, 6, 8}

// WinPatterns lists the eight winning index triples: rows, columns, diagonals.
// The enumeration order is significant: detection reports the first match.
var WinPatterns = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Board is the 9-cell grid, row-major. NoPlayer means empty.
// Board is a value type: assignment copies the whole grid.
type Board [CellCount]Player

// NewBoard returns an empty board
func NewBoard() Board {
	return Board{}
}

// ParseBoard decodes a 9-character state key ("X", "O", "_" or ".")
func ParseBoard(key string) (Board, error) {
	var b Board
	if len(key) != CellCount {
		return b, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidBoard, CellCount, len(key))
	}
	for i := 0; i < CellCount; i++ {
		switch key[i] {
		case 'X', 'x':
			b[i] = PlayerX
		case 'O', 'o':
			b[i] = PlayerO
		case emptySymbol, '.', ' ':
			b[i] = NoPlayer
		default:
			return b, fmt.Errorf("%w: unexpected symbol %q at %d", ErrInvalidBoard, key[i], i)
		}
	}
	return b, nil
}

// IsValidCell returns true if the index is within the grid
func IsValidCell(idx int) bool {
	return idx >= 0 && idx < CellCount
}

// Get returns the player at idx, or NoPlayer if empty or out of range
func (b *Board) Get(idx int) Player {
	if !IsValidCell(idx) {
		return NoPlayer
	}
	return b[idx]
}

// Set places p at idx; out-of-range indices are ignored
func (b *Board) Set(idx int, p Player) {
	if IsValidCell(idx) {
		b[idx] = p
	}
}

// IsEmpty returns true if the cell at idx holds no token
func (b *Board) IsEmpty(idx int) bool {
	return IsValidCell(idx) && b[idx] == NoPlayer
}

// IsFull returns true if all cells are occupied
func (b *Board) IsFull() bool {
	for _, c := range b {
		if c == NoPlayer {
			return false
		}
	}
	return true
}

// EmptyCells returns the empty indices in ascending order
func (b *Board) EmptyCells() []int {
	cells := make([]int, 0, CellCount)
	for i, c := range b {
		if c == NoPlayer {
			cells = append(cells, i)
		}
	}
	return cells
}

// EmptyCount returns the number of empty cells
func (b *Board) EmptyCount() int {
	count := 0
	for _, c := range b {
		if c == NoPlayer {
			count++
		}
	}
	return count
}

// Count returns how many cells p occupies
func (b *Board) Count(p Player) int {
	count := 0
	for _, c := range b {
		if c == p {
			count++
		}
	}
	return count
}

// ToMove infers whose turn it is assuming X opened and turns alternated
func (b *Board) ToMove() Player {
	if b.Count(PlayerX) > b.Count(PlayerO) {
		return PlayerO
	}
	return PlayerX
}

// With returns a copy of the board with p placed at idx
func (b Board) With(idx int, p Player) Board {
	b.Set(idx, p)
	return b
}

// StateKey returns the canonical 9-character key, one symbol per cell
func (b *Board) StateKey() string {
	key := make([]byte, CellCount)
	for i, c := range b {
		if c == NoPlayer {
			key[i] = emptySymbol
		} else {
			key[i] = byte(c)
		}
	}
	return string(key)
}

func (b Board) String() string {
	return b.StateKey()
}

// MarshalText encodes the board as its state key
func (b Board) MarshalText() ([]byte, error) {
	return []byte(b.StateKey()), nil
}

// UnmarshalText decodes a state key
func (b *Board) UnmarshalText(text []byte) error {
	parsed, err := ParseBoard(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
