package t2048

import (
	"errors"
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

var directionNames = [...]string{
	DirUp:    "up",
	DirDown:  "down",
	DirLeft:  "left",
	DirRight: "right",
}

// ErrUnknownDirection is returned by ParseDirection for names outside the four moves.
var ErrUnknownDirection = errors.New("t2048: unknown direction")

// String returns the lowercase direction name.
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Valid reports whether d is one of the four moves.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection maps "up", "down", "left" or "right" (any case) to a Direction.
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d, n := range directionNames {
		if n == name {
			return Direction(d), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// BoardSize is the board dimension.
const BoardSize = 4

// Board represents a 4x4 game board indexed [y][x]. Zero is an empty cell.
type Board [BoardSize][BoardSize]int

// Cell is a board position.
type Cell struct {
	X, Y int
}

// orientation describes how a direction walks the board as lines.
// Position 0 of every line is the cell nearest to the move direction.
type orientation struct {
	columns bool // lines are columns rather than rows
	reverse bool // the near end is the high index
}

var orientations = [...]orientation{
	DirUp:    {columns: true},
	DirDown:  {columns: true, reverse: true},
	DirLeft:  {},
	DirRight: {reverse: true},
}

// cell returns the board position of the k-th cell (from the near end) of a line.
func (o orientation) cell(line, k int) Cell {
	if o.reverse {
		k = BoardSize - 1 - k
	}
	if o.columns {
		return Cell{X: line, Y: k}
	}
	return Cell{X: k, Y: line}
}

// slideLine compacts a line towards index 0 and merges equal neighbours.
// A tile produced by a merge does not merge again in the same pass.
// It returns the new line, the score gained and which positions hold merged tiles.
func slideLine(line [BoardSize]int) (out [BoardSize]int, gained int, merged [BoardSize]bool) {
	n := 0
	for _, v := range line {
		if v == 0 {
			continue
		}
		if n > 0 && out[n-1] == v && !merged[n-1] {
			out[n-1] *= 2
			gained += out[n-1]
			merged[n-1] = true
			continue
		}
		out[n] = v
		n++
	}
	return out, gained, merged
}

// slide applies slideLine to every line of the board for the given direction.
func slide(board Board, dir Direction) (out Board, gained int, merges []Cell) {
	o := orientations[dir]

	for i := range BoardSize {
		var line [BoardSize]int
		for k := range BoardSize {
			c := o.cell(i, k)
			line[k] = board[c.Y][c.X]
		}

		newLine, score, merged := slideLine(line)
		gained += score

		for k := range BoardSize {
			c := o.cell(i, k)
			out[c.Y][c.X] = newLine[k]
			if merged[k] {
				merges = append(merges, c)
			}
		}
	}

	return out, gained, merges
}

// Slide moves all tiles in the given direction and merges.
// Returns the new board, score gained, and whether the board changed.
func Slide(board Board, dir Direction) (Board, int, bool) {
	if !dir.Valid() {
		return board, 0, false
	}
	out, gained, _ := slide(board, dir)
	return out, gained, out != board
}

// EmptyCells returns all empty cells in row-major order.
func EmptyCells(board Board) []Cell {
	var cells []Cell
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] == 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(board Board) bool {
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any two orthogonally adjacent tiles are equal.
func HasPossibleMerge(board Board) bool {
	for y := range BoardSize {
		for x := range BoardSize {
			val := board[y][x]
			if val == 0 {
				continue
			}
			if x < BoardSize-1 && board[y][x+1] == val {
				return true
			}
			if y < BoardSize-1 && board[y+1][x] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move would change the board.
func CanMove(board Board) bool {
	return HasEmptyCell(board) || HasPossibleMerge(board)
}

// IsGameOver returns true if no moves are possible.
func IsGameOver(board Board) bool {
	return !CanMove(board)
}

// MaxTile returns the highest tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	for y := range BoardSize {
		for x := range BoardSize {
			maxVal = max(maxVal, board[y][x])
		}
	}
	return maxVal
}

// TileCount returns the number of occupied cells.
func TileCount(board Board) int {
	n := 0
	for y := range BoardSize {
		for x := range BoardSize {
			if board[y][x] != 0 {
				n++
			}
		}
	}
	return n
}
