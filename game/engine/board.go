package engine

import (
	"fmt"
	"math/rand/v2"
)

// Board holds the grid, the remaining capacity of each interior column,
// the current status and the generator used by Randomize
type Board struct {
	grid     [Rows][Cols]Cell
	capacity map[int]int
	status   Status
	moves    int
	rng      *rand.Rand
}

// NewBoard creates a board in its reset state
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset rebuilds the walls and empty interior, refills every column,
// clears the status and reseeds the generator
func (b *Board) Reset() {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if isWall(r, c) {
				b.grid[r][c] = Wall
			} else {
				b.grid[r][c] = Empty
			}
		}
	}

	b.capacity = make(map[int]int, InteriorCols)
	for c := FirstColumn; c <= LastColumn; c++ {
		b.capacity[c] = InteriorRows
	}

	b.status = Status{}
	b.moves = 0
	b.rng = rand.New(rand.NewPCG(Seed, Seed))
}

// CellAt returns the cell at an interior position. Rows count from 0 at the
// top, columns use the same 1-based numbering as Place.
func (b *Board) CellAt(row, col int) Cell {
	if !isInterior(row, col) {
		panic(fmt.Sprintf("engine: CellAt(%d, %d) outside interior", row, col))
	}
	return b.grid[row][col]
}

// setCell writes an interior position. Walls are immutable.
func (b *Board) setCell(row, col int, value Cell) {
	if !isInterior(row, col) {
		panic(fmt.Sprintf("engine: setCell(%d, %d) outside interior", row, col))
	}
	if !value.IsToken() && value != Empty {
		panic(fmt.Sprintf("engine: setCell(%d, %d) with %s", row, col, value))
	}
	b.grid[row][col] = value
}

// Capacity returns how many more tokens the column accepts, or 0 for a
// column outside the interior
func (b *Board) Capacity(column int) int {
	return b.capacity[column]
}

// Capacities returns a copy of the per-column capacities keyed by column number
func (b *Board) Capacities() map[int]int {
	out := make(map[int]int, len(b.capacity))
	for c, n := range b.capacity {
		out[c] = n
	}
	return out
}

// Status returns the current game status
func (b *Board) Status() Status {
	return b.status
}

// Moves returns the number of successful placements since the last reset
func (b *Board) Moves() int {
	return b.moves
}

// IsFull reports whether every interior cell holds a token
func (b *Board) IsFull() bool {
	for r := 0; r < InteriorRows; r++ {
		for c := FirstColumn; c <= LastColumn; c++ {
			if b.grid[r][c] == Empty {
				return false
			}
		}
	}
	return true
}

func isWall(row, col int) bool {
	return row == Rows-1 || col == 0 || col == Cols-1
}

func isInterior(row, col int) bool {
	return row >= 0 && row < InteriorRows && col >= FirstColumn && col <= LastColumn
}
