package engine

// DetectStatus scans the interior for a winning line. Rows are checked
// first, then columns, then the main diagonal and finally the
// anti-diagonal; the first complete line decides the winner. A full
// interior without a line is a draw.
func DetectStatus(b *Board) Status {
	// rows, left to right
	for r := 0; r < InteriorRows; r++ {
		for c := FirstColumn; c+WinLength-1 <= LastColumn; c++ {
			if w, ok := lineWinner(b, r, c, 0, 1); ok {
				return Status{Outcome: Won, Winner: w}
			}
		}
	}

	// columns, top to bottom
	for c := FirstColumn; c <= LastColumn; c++ {
		for r := 0; r+WinLength-1 < InteriorRows; r++ {
			if w, ok := lineWinner(b, r, c, 1, 0); ok {
				return Status{Outcome: Won, Winner: w}
			}
		}
	}

	// main diagonal, top-left to bottom-right
	for r := 0; r+WinLength-1 < InteriorRows; r++ {
		for c := FirstColumn; c+WinLength-1 <= LastColumn; c++ {
			if w, ok := lineWinner(b, r, c, 1, 1); ok {
				return Status{Outcome: Won, Winner: w}
			}
		}
	}

	// anti-diagonal, top-right to bottom-left
	for r := 0; r+WinLength-1 < InteriorRows; r++ {
		for c := LastColumn; c-WinLength+1 >= FirstColumn; c-- {
			if w, ok := lineWinner(b, r, c, 1, -1); ok {
				return Status{Outcome: Won, Winner: w}
			}
		}
	}

	if b.IsFull() {
		return Status{Outcome: Drawn}
	}
	return Status{Outcome: Undecided}
}

// lineWinner reports the token filling the WinLength cells starting at
// (row, col) and stepping by (dr, dc)
func lineWinner(b *Board, row, col, dr, dc int) (Cell, bool) {
	first := b.grid[row][col]
	if !first.IsToken() {
		return Empty, false
	}
	for i := 1; i < WinLength; i++ {
		if b.grid[row+i*dr][col+i*dc] != first {
			return Empty, false
		}
	}
	return first, true
}
