package engine

// Randomize fills every interior cell with a token drawn from the board
// generator in row-major order, locks all columns and returns the rendered
// board. Gravity and the current status are ignored.
func (b *Board) Randomize() string {
	for r := 0; r < InteriorRows; r++ {
		for c := FirstColumn; c <= LastColumn; c++ {
			if b.rng.Uint64()&1 == 1 {
				b.setCell(r, c, Cookie)
			} else {
				b.setCell(r, c, Milk)
			}
		}
	}

	for c := FirstColumn; c <= LastColumn; c++ {
		b.capacity[c] = 0
	}

	b.status = DetectStatus(b)
	return b.Render()
}
