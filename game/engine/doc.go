// Package engine provides the core game logic for the Cookie & Milk board.
//
// The engine package implements:
//   - A fixed 5x6 grid with a permanent wall border and a 4x4 interior
//   - Gravity-style placement tracked by per-column capacity counters
//   - Line-based win detection over rows, columns and both diagonals
//   - A deterministic full random fill driven by a seeded generator
//   - Text rendering with the emoji glyph table
//
// Core Types:
//
// Board owns the grid, the column capacities, the game status and the
// random generator. Cell is a single grid value and Status reports the
// outcome computed by DetectStatus after every mutation.
//
// Usage:
//
//	board := engine.NewBoard()
//
//	team, err := engine.ParseTeam("cookie")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	text, err := board.Place(team, 2)
//	if errors.Is(err, engine.ErrState) {
//		// board is not accepting moves right now
//	}
//	fmt.Print(text)
//
// Concurrency:
//
// Board is not safe for concurrent use. The service package owns the only
// instance and serializes access to it.
package engine
