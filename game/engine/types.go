package engine

import "fmt"

// Cell represents the content of a single grid position
type Cell uint8

const (
	Empty Cell = iota
	Cookie
	Milk
	Wall
)

const (
	// Board geometry, including the wall border
	Rows = 5
	Cols = 6

	// Playable interior: everything above the bottom wall row and
	// between the left and right wall columns
	InteriorRows = Rows - 1
	InteriorCols = Cols - 2

	// FirstColumn and LastColumn bound the 1-based column numbers accepted by Place
	FirstColumn = 1
	LastColumn  = Cols - 2

	// WinLength is the number of same-team cells in a line needed to win
	WinLength = 4

	// Seed is applied to the board generator on every reset
	Seed uint64 = 2024
)

// Glyphs used by Render
const (
	EmptyGlyph  = "⬛"
	CookieGlyph = "🍪"
	MilkGlyph   = "🥛"
	WallGlyph   = "⬜"
)

// Team names accepted by ParseTeam
const (
	TeamCookie = "cookie"
	TeamMilk   = "milk"
)

// Glyph returns the display glyph for the cell
func (c Cell) Glyph() string {
	switch c {
	case Empty:
		return EmptyGlyph
	case Cookie:
		return CookieGlyph
	case Milk:
		return MilkGlyph
	case Wall:
		return WallGlyph
	default:
		return "?"
	}
}

// String returns a lowercase name for the cell
func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Cookie:
		return TeamCookie
	case Milk:
		return TeamMilk
	case Wall:
		return "wall"
	default:
		return fmt.Sprintf("cell(%d)", uint8(c))
	}
}

// IsToken reports whether the cell holds a team token
func (c Cell) IsToken() bool {
	return c == Cookie || c == Milk
}

// Outcome is the coarse game result
type Outcome uint8

const (
	Undecided Outcome = iota
	Won
	Drawn
)

// String returns the outcome name used in snapshots and logs
func (o Outcome) String() string {
	switch o {
	case Undecided:
		return "undecided"
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// Status is the result of a DetectStatus scan. Winner is only meaningful
// when Outcome is Won.
type Status struct {
	Outcome Outcome
	Winner  Cell
}

// Decided reports whether the game has ended
func (s Status) Decided() bool {
	return s.Outcome != Undecided
}

// Line returns the status line printed below the grid, or "" while undecided
func (s Status) Line() string {
	switch s.Outcome {
	case Won:
		return s.Winner.Glyph() + " wins!"
	case Drawn:
		return "No winner."
	default:
		return ""
	}
}
