package engine

import "strings"

// Render returns the grid as Rows lines of Cols glyphs followed by the
// status line once the game is decided. Every line ends with a newline.
func (b *Board) Render() string {
	var sb strings.Builder
	for _, row := range b.RenderRows() {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	if line := b.status.Line(); line != "" {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderRows returns one glyph string per grid row, walls included
func (b *Board) RenderRows() []string {
	rows := make([]string, 0, Rows)
	for r := 0; r < Rows; r++ {
		var sb strings.Builder
		for c := 0; c < Cols; c++ {
			sb.WriteString(b.grid[r][c].Glyph())
		}
		rows = append(rows, sb.String())
	}
	return rows
}
