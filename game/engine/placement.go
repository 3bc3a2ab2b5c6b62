package engine

import "fmt"

// ParseTeam maps a team name to its token. Only the exact lowercase names
// are accepted.
func ParseTeam(name string) (Cell, error) {
	switch name {
	case TeamCookie:
		return Cookie, nil
	case TeamMilk:
		return Milk, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidTeam, name)
	}
}

// Place drops a token into a 1-based interior column and returns the
// rendered board. The board is left untouched when an error is returned.
func (b *Board) Place(team Cell, column int) (string, error) {
	if !team.IsToken() {
		return "", fmt.Errorf("%w: %s", ErrInvalidTeam, team)
	}
	if column < FirstColumn || column > LastColumn {
		return "", fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidColumn, column, FirstColumn, LastColumn)
	}
	if b.status.Decided() {
		return "", ErrGameOver
	}
	remaining := b.capacity[column]
	if remaining <= 0 {
		return "", fmt.Errorf("%w: column %d", ErrColumnFull, column)
	}

	// remaining-1 is the lowest empty interior row in this column
	b.setCell(remaining-1, column, team)
	b.capacity[column] = remaining - 1
	b.moves++

	b.status = DetectStatus(b)
	return b.Render(), nil
}
