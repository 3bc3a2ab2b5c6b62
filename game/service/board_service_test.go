package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wricardo/mcp-training/cookieboard/game/engine"
)

const canonicalBoard = "⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬛⬛⬛⬛⬜\n" +
	"⬜⬜⬜⬜⬜⬜\n"

func TestRenderFreshBoard(t *testing.T) {
	svc := NewBoardService()

	text, err := svc.Render(context.Background())
	require.NoError(t, err)
	require.Equal(t, canonicalBoard, text)
}

func TestPlaceCookieWinsColumn(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService()
	require.NoError(t, svc.Reset(ctx))

	var text string
	var err error
	for i := 0; i < 4; i++ {
		text, err = svc.Place(ctx, "cookie", 1)
		require.NoError(t, err)
	}
	require.True(t, strings.HasSuffix(text, "🍪 wins!\n"), "unexpected board:\n%s", text)

	_, err = svc.Place(ctx, "milk", 2)
	require.ErrorIs(t, err, engine.ErrGameOver)
	require.ErrorIs(t, err, engine.ErrState)

	after, err := svc.Render(ctx)
	require.NoError(t, err)
	require.Equal(t, text, after)
}

func TestPlaceErrors(t *testing.T) {
	tests := []struct {
		name     string
		team     string
		column   int
		wantErr  error
		category error
	}{
		{"unknown team", "tea", 1, engine.ErrInvalidTeam, engine.ErrValidation},
		{"capitalized team", "Cookie", 1, engine.ErrInvalidTeam, engine.ErrValidation},
		{"bad team and column", "tea", 99, engine.ErrInvalidTeam, engine.ErrValidation},
		{"column zero", "milk", 0, engine.ErrInvalidColumn, engine.ErrValidation},
		{"column five", "cookie", 5, engine.ErrInvalidColumn, engine.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewBoardService()

			text, err := svc.Place(context.Background(), tt.team, tt.column)
			require.ErrorIs(t, err, tt.wantErr)
			require.ErrorIs(t, err, tt.category)
			require.Empty(t, text)

			board, err := svc.Render(context.Background())
			require.NoError(t, err)
			require.Equal(t, canonicalBoard, board)
		})
	}
}

func TestColumnFullLeavesBoardUnchanged(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService()

	for _, team := range []string{"cookie", "milk", "cookie", "milk"} {
		_, err := svc.Place(ctx, team, 3)
		require.NoError(t, err)
	}
	before, err := svc.Render(ctx)
	require.NoError(t, err)

	_, err = svc.Place(ctx, "cookie", 3)
	require.ErrorIs(t, err, engine.ErrColumnFull)

	after, err := svc.Render(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestResetAfterRandomize(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService()

	_, err := svc.Randomize(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Reset(ctx))

	text, err := svc.Render(ctx)
	require.NoError(t, err)
	require.Equal(t, canonicalBoard, text)

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, map[int]int{1: 4, 2: 4, 3: 4, 4: 4}, snap.Capacity)
	require.Equal(t, "undecided", snap.Status)
}

func TestRandomizeReproducibleAcrossServices(t *testing.T) {
	ctx := context.Background()
	a := NewBoardService()
	b := NewBoardService()

	require.NoError(t, a.Reset(ctx))
	first, err := a.Randomize(ctx)
	require.NoError(t, err)

	require.NoError(t, b.Reset(ctx))
	second, err := b.Randomize(ctx)
	require.NoError(t, err)

	require.Equal(t, first, second)

	snapA, err := a.Snapshot(ctx)
	require.NoError(t, err)
	snapB, err := b.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, snapA, snapB)
	require.NotEqual(t, "undecided", snapA.Status)
}

func TestRandomizeWithoutResetAdvances(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService()

	first, err := svc.Randomize(ctx)
	require.NoError(t, err)
	second, err := svc.Randomize(ctx)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	require.NoError(t, svc.Reset(ctx))
	again, err := svc.Randomize(ctx)
	require.NoError(t, err)
	require.Equal(t, first, again)
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService()

	for i := 0; i < 4; i++ {
		_, err := svc.Place(ctx, "milk", 2)
		require.NoError(t, err)
	}

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	require.Equal(t, "won", snap.Status)
	require.Equal(t, "milk", snap.Winner)
	require.Equal(t, "🥛 wins!", snap.Message)
	require.Equal(t, 4, snap.Moves)
	require.Equal(t, 0, snap.Capacity[2])
	require.Len(t, snap.Rows, engine.Rows)
	require.Equal(t, "⬜⬛🥛⬛⬛⬜", snap.Rows[0])

	text, err := svc.Render(ctx)
	require.NoError(t, err)
	require.Equal(t, text, snap.Text)
}

func TestPanicPoisonsService(t *testing.T) {
	ctx := context.Background()
	impl := NewBoardService().(*boardServiceImpl)

	err := impl.write(func(b *engine.Board) error {
		b.CellAt(engine.Rows-1, 0) // wall coordinate
		return nil
	})
	require.ErrorIs(t, err, ErrLockPoisoned)
	require.ErrorIs(t, err, ErrConcurrency)

	_, err = impl.Render(ctx)
	require.ErrorIs(t, err, ErrLockPoisoned)

	_, err = impl.Snapshot(ctx)
	require.ErrorIs(t, err, ErrLockPoisoned)

	require.ErrorIs(t, impl.Reset(ctx), ErrLockPoisoned)

	_, err = impl.Randomize(ctx)
	require.ErrorIs(t, err, ErrLockPoisoned)

	_, err = impl.Place(ctx, "cookie", 1)
	require.ErrorIs(t, err, ErrLockPoisoned)

	// validation does not bypass the poisoned lock
	_, err = impl.Place(ctx, "tea", 1)
	require.ErrorIs(t, err, ErrLockPoisoned)
	require.False(t, errors.Is(err, engine.ErrValidation))
}

func TestConcurrentPlacementsAreSerialized(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService()

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			team := "cookie"
			if i%2 == 1 {
				team = "milk"
			}
			_, err := svc.Place(ctx, team, i%4+1)
			results <- err
		}(i)
	}

	// readers run alongside the writers
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			text, err := svc.Render(ctx)
			if err == nil && strings.Count(text, "\n") < engine.Rows {
				err = errors.New("truncated render")
			}
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	for err := range results {
		if err != nil {
			require.ErrorIs(t, err, engine.ErrState)
		}
	}

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	filled := 0
	for _, row := range snap.Rows[:engine.InteriorRows] {
		filled += strings.Count(row, engine.CookieGlyph) + strings.Count(row, engine.MilkGlyph)
	}
	require.Equal(t, snap.Moves, filled)

	used := 0
	for c := engine.FirstColumn; c <= engine.LastColumn; c++ {
		used += engine.InteriorRows - snap.Capacity[c]
	}
	require.Equal(t, filled, used)
}
