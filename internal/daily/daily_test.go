package daily

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle-engine/assets"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/database"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	assert.Equal(t, "2026-10-16", DateKey(time.Date(2026, 10, 17, 3, 0, 0, 0, loc)))
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC)

	a := WordIndex(day, "salt", 100)
	assert.Equal(t, a, WordIndex(later, "salt", 100), "same UTC day, same index")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 100)
	assert.Equal(t, 0, WordIndex(day, "salt", 0))

	differs := false
	for i := 1; i <= 10; i++ {
		if WordIndex(day.AddDate(0, 0, i), "salt", 1000) != WordIndex(day, "salt", 1000) {
			differs = true
		}
	}
	assert.True(t, differs, "index varies across days")
}

func TestPuzzleFor(t *testing.T) {
	dict, err := words.New([]string{"apple", "brick", "crane"})
	require.NoError(t, err)

	day := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	p := PuzzleFor(day, "salt", dict)
	assert.Equal(t, "2026-10-17", p.Date)
	assert.Equal(t, dict.At(p.WordIndex), p.Answer)
}

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db, assets.Migrations))
	return NewStore(db)
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	played, err := s.AlreadyPlayed(ctx, "u1", "2026-10-17")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-17", Guesses: 4, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u2", Date: "2026-10-17", Guesses: 3, ElapsedMs: 9000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u3", Date: "2026-10-17", Guesses: 6, ElapsedMs: 1000}))
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u4", Date: "2026-10-16", Guesses: 1, ElapsedMs: 10}))
	// duplicate is ignored
	require.NoError(t, s.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-17", Guesses: 1, ElapsedMs: 1}))

	played, err = s.AlreadyPlayed(ctx, "u1", "2026-10-17")
	require.NoError(t, err)
	assert.True(t, played)

	rows, err := s.Leaderboard(ctx, "2026-10-17", 0)
	require.NoError(t, err)
	assert.Equal(t, []LBRow{
		{UserID: "u3", Guesses: 6, ElapsedMs: 1000},
		{UserID: "u2", Guesses: 3, ElapsedMs: 9000},
		{UserID: "u1", Guesses: 4, ElapsedMs: 9000},
	}, rows)

	rows, err = s.Leaderboard(ctx, "2026-10-17", 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
