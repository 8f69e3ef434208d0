package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/game"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

func newGame(t *testing.T, id string) *game.Game {
	t.Helper()
	d, err := words.New([]string{"apple", "crane", "slate"})
	require.NoError(t, err)
	g, err := game.New(d, game.WithAnswer("apple"), game.WithID(id))
	require.NoError(t, err)
	return g
}

func TestSaveView(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, newGame(t, "g1")))
	assert.Equal(t, 1, s.Len())

	var answer string
	require.NoError(t, s.View(ctx, "g1", func(g *game.Game) error {
		answer = g.Answer()
		return nil
	}))
	assert.Equal(t, "apple", answer)

	err := s.View(ctx, "g2", func(*game.Game) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, "nope", func(*game.Game) error { return nil }), ErrNotFound)
}

func TestUpdatePropagatesError(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, newGame(t, "g1")))

	err := s.Update(ctx, "g1", func(g *game.Game) error {
		_, err := g.Play("zzzzz")
		return err
	})
	assert.ErrorIs(t, err, game.ErrNotInWordList)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore()
	assert.ErrorIs(t, s.Save(ctx, newGame(t, "g1")), context.Canceled)
}

func TestConcurrentUpdatesRespectLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, newGame(t, "g1")))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, "g1", func(g *game.Game) error {
				if g.SubmitGuess("crane") {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, game.MaxGuesses, accepted)
	require.NoError(t, s.View(ctx, "g1", func(g *game.Game) error {
		assert.Len(t, g.GuessHistory(), game.MaxGuesses)
		return nil
	}))
}
