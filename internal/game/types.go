// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - Feedback: the five marks for one guess.
//   - Game: state for a single in-progress or finished game.

package game

import (
	"errors"
	"math/rand"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

const (
	WordLength = words.Length // letters per guess
	MaxGuesses = 6            // guesses before the game is lost
)

// Mark represents the evaluation result for a single letter in a guess.
//   - "correct": letter is in the answer at this position.
//   - "present": letter is in the answer at another position.
//   - "absent":  no unclaimed occurrence of the letter is left in the answer.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// rank orders marks for keyboard summaries (higher wins).
func (m Mark) rank() int {
	switch m {
	case MarkCorrect:
		return 3
	case MarkPresent:
		return 2
	case MarkAbsent:
		return 1
	}
	return 0
}

// Feedback holds one mark per letter position.
type Feedback [WordLength]Mark

// Solved reports whether every position is MarkCorrect.
func (f Feedback) Solved() bool {
	for _, m := range f {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// Rejection reasons returned by Play. SubmitGuess reports them as false.
var (
	ErrGameOver      = errors.New("game finished")
	ErrInvalidLength = errors.New("invalid guess length")
	ErrNotInWordList = errors.New("not in word list")
)

// Construction and reveal errors.
var (
	ErrNoDictionary   = errors.New("game: dictionary is empty")
	ErrInvalidAnswer  = errors.New("game: answer must be 5 letters a-z")
	ErrGameInProgress = errors.New("game: answer hidden until the game is over")
)

// Game holds the state of a single Wordle session.
// A Game must not be used by more than one goroutine at a time.
type Game struct {
	id      string            // opaque identifier used by session stores
	answer  string            // lowercase solution
	dict    *words.Dictionary // shared, read-only
	rng     *rand.Rand        // answer picker for New and Reset
	guesses []string          // accepted guesses, most recent last
}

// Option configures a Game at construction.
type Option func(*Game)

// WithAnswer fixes the answer instead of drawing one from the dictionary.
// The answer does not need to be a dictionary word.
func WithAnswer(answer string) Option {
	return func(g *Game) { g.answer = answer }
}

// WithRand sets the random source used to pick answers.
func WithRand(src rand.Source) Option {
	return func(g *Game) { g.rng = rand.New(src) }
}

// WithID sets the game identifier. By default a random one is generated.
func WithID(id string) Option {
	return func(g *Game) { g.id = id }
}
