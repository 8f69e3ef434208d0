// internal/game/engine.go
//
// Core game engine for a single Wordle session.
// Responsibilities:
//   - Create games with a dictionary-drawn or explicit answer.
//   - Validate guesses (length + dictionary membership, case-insensitive).
//   - Score guesses with the two-pass, frequency-aware algorithm.
//   - Track the terminal state: solved, or MaxGuesses used.
//
// The engine does no I/O. Randomness comes from the source given with
// WithRand (crypto-backed by default).
package game

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/cryptorand"
	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

// New constructs a game over dict. Unless WithAnswer is given, the answer is
// drawn uniformly from dict.
func New(dict *words.Dictionary, opts ...Option) (*Game, error) {
	if dict.Len() == 0 {
		return nil, ErrNoDictionary
	}
	g := &Game{dict: dict, guesses: []string{}}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = mrand.New(cryptorand.NewSource())
	}
	if g.id == "" {
		g.id = randomID()
	}
	if g.answer == "" {
		g.answer = dict.Random(g.rng)
	}
	g.answer = strings.ToLower(g.answer)
	if len(g.answer) != WordLength || !isAlpha(g.answer) {
		return nil, ErrInvalidAnswer
	}
	return g, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Answer returns the solution unconditionally. Presentation code should use
// Reveal so the answer is not leaked mid-game.
func (g *Game) Answer() string { return g.answer }

// Reveal returns the answer once the game is over.
func (g *Game) Reveal() (string, error) {
	if !g.IsGameOver() {
		return "", ErrGameInProgress
	}
	return g.answer, nil
}

// IsValidGuess reports whether word has WordLength letters and is in the
// dictionary. Case-insensitive, no side effects.
func (g *Game) IsValidGuess(word string) bool {
	return Valid(g.dict, word)
}

// Valid is IsValidGuess without a game: WordLength letters and in dict.
func Valid(dict *words.Dictionary, word string) bool {
	return utf8.RuneCountInString(word) == WordLength && dict.Contains(strings.ToLower(word))
}

// Play validates and records a guess, returning its feedback.
// On error the history is unchanged. Errors:
//   - ErrGameOver:      already solved or MaxGuesses used.
//   - ErrInvalidLength: not WordLength letters.
//   - ErrNotInWordList: not a dictionary word.
func (g *Game) Play(guess string) (Feedback, error) {
	if g.IsGameOver() {
		return Feedback{}, ErrGameOver
	}
	if utf8.RuneCountInString(guess) != WordLength {
		return Feedback{}, ErrInvalidLength
	}
	if !g.IsValidGuess(guess) {
		return Feedback{}, ErrNotInWordList
	}
	guess = strings.ToLower(guess)
	g.guesses = append(g.guesses, guess)
	return Score(guess, g.answer), nil
}

// SubmitGuess records guess if it is accepted and reports whether it was.
func (g *Game) SubmitGuess(guess string) bool {
	_, err := g.Play(guess)
	return err == nil
}

// Feedback scores guess against this game's answer. The guess does not have
// to be submitted.
func (g *Game) Feedback(guess string) Feedback {
	return Score(guess, g.answer)
}

// GuessHistory returns a copy of the accepted guesses, most recent last.
func (g *Game) GuessHistory() []string {
	out := make([]string, len(g.guesses))
	copy(out, g.guesses)
	return out
}

// IsGameOver reports whether the last guess matched the answer or
// MaxGuesses have been made. A game with no guesses is never over.
func (g *Game) IsGameOver() bool {
	return g.Won() || len(g.guesses) >= MaxGuesses
}

// Won reports whether the most recent guess equals the answer.
func (g *Game) Won() bool {
	n := len(g.guesses)
	return n > 0 && g.guesses[n-1] == g.answer
}

// Remaining returns how many guesses are left.
func (g *Game) Remaining() int {
	if g.IsGameOver() {
		return 0
	}
	return MaxGuesses - len(g.guesses)
}

// State reports a coarse string form of the game state: playing, won or lost.
func (g *Game) State() string {
	switch {
	case g.Won():
		return "won"
	case g.IsGameOver():
		return "lost"
	}
	return "playing"
}

// Reset clears the history and draws a new answer from the dictionary.
func (g *Game) Reset() {
	g.guesses = g.guesses[:0]
	g.answer = g.dict.Random(g.rng)
}

// Score implements the two-pass Wordle scoring algorithm. Both inputs are
// lowercased first; positions missing from a short input are MarkAbsent.
//
// Pass 1 marks exact matches Correct and consumes that letter from the
// answer's letter counts. Pass 2 walks the remaining positions left to right:
// Present while unconsumed occurrences remain, otherwise Absent. So a letter
// that occurs once in the answer earns at most one non-Absent mark, and an
// exact match always wins it.
func Score(guess, answer string) Feedback {
	g := []rune(strings.ToLower(guess))
	a := []rune(strings.ToLower(answer))

	var fb Feedback
	for i := range fb {
		fb[i] = MarkAbsent
	}

	counts := make(map[rune]int, len(a))
	for _, r := range a {
		counts[r]++
	}

	n := min(len(g), len(a), WordLength)
	for i := 0; i < n; i++ {
		if g[i] == a[i] {
			fb[i] = MarkCorrect
			counts[g[i]]--
		}
	}
	for i := 0; i < n; i++ {
		if fb[i] == MarkCorrect {
			continue
		}
		if counts[g[i]] > 0 {
			fb[i] = MarkPresent
			counts[g[i]]--
		}
	}
	return fb
}

// Keyboard summarises guesses as the best mark seen per letter
// (correct > present > absent). Letters never guessed are omitted.
func Keyboard(guesses []string, answer string) map[rune]Mark {
	out := make(map[rune]Mark)
	for _, guess := range guesses {
		fb := Score(guess, answer)
		for i, r := range []rune(strings.ToLower(guess)) {
			if i >= WordLength {
				break
			}
			if fb[i].rank() > out[r].rank() {
				out[r] = fb[i]
			}
		}
	}
	return out
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
