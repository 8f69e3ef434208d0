// Package daily picks the Daily Challenge word and records results.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/apps/wordle-engine/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Puzzle identifies one day's challenge.
type Puzzle struct {
	Date      string
	WordIndex int
	Answer    string
}

// PuzzleFor returns the puzzle for the UTC day containing t.
func PuzzleFor(t time.Time, salt string, dict *words.Dictionary) Puzzle {
	idx := WordIndex(t, salt, dict.Len())
	return Puzzle{Date: DateKey(t), WordIndex: idx, Answer: dict.At(idx)}
}
