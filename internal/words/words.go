// internal/words/words.go
//
// Dictionary management for the game engine.
//
// Responsibilities:
//   - Load a newline-delimited word list from a file, a reader, or the
//     embedded default in the assets package.
//   - Normalise entries (trim, lowercase) and keep only 5-letter a–z words.
//   - Provide read-only lookups (Contains, At, Len) and uniform random picks.
//
// A Dictionary is immutable once built and safe to share between games and
// goroutines.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/wordle-engine/assets"
)

// Length is the number of letters in every dictionary word.
const Length = 5

// ErrEmptyDictionary is returned when a source yields no usable words.
var ErrEmptyDictionary = errors.New("words: dictionary is empty")

// Dictionary is an immutable set of lowercase five-letter words.
type Dictionary struct {
	list []string            // first-seen order, used for indexed/random picks
	set  map[string]struct{} // membership
}

// New builds a Dictionary from raw entries.
// Blank lines, "#" comments and anything that is not 5 letters a–z are
// skipped; duplicates keep their first position.
func New(entries []string) (*Dictionary, error) {
	d := &Dictionary{set: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		w := normalize(e)
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		if len(w) != Length || !isAlpha(w) {
			continue
		}
		if _, dup := d.set[w]; dup {
			continue
		}
		d.set[w] = struct{}{}
		d.list = append(d.list, w)
	}
	if len(d.list) == 0 {
		return nil, ErrEmptyDictionary
	}
	return d, nil
}

// Read loads one word per line from r.
func Read(r io.Reader) (*Dictionary, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return New(lines)
}

// Load reads the word list at path.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list %s: %w", path, err)
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Embedded loads the default list compiled into the binary.
func Embedded() (*Dictionary, error) {
	f, err := assets.Words()
	if err != nil {
		return nil, fmt.Errorf("open embedded word list: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Contains reports whether w is a member. Case-insensitive.
func (d *Dictionary) Contains(w string) bool {
	if d == nil {
		return false
	}
	_, ok := d.set[strings.ToLower(w)]
	return ok
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.list)
}

// At returns the i-th word in load order.
func (d *Dictionary) At(i int) string { return d.list[i] }

// Words returns a copy of the word list in load order.
func (d *Dictionary) Words() []string {
	out := make([]string, len(d.list))
	copy(out, d.list)
	return out
}

// Random returns a word chosen uniformly with rng.
func (d *Dictionary) Random(rng *rand.Rand) string {
	return d.list[rng.Intn(len(d.list))]
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
