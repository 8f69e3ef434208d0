package cryptorand

import (
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceRange(t *testing.T) {
	s := NewSource()
	for i := 0; i < 1000; i++ {
		assert.GreaterOrEqual(t, s.Int63(), int64(0))
	}
}

func TestSourceDrivesRand(t *testing.T) {
	r := mrand.New(NewSource())
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		n := r.Intn(4)
		assert.True(t, n >= 0 && n < 4)
		seen[n] = true
	}
	assert.Len(t, seen, 4)
}
