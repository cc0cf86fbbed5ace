// Package dice provides the random-integer sources the trail engines draw from.
package dice

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand"
	"sync"
)

// Source produces uniformly distributed integers in [min, max].
//
// Implementations must be safe for concurrent use.
type Source interface {
	Draw(min, max int) int
}

// D6 rolls one six-sided die.
func D6(src Source) int {
	return src.Draw(1, 6)
}

// Crypto draws from crypto/rand. It is the default source outside tests.
type Crypto struct{}

func (Crypto) Draw(min, max int) int {
	if max <= min {
		return min
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max-min+1)))
	if err != nil {
		panic(fmt.Sprintf("dice: crypto/rand unavailable: %v", err))
	}
	return min + int(n.Int64())
}

// Seeded is a deterministic source; the same seed replays the same draws.
type Seeded struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSeeded returns a seeded source.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: mrand.New(mrand.NewSource(seed))}
}

func (s *Seeded) Draw(min, max int) int {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + s.rng.Intn(max-min+1)
}

// Sequence replays fixed values in order, wrapping around at the end. Values
// are returned verbatim, even when they fall outside [min, max], so callers
// can feed physically rolled dice and still have domain checks apply.
type Sequence struct {
	mu     sync.Mutex
	values []int
	pos    int
}

// NewSequence returns a source that yields values in order.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: append([]int(nil), values...)}
}

func (s *Sequence) Draw(min, _ int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return min
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}
