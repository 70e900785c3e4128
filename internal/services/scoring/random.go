package scoring

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource yields floats in [0,1). Implementations must be safe for
// concurrent use.
type RandomSource interface {
	Float64() float64
}

type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededSource returns a PCG-backed source; equal seeds give equal sequences.
func NewSeededSource(seed uint64) RandomSource {
	return &lockedSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewClockSource seeds a source from the current time.
func NewClockSource() RandomSource {
	return NewSeededSource(uint64(time.Now().UnixNano()))
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// FixedSource always returns the same value. Useful for tests and replays.
type FixedSource float64

func (f FixedSource) Float64() float64 {
	return float64(f)
}
