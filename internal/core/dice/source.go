package dice

import (
	"math/rand"
	"sync"
	"time"

	"github.com/MavethGH/dice-irae/internal/random"
)

// Source draws uniformly distributed integers for die rolls.
//
// A Source is consumed sequentially; evaluating against the same instance
// from several goroutines requires external synchronization.
type Source interface {
	// IntRange returns a uniform integer in [lo, hi]. Callers guarantee lo <= hi.
	IntRange(lo, hi int32) int32
}

// RandSource adapts a *rand.Rand to Source.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource wraps rng. The caller keeps ownership of rng.
func NewRandSource(rng *rand.Rand) *RandSource {
	return &RandSource{rng: rng}
}

// NewSeededSource returns a Source that is deterministic for seed.
func NewSeededSource(seed int64) *RandSource {
	return NewRandSource(rand.New(rand.NewSource(seed)))
}

// IntRange implements Source.
func (s *RandSource) IntRange(lo, hi int32) int32 {
	span := int64(hi) - int64(lo) + 1
	return lo + int32(s.rng.Int63n(span))
}

// lockedSource serializes access to a shared Source.
type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (s *lockedSource) IntRange(lo, hi int32) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.IntRange(lo, hi)
}

// DefaultSource returns the process-wide Source behind Roll. It is seeded
// once from crypto/rand and is safe for concurrent use.
func DefaultSource() Source {
	return defaultSource()
}

var defaultSource = sync.OnceValue(func() Source {
	seed, err := random.NewSeed()
	if err != nil {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{src: NewSeededSource(seed)}
})
