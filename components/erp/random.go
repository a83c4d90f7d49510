package erp

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource supplies the randomness used for sample inventory and test orders.
type RandomSource interface {
	IntN(n int) int
	Float64() float64
}

// NewRandomSource returns a PCG backed source. A zero seed uses the clock.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// lockedRandom serializes access so one source can serve every session.
type lockedRandom struct {
	mu  sync.Mutex
	src RandomSource
}

func newLockedRandom(src RandomSource) *lockedRandom {
	if locked, ok := src.(*lockedRandom); ok {
		return locked
	}
	return &lockedRandom{src: src}
}

func (r *lockedRandom) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Float64()
}
