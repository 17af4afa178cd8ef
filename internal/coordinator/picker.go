package coordinator

import (
	"math/rand"
	"sync"
)

// Picker is the random source the coordinator consumes for replica placement
// and fault injection. It is an injected collaborator so tests can script
// placements deterministically.
type Picker interface {
	// PickN returns k distinct indices chosen uniformly from [0, n).
	// Callers guarantee 0 <= k <= n.
	PickN(n, k int) []int

	// Pick returns one index chosen uniformly from [0, n).
	// Callers guarantee n > 0.
	Pick(n int) int
}

// randPicker implements Picker over math/rand. The mutex makes it safe for
// concurrent saves; rand.Rand itself is not.
type randPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPicker creates the default Picker seeded with the given value.
func NewPicker(seed int64) Picker {
	return &randPicker{rng: rand.New(rand.NewSource(seed))}
}

// PickN shuffles [0, n) and takes the first k.
func (p *randPicker) PickN(n, k int) []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Perm(n)[:k]
}

// Pick returns one index from [0, n).
func (p *randPicker) Pick(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(n)
}
