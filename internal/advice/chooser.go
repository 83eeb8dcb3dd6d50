package advice

import (
	"math/rand/v2"
	"sync"
)

// Chooser picks one of n equivalent phrasings. Implementations must return
// a value in [0, n).
type Chooser interface {
	Choose(n int) int
}

// FirstChooser always picks the first phrasing.
type FirstChooser struct{}

func (FirstChooser) Choose(int) int { return 0 }

// SeededChooser picks phrasings pseudo-randomly from a fixed seed, so a
// given seed always produces the same sequence.
type SeededChooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSeededChooser(seed uint64) *SeededChooser {
	return &SeededChooser{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (c *SeededChooser) Choose(n int) int {
	if n <= 1 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng.IntN(n)
}
