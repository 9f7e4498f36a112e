package brackets

import (
	"math/rand/v2"
	"sync"
)

// RandomSource shuffles players for the group draw and the knockout draw.
// *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	Shuffle(n int, swap func(i, j int))
}

type systemRandom struct{}

func (systemRandom) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// SystemRandom uses the process-wide generator and is safe for concurrent use.
func SystemRandom() RandomSource {
	return systemRandom{}
}

type seededRandom struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *seededRandom) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rnd.Shuffle(n, swap)
}

// SeededRandom returns a reproducible source: two sources built from the same
// seed produce the same sequence of draws.
func SeededRandom(seed uint64) RandomSource {
	return &seededRandom{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func shuffled(players []string, rnd RandomSource) []string {
	out := make([]string, len(players))
	copy(out, players)
	if rnd == nil {
		rnd = SystemRandom()
	}
	rnd.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
