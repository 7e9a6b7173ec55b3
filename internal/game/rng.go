package game

import (
	"math/rand"
	"time"
)

// RandomSource is the single source of randomness for a battle: deck shuffles
// and opponent action choices both draw from it. *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRandomSource returns a seeded source. A seed of 0 picks a time-based seed.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
