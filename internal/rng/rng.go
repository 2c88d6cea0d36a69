// Package rng builds the seeded random sources injected into simulations.
//
// A run never touches the process-wide generator: every simulation receives
// its own *rand.Rand, so a run is reproducible from its seed alone.
package rng

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// New returns a generator seeded with seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a root seed with a label, such as a scenario name, so
// several scenarios sharing one root seed still get independent streams.
func DeriveSeed(root int64, label string) int64 {
	hasher := fnv.New64a()
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(root >> (8 * i))
	}
	hasher.Write(buf[:])
	hasher.Write([]byte{0})
	hasher.Write([]byte(label))
	sum := hasher.Sum64()
	if sum == 0 {
		sum = 1
	}
	return int64(sum)
}

// TimeSeed returns a seed based on the current wall clock, for runs where the
// user did not ask for reproducibility.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}
