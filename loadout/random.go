package loadout

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// NewRNG returns the deterministic source every random draw in a request
// uses. Equal seeds replay equal loadouts.
func NewRNG(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for reproducible loadouts.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// newSeed picks a seed for requests that did not bring one.
func newSeed() int64 {
	// #nosec G404
	return rand.Int64()
}
