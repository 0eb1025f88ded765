package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// RandomSource is the single generator a game draws from. Pile shuffling and
// dragon landings share it so a fixed seed replays a whole game.
type RandomSource interface {
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Seed returns the seed the source was created with.
	Seed() int64
}

// SeededSource is a RandomSource backed by a PCG generator
type SeededSource struct {
	seed int64
	rng  *rand.Rand
}

// NewRandomSource creates a deterministic source for the given seed
func NewRandomSource(seed int64) *SeededSource {
	return &SeededSource{
		seed: seed,
		rng:  rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
	}
}

// IntN returns a uniform value in [0, n)
func (s *SeededSource) IntN(n int) int {
	return s.rng.IntN(n)
}

// Seed returns the seed
func (s *SeededSource) Seed() int64 {
	return s.seed
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
