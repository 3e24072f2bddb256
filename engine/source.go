package engine

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Source is the single sequential random stream of a grid
// Spawn flips, seeding flips, palette picks and vehicle ids all draw from it in call order
type Source struct {
	seed   uint64
	chacha *rand.ChaCha8
	rng    *rand.Rand
}

// NewSource creates a stream fully determined by seed
func NewSource(seed uint64) *Source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	c := rand.NewChaCha8(key)
	return &Source{
		seed:   seed,
		chacha: c,
		rng:    rand.New(c),
	}
}

// Seed returns the seed the stream was created with
func (s *Source) Seed() uint64 {
	return s.seed
}

// Float64 returns a value in [0, 1)
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// IntN returns a value in [0, n), n must be positive
func (s *Source) IntN(n int) int {
	return s.rng.IntN(n)
}

// Bernoulli returns true with probability p
// p <= 0 and p >= 1 short-circuit without consuming the stream
func (s *Source) Bernoulli(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return s.rng.Float64() < p
}

// Read fills b from the stream, satisfies io.Reader for uuid generation
func (s *Source) Read(b []byte) (int, error) {
	return s.chacha.Read(b)
}

// VehicleID draws a version 4 UUID from the stream
func (s *Source) VehicleID() uuid.UUID {
	id, err := uuid.NewRandomFromReader(s)
	if err != nil {
		// ChaCha8 reads never fail
		return uuid.Nil
	}
	return id
}
