// Package rng provides the deterministic random source used by tilings.
//
// The generator is Mulberry32: a 32-bit state advanced by a Weyl constant
// and finalized with two multiply-xorshift rounds. Float64 and RangeInt
// reproduce the reference browser generator bit for bit, so a seed always
// yields the same sequence on every platform.
//
// Integer sampling deliberately uses round-half-up over the scaled float:
//
//	RangeInt(min, max) = floor((max-min)*Float64() + 0.5) + min
//
// This is not uniform. The two endpoints each receive half the weight of an
// interior value.
//
// Only the generator and RangeInt are compatible with the browser program.
// Shuffle is a standard Fisher-Yates pass and colours come from a Derive
// stream, so whole tilings do not match its output for the same seed.
package rng

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

const (
	weyl     = 0x6D2B79F5
	twoTo32  = 4294967296.0
	deriveMx = 0x9E3779B97F4A7C15
)

// Source is a Mulberry32 generator. The zero value is a valid source seeded
// with 0. A Source is not safe for concurrent use.
type Source struct {
	state uint32
}

// New returns a Source seeded with seed. Only the low 32 bits are used.
func New(seed int64) *Source {
	return &Source{state: uint32(seed)}
}

// Uint32 advances the generator and returns the next 32-bit output.
func (s *Source) Uint32() uint32 {
	s.state += weyl
	t := s.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// Float64 returns a float in [0, 1).
func (s *Source) Float64() float64 {
	return float64(s.Uint32()) / twoTo32
}

// RangeInt returns an integer in [min, max] using the rounding formula
// described in the package documentation. When min == max it still
// consumes one value so that the stream position is independent of the
// bounds.
func (s *Source) RangeInt(min, max int) int {
	v := s.Float64()
	return int(math.Floor(float64(max-min)*v+0.5)) + min
}

// Shuffle permutes n elements in place with a Fisher-Yates pass driven by
// RangeInt. swap is called with i > j or i == j.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, s.RangeInt(0, i))
	}
}

// Derive returns a seed for an independent stream named stream. Renderers
// use it to pick colours without disturbing the tiling stream.
func Derive(seed int64, stream string) int64 {
	h := xxhash.Sum64String(stream)
	return int64((uint64(seed) ^ h) * deriveMx >> 32)
}
