// Package prng provides the reseedable pseudo-random generators consumed by the bucket mappers.
//
// A Generator only has to supply raw 64-bit draws and a deterministic reset. All derived draws
// (32-bit words, doubles, exponentials, bounded integers) are package functions so that any
// generator gets them for free, while a generator that can cheaply produce independent 32-bit
// words may override Uint32 by implementing Uint32er.
package prng

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownGenerator is returned by New for unsupported generator names.
var ErrUnknownGenerator = errors.New("unknown pseudo-random generator")

// Generator is a reseedable, non-cryptographic 64-bit bit source.
// Implementations are not safe for concurrent use.
type Generator interface {
	// Reset reinitializes the state from seed; equal seeds give equal streams.
	Reset(seed uint64)
	// Uint64 returns the next 64-bit output and advances the state.
	Uint64() uint64
}

// Uint32er is implemented by generators that draw 32-bit words independently
// instead of truncating a 64-bit draw.
type Uint32er interface {
	Uint32() uint32
}

const inv53 = 0x1p-53 // 2^-53

// Uint32 returns a 32-bit draw: the generator's own one if it implements Uint32er,
// the low half of a 64-bit draw otherwise.
func Uint32(g Generator) uint32 {
	if u, ok := g.(Uint32er); ok {
		return u.Uint32()
	}
	return uint32(g.Uint64())
}

// Float64 returns a uniform value in [0,1) built from the top 53 bits of one draw.
func Float64(g Generator) float64 {
	return float64(g.Uint64()>>11) * inv53
}

// Exp returns an exponentially distributed value with rate 1.
func Exp(g Generator) float64 {
	return -math.Log1p(-Float64(g))
}

// UniformInt returns an unbiased value in [0, bound) for 0 < bound.
//
// Lemire, "Fast random integer generation in an interval", algorithm 5 with L=32.
// The low half of a draw is tried first, its high half serves as the first retry,
// further retries use the high halves of fresh draws.
func UniformInt(g Generator, bound int32) int32 {
	if bound <= 1 {
		return 0
	}
	s := uint64(bound)
	r := g.Uint64()
	m := (r & 0xFFFFFFFF) * s
	l := m & 0xFFFFFFFF
	if l < s {
		t := (1 << 32) % s
		for l < t {
			m = (r >> 32) * s
			l = m & 0xFFFFFFFF
			if l >= t {
				break
			}
			r = g.Uint64()
			m = (r >> 32) * s
			l = m & 0xFFFFFFFF
		}
	}
	return int32(m >> 32)
}

// Name identifies a generator implementation in configuration.
type Name string

const (
	// NameSplitMix64 selects SplitMix64.
	NameSplitMix64 Name = "splitmix64"
)

// New constructs a generator by its configuration name.
func New(name Name) (Generator, error) {
	switch name {
	case NameSplitMix64, "":
		return NewSplitMix64(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
}
