// Package mapper implements consistent bucket mapping: a 64-bit key and a bucket count n are
// mapped to an index in [0, n) that is uniform for fixed n and moves only to the new bucket
// when n grows by one.
//
// The JumpBackHash family resolves the index by visiting dyadic blocks [2^L, 2^(L+1)) from the
// largest down and needs O(1) random draws per call. JumpHash, Random, Modulo and Classic are
// kept as baselines.
package mapper

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/Borislavv/go-jumpback-hash/prng"
)

var (
	// ErrNilGenerator is returned when a generator-backed mapper is built without a generator.
	ErrNilGenerator = errors.New("pseudo-random generator must not be nil")
	// ErrUnknownAlgorithm is returned by New for unsupported algorithm names.
	ErrUnknownAlgorithm = errors.New("unknown bucket mapping algorithm")
	// ErrNilMapper is returned by consumers handed a nil BucketMapper.
	ErrNilMapper = errors.New("bucket mapper must not be nil")
)

// BucketMapper maps a hashed key to a bucket index in [0, n).
// For n <= 1 it returns 0. Implementations owning a generator are not safe for concurrent use,
// wrap them in a Pool for that.
type BucketMapper interface {
	Bucket(key uint64, n int32) int32
}

// Algorithm names a BucketMapper implementation in configuration.
type Algorithm string

const (
	AlgJumpBack          Algorithm = "jumpback"
	AlgJumpBack32        Algorithm = "jumpback32"
	AlgReference         Algorithm = "reference"
	AlgSeedFirst         Algorithm = "seedfirst"
	AlgSeedFirstLCG      Algorithm = "seedfirst-lcg"
	AlgSeedFirstXorShift Algorithm = "seedfirst-xorshift"
	AlgJumpHash          Algorithm = "jumphash"
	AlgRandom            Algorithm = "random"
	AlgModulo            Algorithm = "modulo"
	AlgClassic           Algorithm = "classic"
)

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{
		AlgJumpBack, AlgJumpBack32, AlgReference,
		AlgSeedFirst, AlgSeedFirstLCG, AlgSeedFirstXorShift,
		AlgJumpHash, AlgRandom, AlgModulo, AlgClassic,
	}
}

// IsConsistent reports whether the algorithm keeps the minimal-remapping guarantee.
func (a Algorithm) IsConsistent() bool {
	return a != AlgRandom && a != AlgModulo
}

// Validate returns ErrUnknownAlgorithm for names outside the registry.
func (a Algorithm) Validate() error {
	for _, known := range Algorithms() {
		if a == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, a)
}

// New builds the mapper for alg. The generator is ignored by algorithms that derive all
// randomness from the key itself.
func New(alg Algorithm, g prng.Generator) (BucketMapper, error) {
	switch alg {
	case AlgJumpBack:
		return NewJumpBackHash(g)
	case AlgJumpBack32:
		return NewJumpBackHash32(g)
	case AlgReference:
		return NewReference(g)
	case AlgSeedFirst:
		return NewSeedFirst(g)
	case AlgSeedFirstLCG:
		return SeedFirstLCG{}, nil
	case AlgSeedFirstXorShift:
		return SeedFirstXorShift{}, nil
	case AlgJumpHash:
		return NewJumpHash(g)
	case AlgRandom:
		return NewRandom(g)
	case AlgModulo:
		return Modulo{}, nil
	case AlgClassic:
		return Classic{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
}

// lowMask returns the mask of the bit-width of n-1, n >= 2.
func lowMask(n int32) uint32 {
	return ^uint32(0) >> bits.LeadingZeros32(uint32(n-1))
}

// highestBlock returns 2^L for the highest set bit L of u, u != 0.
func highestBlock(u uint32) uint32 {
	return 1 << (31 - bits.LeadingZeros32(u))
}

// halfShift selects the half of a 64-bit value that supplies the offset of the block:
// the low half while an even number of blocks is pending, the high half otherwise.
func halfShift(u uint32) uint {
	return uint(bits.OnesCount32(u)&1) << 5
}

// blockCandidate places the offset bits of v into the block [q, 2q).
func blockCandidate(v uint64, u, q uint32) uint32 {
	return q + (uint32(v>>halfShift(u)) & (q - 1))
}
