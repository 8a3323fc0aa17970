package mapper

import "github.com/Borislavv/go-jumpback-hash/prng"

// The seed-first variants use the key itself as the first 64-bit random value and only derive
// further randomness when the first visited block rejects its candidate. A rejection can only
// happen in the block holding the top bit of n-1; every lower block lies entirely below n, so the
// outer loop is unrolled to two resolutions.

const (
	// 64-bit LCG multiplier from L'Ecuyer, "Tables of linear congruential generators of
	// different sizes and good lattice structure" (1999).
	lcgMultiplier = 3935559000370003845
	lcgIncrement  = 1
)

// SeedFirst falls back to reseeding its generator with the key once extra draws are needed.
type SeedFirst struct {
	g prng.Generator
}

// NewSeedFirst builds the mapper around g.
func NewSeedFirst(g prng.Generator) (*SeedFirst, error) {
	if g == nil {
		return nil, ErrNilGenerator
	}
	return &SeedFirst{g: g}, nil
}

func (h *SeedFirst) Bucket(key uint64, n int32) int32 {
	if n <= 1 {
		return 0
	}
	u := uint32(key^(key>>32)) & lowMask(n)
	if u == 0 {
		return 0
	}
	q := highestBlock(u)
	b := blockCandidate(key, u, q)
	if b < uint32(n) {
		return int32(b)
	}
	mask := q<<1 - 1
	h.g.Reset(key)
	for {
		w := h.g.Uint64()
		b = uint32(w) & mask
		if b < q {
			break
		}
		if b < uint32(n) {
			return int32(b)
		}
		b = uint32(w>>32) & mask
		if b < q {
			break
		}
		if b < uint32(n) {
			return int32(b)
		}
	}
	return secondBlock(key, u^q)
}

// SeedFirstLCG steps a 64-bit LCG seeded with the key and uses only the upper 32 bits of each
// state. It needs no generator and is safe for concurrent use.
type SeedFirstLCG struct{}

func (SeedFirstLCG) Bucket(key uint64, n int32) int32 {
	if n <= 1 {
		return 0
	}
	v := key
	u := uint32(v^(v>>32)) & lowMask(n)
	if u == 0 {
		return 0
	}
	q := highestBlock(u)
	b := blockCandidate(v, u, q)
	if b < uint32(n) {
		return int32(b)
	}
	mask := q<<1 - 1
	for {
		key = key*lcgMultiplier + lcgIncrement
		b = uint32(key>>32) & mask // low LCG bits are weak
		if b < q {
			break
		}
		if b < uint32(n) {
			return int32(b)
		}
	}
	return secondBlock(v, u^q)
}

// SeedFirstXorShift steps a two-shift 64-bit xorshift seeded with the key and tests both halves
// of each state. It is safe for concurrent use.
type SeedFirstXorShift struct{}

func (SeedFirstXorShift) Bucket(key uint64, n int32) int32 {
	if n <= 1 {
		return 0
	}
	v := key
	u := uint32(v^(v>>32)) & lowMask(n)
	if u == 0 {
		return 0
	}
	q := highestBlock(u)
	b := blockCandidate(v, u, q)
	if b < uint32(n) {
		return int32(b)
	}
	mask := q<<1 - 1
	for {
		key ^= key << 7
		key ^= key >> 9

		b = uint32(key) & mask
		if b < q {
			break
		}
		if b < uint32(n) {
			return int32(b)
		}
		b = uint32(key>>32) & mask
		if b < q {
			break
		}
		if b < uint32(n) {
			return int32(b)
		}
	}
	return secondBlock(v, u^q)
}

// secondBlock resolves the next pending block, which is always below n.
func secondBlock(v uint64, u uint32) int32 {
	if u == 0 {
		return 0
	}
	q := highestBlock(u)
	return int32(blockCandidate(v, u, q))
}
