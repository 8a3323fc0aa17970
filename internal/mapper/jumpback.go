package mapper

import "github.com/Borislavv/go-jumpback-hash/prng"

// JumpBackHash is the primary implementation: one 64-bit draw supplies the block indicator
// bits and the in-block offsets, and every retry draw tests two candidates.
type JumpBackHash struct {
	g prng.Generator
}

// NewJumpBackHash builds the mapper around g, which it owns from now on.
func NewJumpBackHash(g prng.Generator) (*JumpBackHash, error) {
	if g == nil {
		return nil, ErrNilGenerator
	}
	return &JumpBackHash{g: g}, nil
}

func (h *JumpBackHash) Bucket(key uint64, n int32) int32 {
	if n <= 1 {
		return 0
	}
	h.g.Reset(key)
	v := h.g.Uint64()
	u := uint32(v^(v>>32)) & lowMask(n)
	for u != 0 {
		q := highestBlock(u)
		b := blockCandidate(v, u, q)
		mask := q<<1 - 1
		for {
			if b < uint32(n) {
				return int32(b)
			}
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
		}
		u ^= q
	}
	return 0
}
