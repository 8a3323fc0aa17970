package mapper

import "github.com/Borislavv/go-jumpback-hash/prng"

// JumpBackHash32 consumes 32-bit words only: the initial value is assembled from two
// Uint32 draws and each retry tests a single candidate.
type JumpBackHash32 struct {
	g prng.Generator
}

// NewJumpBackHash32 builds the mapper around g.
func NewJumpBackHash32(g prng.Generator) (*JumpBackHash32, error) {
	if g == nil {
		return nil, ErrNilGenerator
	}
	return &JumpBackHash32{g: g}, nil
}

func (h *JumpBackHash32) Bucket(key uint64, n int32) int32 {
	if n <= 1 {
		return 0
	}
	h.g.Reset(key)
	v := uint64(prng.Uint32(h.g))
	v |= uint64(prng.Uint32(h.g)) << 32
	u := uint32(v^(v>>32)) & lowMask(n)
	for u != 0 {
		q := highestBlock(u)
		b := blockCandidate(v, u, q)
		for {
			if b < uint32(n) {
				return int32(b)
			}
			b = prng.Uint32(h.g) & (q<<1 - 1)
			if b < q {
				break
			}
		}
		u ^= q
	}
	return 0
}
