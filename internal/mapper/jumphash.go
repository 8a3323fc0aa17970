package mapper

import "github.com/Borislavv/go-jumpback-hash/prng"

// JumpHash is Lamping and Veach's jump consistent hash driven by a reseeded generator.
// It needs O(log n) draws and is kept as a baseline.
type JumpHash struct {
	g prng.Generator
}

// NewJumpHash builds the baseline around g.
func NewJumpHash(g prng.Generator) (*JumpHash, error) {
	if g == nil {
		return nil, ErrNilGenerator
	}
	return &JumpHash{g: g}, nil
}

// Bucket follows the Guava formulation: b' = floor((b+1)/r) for r uniform in [0,1).
func (h *JumpHash) Bucket(key uint64, n int32) int32 {
	if n <= 0 {
		return 0
	}
	h.g.Reset(key)
	b, next := int64(-1), int64(0)
	for next < int64(n) {
		b = next
		f := float64(b+1) / prng.Float64(h.g)
		if f >= float64(n) {
			break
		}
		next = int64(f)
	}
	return int32(b)
}
