package mapper

import (
	"math"
	"math/bits"

	"github.com/Borislavv/go-jumpback-hash/prng"
)

// Reference is a literal, unoptimized JumpBackHash used as a test oracle.
// It draws the same 32-bit words as JumpBackHash32 and must agree with it on every input.
type Reference struct {
	g prng.Generator
}

// NewReference builds the oracle around g.
func NewReference(g prng.Generator) (*Reference, error) {
	if g == nil {
		return nil, ErrNilGenerator
	}
	return &Reference{g: g}, nil
}

func floorLog2(x uint32) int {
	return int(math.Floor(math.Log2(float64(x))))
}

func pow2(exp int) uint32 {
	return 1 << exp
}

func modPow2(x uint32, exp int) uint32 {
	return x & (pow2(exp) - 1)
}

func (r *Reference) Bucket(key uint64, n int32) int32 {
	if n <= 1 {
		return 0
	}
	r.g.Reset(key)
	v0 := prng.Uint32(r.g)
	v1 := prng.Uint32(r.g)
	m := floorLog2(uint32(n-1)) + 1
	u := modPow2(v0^v1, m)
	for u != 0 {
		m = floorLog2(u)
		offset := v0
		if bits.OnesCount32(u)%2 == 1 {
			offset = v1
		}
		b := pow2(m) + modPow2(offset, m)
		for {
			if b < uint32(n) {
				return int32(b)
			}
			b = modPow2(prng.Uint32(r.g), m+1)
			if b < pow2(m) {
				break
			}
		}
		u ^= pow2(m)
	}
	return 0
}
