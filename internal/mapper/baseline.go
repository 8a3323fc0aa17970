package mapper

import (
	"github.com/Borislavv/go-jumpback-hash/prng"
	"github.com/dgryski/go-jump"
)

// Random reseeds with the key and draws a bounded integer. Uniform but not consistent:
// changing n reshuffles almost every key.
type Random struct {
	g prng.Generator
}

// NewRandom builds the baseline around g.
func NewRandom(g prng.Generator) (*Random, error) {
	if g == nil {
		return nil, ErrNilGenerator
	}
	return &Random{g: g}, nil
}

func (r *Random) Bucket(key uint64, n int32) int32 {
	if n <= 1 {
		return 0
	}
	r.g.Reset(key)
	return prng.UniformInt(r.g, n)
}

// Modulo is key mod n. Not consistent.
type Modulo struct{}

func (Modulo) Bucket(key uint64, n int32) int32 {
	if n <= 1 {
		return 0
	}
	return int32(key % uint64(n))
}

// Classic is Lamping and Veach's jump consistent hash with its built-in LCG.
type Classic struct{}

func (Classic) Bucket(key uint64, n int32) int32 {
	if n <= 1 {
		return 0
	}
	return jump.Hash(key, int(n))
}
