package mapper

import (
	"encoding/binary"
	"testing"

	"github.com/Borislavv/go-jumpback-hash/prng"
	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

const (
	checksumIterations = 1_000_000
	checksumSeed       = 0x0a55871a9d9103b7
)

// checksum folds the buckets of a fixed pseudo-random sequence of (key, n) pairs into an
// order-sensitive hash.
func checksum(m BucketMapper) uint64 {
	src := prng.NewSplitMix64()
	src.Reset(checksumSeed)
	d := xxhash.New()

	var buf [4]byte
	for i := 0; i < checksumIterations; i++ {
		r1, r2 := prng.Uint32(src), prng.Uint32(src)
		n := max(1, int32((r1>>1)>>(r2&31)))
		key := src.Uint64()
		binary.LittleEndian.PutUint32(buf[:], uint32(m.Bucket(key, n)))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// TestBucket_Checksum pins the exact behavior of every algorithm across refactors.
func TestBucket_Checksum(t *testing.T) {
	want := map[Algorithm]uint64{
		AlgJumpBack:          0xc98e305d4c48b8cb,
		AlgJumpBack32:        0x7ec1305bbc9af278,
		AlgReference:         0x7ec1305bbc9af278,
		AlgSeedFirst:         0x5b5fed6e44e18a8e,
		AlgSeedFirstLCG:      0x8c1ad4479fdd06c1,
		AlgSeedFirstXorShift: 0x64dcf24daa31572e,
		AlgJumpHash:          0x95ec80ec984331c2,
		AlgRandom:            0x110944ac2fb0e3b1,
		AlgModulo:            0x6a3c0014d35e10c2,
		AlgClassic:           0xfd77fd4037dccead,
	}

	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			require.Equal(t, want[alg], checksum(newMapper(t, alg)))
		})
	}
}
