package mapper

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Borislavv/go-jumpback-hash/internal/stattest"
	"github.com/Borislavv/go-jumpback-hash/prng"
	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

const (
	uniformityCycles       = 1_000_000
	uniformityOverallAlpha = 0.01
	uniformitySmallSeed    = 0xd12e813698df9fd4
	uniformityLargeSeed    = 0xd456be3a53643f5e
)

var (
	uniformitySmallBucketCounts = []int32{
		2, 3, 4, 5, 6, 7, 8, 9, 10, 15, 16, 17, 31, 32, 33, 63, 64, 65,
		100, 127, 128, 129, 255, 256, 257, 500, 511, 512, 513, 999, 1000,
	}
	uniformityLargeBucketCounts = []int32{
		math.MaxInt32,
		math.MaxInt32 - 1,
		0x40000001, // 2^30 + 1
		0x40000000, // 2^30
		0x3FFFFFFF, // 2^30 - 1
		0x30000000, // 3*2^28
		0x20000001, // 2^29 + 1
		0x20000000, // 2^29
		0x1FFFFFFF, // 2^29 - 1
		0x18000000, // 3*2^27
		0x10000001, // 2^28 + 1
		0x10000000, // 2^28
		0x0FFFFFFF, // 2^28 - 1
	}
)

// uniformityKeys returns a key stream seeded per bucket count.
func uniformityKeys(seed uint64, n int32) *prng.SplitMix64 {
	var buf [12]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint32(buf[8:], uint32(n))
	g := prng.NewSplitMix64()
	g.Reset(xxhash.Sum64(buf[:]))
	return g
}

// TestUniformity_SmallBucketCounts verifies bucket occupancy with a G-test for small n.
func TestUniformity_SmallBucketCounts(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical sweep")
	}
	alpha := stattest.SidakAlpha(uniformityOverallAlpha, len(uniformitySmallBucketCounts))

	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			m := newMapper(t, alg)
			for _, n := range uniformitySmallBucketCounts {
				keys := uniformityKeys(uniformitySmallSeed, n)
				counts := make([]int64, n)
				expected := make([]float64, n)
				for i := range expected {
					expected[i] = 1
				}
				for i := 0; i < uniformityCycles; i++ {
					counts[m.Bucket(keys.Uint64(), n)]++
				}

				p, err := stattest.GTest(expected, counts)
				require.NoError(t, err)
				require.Greater(t, p, alpha, "n=%d", n)
			}
		})
	}
}

// TestUniformity_LargeBucketCounts verifies returned indices with a KS test for large n.
func TestUniformity_LargeBucketCounts(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical sweep")
	}
	alpha := stattest.SidakAlpha(uniformityOverallAlpha, len(uniformityLargeBucketCounts))
	samples := make([]float64, uniformityCycles)

	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			m := newMapper(t, alg)
			for _, n := range uniformityLargeBucketCounts {
				keys := uniformityKeys(uniformityLargeSeed, n)
				for i := range samples {
					samples[i] = float64(m.Bucket(keys.Uint64(), n))
				}

				p, err := stattest.KolmogorovSmirnovUniform(samples, 0, float64(n))
				require.NoError(t, err)
				require.Greater(t, p, alpha, "n=%d", n)
			}
		})
	}
}
