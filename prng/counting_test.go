package prng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCounting_CountsDrawsSinceReset verifies the counter and its reset.
func TestCounting_CountsDrawsSinceReset(t *testing.T) {
	c := NewCounting(NewSplitMix64())
	require.Equal(t, int64(0), c.Count())

	c.Reset(1)
	_ = c.Uint64()
	_ = Uint32(c)
	_ = Float64(c)
	require.Equal(t, int64(3), c.Count())

	c.Reset(2)
	require.Equal(t, int64(0), c.Count())
}

// TestCounting_IsTransparent verifies the wrapped stream is unchanged.
func TestCounting_IsTransparent(t *testing.T) {
	plain := NewSplitMix64()
	counted := NewCounting(NewSplitMix64())

	plain.Reset(0xabc)
	counted.Reset(0xabc)
	for i := 0; i < 100; i++ {
		require.Equal(t, plain.Uint64(), counted.Uint64())
	}
}

// TestCounting_ZeroKeepsStream verifies Zero clears the counter but not the generator state.
func TestCounting_ZeroKeepsStream(t *testing.T) {
	plain := NewSplitMix64()
	counted := NewCounting(NewSplitMix64())
	plain.Reset(9)
	counted.Reset(9)

	require.Equal(t, plain.Uint64(), counted.Uint64())
	counted.Zero()
	require.Zero(t, counted.Count())
	require.Equal(t, plain.Uint64(), counted.Uint64())
	require.Equal(t, int64(1), counted.Count())
}
