package simulation

import (
	"testing"

	"github.com/Borislavv/go-jumpback-hash/internal/mapper"
	"github.com/stretchr/testify/require"
)

// TestExpected_ClosedForms verifies hand-computed values of the closed forms.
func TestExpected_ClosedForms(t *testing.T) {
	tests := []struct {
		alg            mapper.Algorithm
		n              int32
		mean, variance float64
	}{
		{mapper.AlgJumpHash, 1, 1, 0},
		{mapper.AlgJumpHash, 2, 1.5, 0.25},
		{mapper.AlgJumpHash, 3, 1.5 + 1.0/3, 0.25 + 2.0/9},
		{mapper.AlgJumpBack32, 1, 0, 0},
		{mapper.AlgJumpBack32, 2, 2, 0},
		{mapper.AlgJumpBack32, 3, 1 + 4.0/3, 4.0 / 3 * (1.0 / 3)},
		{mapper.AlgReference, 5, 1 + 8.0/5, 8.0 / 5 * (3.0 / 5)},
		{mapper.AlgJumpBack, 0, 0, 0},
		{mapper.AlgJumpBack, 2, 1, 0},
		{mapper.AlgJumpBack, 3, 1 + (1.0/3)*(4.0/3)/(5.0/3), (4.0 / 3) * (1.0 / 3) * (16.0/9 - 4.0/3 + 1) / (25.0 / 9)},
		{mapper.AlgJumpBack, 1 << 20, 1, 0},
	}

	for _, tt := range tests {
		mean, variance, ok := Expected(tt.alg, tt.n)
		require.True(t, ok)
		require.InDelta(t, tt.mean, mean, 1e-12, "%s n=%d", tt.alg, tt.n)
		require.InDelta(t, tt.variance, variance, 1e-12, "%s n=%d", tt.alg, tt.n)
	}
}

// TestExpected_JumpBackBounded verifies the jump-back means stay below their worst case of α = 2.
func TestExpected_JumpBackBounded(t *testing.T) {
	for _, n := range DyadicBucketCounts(20) {
		m64, _, _ := Expected(mapper.AlgJumpBack, n)
		m32, _, _ := Expected(mapper.AlgJumpBack32, n)
		if n > 1 {
			require.LessOrEqual(t, m64, 1+2.0/3+1e-9, "n=%d", n)
			require.LessOrEqual(t, m32, 3.0, "n=%d", n)
			require.LessOrEqual(t, m64, m32, "n=%d", n)
		}
	}
}

// TestExpected_Unknown verifies algorithms without a closed form report ok=false.
func TestExpected_Unknown(t *testing.T) {
	for _, alg := range []mapper.Algorithm{mapper.AlgSeedFirst, mapper.AlgModulo, mapper.AlgClassic, mapper.AlgRandom} {
		_, _, ok := Expected(alg, 10)
		require.False(t, ok, alg)
	}
}
