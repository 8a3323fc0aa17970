package simulation

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/Borislavv/go-jumpback-hash/config"
	"github.com/Borislavv/go-jumpback-hash/internal/mapper"
	"github.com/Borislavv/go-jumpback-hash/internal/testhelp"
	"github.com/stretchr/testify/require"
)

func simCfg(iterations, workers int, algs ...mapper.Algorithm) *config.SimulationCfg {
	return &config.SimulationCfg{
		Iterations: iterations,
		MinBuckets: 1,
		MaxBuckets: 10,
		Factor:     0.5,
		Workers:    workers,
		Seed:       config.DefaultSimulationSeed,
		Algorithms: algs,
	}
}

// TestRun_MatchesClosedForms verifies simulated draw counts converge to the expectations.
func TestRun_MatchesClosedForms(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical sweep")
	}
	cfg := simCfg(200_000, 4, mapper.AlgJumpHash, mapper.AlgJumpBack, mapper.AlgJumpBack32, mapper.AlgReference)
	counts := []int32{1, 2, 3, 5, 8, 100, 1000, 1025}

	res, err := RunCounts(context.Background(), cfg, counts, nil)
	require.NoError(t, err)
	require.Len(t, res.Series, 4)

	for _, s := range res.Series {
		dev, ok := MaxDeviation(s, counts)
		require.True(t, ok, s.Algorithm)
		require.Less(t, dev.Mean, 0.03, s.Algorithm)
		require.Less(t, dev.Variance, 0.15, s.Algorithm)
	}
}

// TestRun_ExactCounts verifies deterministic draw counts for degenerate bucket counts.
func TestRun_ExactCounts(t *testing.T) {
	cfg := simCfg(1000, 2, mapper.AlgJumpBack, mapper.AlgJumpHash, mapper.AlgJumpBack32, mapper.AlgModulo, mapper.AlgSeedFirstLCG)
	res, err := RunCounts(context.Background(), cfg, []int32{1, 2}, nil)
	require.NoError(t, err)

	byAlg := map[mapper.Algorithm]Series{}
	for _, s := range res.Series {
		byAlg[s.Algorithm] = s
	}

	// n = 1 needs no draw, except jumphash which always draws once
	require.Equal(t, []float64{0, 1}, byAlg[mapper.AlgJumpBack].Mean)
	require.Equal(t, 1.0, byAlg[mapper.AlgJumpHash].Mean[0])
	require.Equal(t, []float64{0, 2}, byAlg[mapper.AlgJumpBack32].Mean)
	require.Equal(t, []float64{0, 0}, byAlg[mapper.AlgJumpBack].Variance)

	// key-only algorithms never touch the generator
	require.Equal(t, []float64{0, 0}, byAlg[mapper.AlgModulo].Mean)
	require.Equal(t, []float64{0, 0}, byAlg[mapper.AlgSeedFirstLCG].Mean)

	require.Equal(t, "JumpBackHash", byAlg[mapper.AlgJumpBack].Label)
	require.Equal(t, 1.0, byAlg[mapper.AlgJumpBack].P99[1])
}

// TestRun_IndependentOfWorkers verifies the result does not depend on scheduling.
func TestRun_IndependentOfWorkers(t *testing.T) {
	algs := []mapper.Algorithm{mapper.AlgJumpHash, mapper.AlgJumpBack}
	one, err := Run(context.Background(), simCfg(5000, 1, algs...), nil)
	require.NoError(t, err)
	many, err := Run(context.Background(), simCfg(5000, 8, algs...), nil)
	require.NoError(t, err)

	require.Equal(t, []int32{1, 2, 5, 10}, one.BucketCounts)
	require.Equal(t, one.BucketCounts, many.BucketCounts)
	for j := range one.Series {
		require.Equal(t, one.Series[j].Mean, many.Series[j].Mean)
		require.Equal(t, one.Series[j].Variance, many.Series[j].Variance)
	}
}

// TestRun_Progress verifies progress is reported once per bucket count.
func TestRun_Progress(t *testing.T) {
	var calls atomic.Int64
	res, err := Run(context.Background(), testhelp.SimulationCfg(), func() { calls.Add(1) })
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 4, 8, 16, 32, 64}, res.BucketCounts)
	require.Equal(t, int64(len(res.BucketCounts)), calls.Load())
}

// TestRun_Errors verifies invalid input and cancellation are reported.
func TestRun_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Run(ctx, nil, nil)
	require.ErrorIs(t, err, config.ErrNilConfig)

	_, err = Run(ctx, simCfg(0, 1, mapper.AlgJumpBack), nil)
	require.ErrorIs(t, err, config.ErrBadIterations)

	_, err = Run(ctx, simCfg(10, 1), nil)
	require.ErrorIs(t, err, config.ErrNoAlgorithms)

	_, err = Run(ctx, simCfg(10, 1, "ring"), nil)
	require.ErrorIs(t, err, mapper.ErrUnknownAlgorithm)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = Run(cancelled, simCfg(1<<20, 2, mapper.AlgJumpBack), nil)
	require.ErrorIs(t, err, context.Canceled)
}
