// Package simulation measures how many 64-bit pseudo-random draws each bucket mapper consumes
// per call, over a grid of bucket counts, and compares the result with closed-form expectations.
package simulation

import (
	"context"
	"fmt"

	"github.com/Borislavv/go-jumpback-hash/config"
	"github.com/Borislavv/go-jumpback-hash/internal/mapper"
	"github.com/Borislavv/go-jumpback-hash/prng"
	"github.com/valyala/histogram"
	"golang.org/x/sync/errgroup"
)

// ctxCheckMask sets how often a long key loop looks at ctx.
const ctxCheckMask = 1<<16 - 1

// Series holds per-bucket-count statistics of one algorithm, aligned with Result.BucketCounts.
type Series struct {
	Algorithm mapper.Algorithm
	Label     string
	Mean      []float64
	Variance  []float64
	// P99 is an approximate 0.99 quantile. Not written to reports.
	P99 []float64
}

type Result struct {
	Iterations   int
	BucketCounts []int32
	Series       []Series
}

// Run simulates cfg.Iterations random keys for every bucket count of the cfg grid.
// progress, if not nil, is called once per finished bucket count from worker goroutines.
func Run(ctx context.Context, cfg *config.SimulationCfg, progress func()) (*Result, error) {
	if !cfg.Enabled() {
		return nil, config.ErrNilConfig
	}
	counts := GeometricBucketCounts(cfg.MinBuckets, cfg.MaxBuckets, cfg.Factor)
	return RunCounts(ctx, cfg, counts, progress)
}

// RunCounts is Run over an explicit list of bucket counts.
func RunCounts(ctx context.Context, cfg *config.SimulationCfg, counts []int32, progress func()) (*Result, error) {
	if !cfg.Enabled() {
		return nil, config.ErrNilConfig
	}
	if cfg.Iterations <= 0 {
		return nil, config.ErrBadIterations
	}
	if len(cfg.Algorithms) == 0 {
		return nil, config.ErrNoAlgorithms
	}
	for _, alg := range cfg.Algorithms {
		if err := alg.Validate(); err != nil {
			return nil, err
		}
	}

	res := &Result{Iterations: cfg.Iterations, BucketCounts: counts, Series: make([]Series, len(cfg.Algorithms))}
	for j, alg := range cfg.Algorithms {
		res.Series[j] = Series{
			Algorithm: alg,
			Label:     Label(alg),
			Mean:      make([]float64, len(counts)),
			Variance:  make([]float64, len(counts)),
			P99:       make([]float64, len(counts)),
		}
	}

	// one key stream per bucket count, so results do not depend on scheduling
	seeds := make([]uint64, len(counts))
	seeder := prng.NewSplitMix64()
	seeder.Reset(cfg.Seed)
	for i := range seeds {
		seeds[i] = seeder.Uint64()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i := range counts {
		g.Go(func() error {
			if err := simulate(gctx, res, i, seeds[i]); err != nil {
				return fmt.Errorf("simulate %d buckets: %w", counts[i], err)
			}
			if progress != nil {
				progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// simulate fills column i of every series. Columns are disjoint, so workers never share a slot.
func simulate(ctx context.Context, res *Result, i int, seed uint64) error {
	n := res.BucketCounts[i]

	type probe struct {
		draws  *prng.Counting
		mapper mapper.BucketMapper
		hist   *histogram.Fast
		sum    float64
		sumSq  float64
	}
	probes := make([]probe, len(res.Series))
	for j, s := range res.Series {
		draws := prng.NewCounting(prng.NewSplitMix64())
		m, err := mapper.New(s.Algorithm, draws)
		if err != nil {
			return err
		}
		probes[j] = probe{draws: draws, mapper: m, hist: histogram.GetFast()}
	}
	defer func() {
		for _, p := range probes {
			histogram.PutFast(p.hist)
		}
	}()

	keys := prng.NewSplitMix64()
	keys.Reset(seed)
	for k := 0; k < res.Iterations; k++ {
		if k&ctxCheckMask == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		key := keys.Uint64()
		for j := range probes {
			p := &probes[j]
			// mappers return early without a reset for n <= 1
			p.draws.Zero()
			p.mapper.Bucket(key, n)
			c := float64(p.draws.Count())
			p.sum += c
			p.sumSq += c * c
			p.hist.Update(c)
		}
	}

	iterations := float64(res.Iterations)
	for j, p := range probes {
		mean := p.sum / iterations
		res.Series[j].Mean[i] = mean
		res.Series[j].Variance[i] = p.sumSq/iterations - mean*mean
		res.Series[j].P99[i] = p.hist.Quantile(0.99)
	}
	return nil
}

var labels = map[mapper.Algorithm]string{
	mapper.AlgJumpBack:          "JumpBackHash",
	mapper.AlgJumpBack32:        "JumpBackHash32",
	mapper.AlgReference:         "JumpBackHashReference",
	mapper.AlgSeedFirst:         "JumpBackHashSeedFirst",
	mapper.AlgSeedFirstLCG:      "JumpBackHashSeedFirstLCG",
	mapper.AlgSeedFirstXorShift: "JumpBackHashSeedFirstXorShift",
	mapper.AlgJumpHash:          "JumpHash",
	mapper.AlgRandom:            "RandomMapper",
	mapper.AlgModulo:            "Modulo",
	mapper.AlgClassic:           "ClassicJumpHash",
}

// Label is the column label of alg in reports.
func Label(alg mapper.Algorithm) string {
	if l, ok := labels[alg]; ok {
		return l
	}
	return string(alg)
}

// algorithmOf is the inverse of Label; unknown labels yield "".
func algorithmOf(label string) mapper.Algorithm {
	for alg, l := range labels {
		if l == label {
			return alg
		}
	}
	return ""
}
