// Command jbhsim simulates how many pseudo-random draws the bucket mappers consume per call
// and writes a ';'-separated report comparable with the closed-form expectations.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Borislavv/go-jumpback-hash/config"
	"github.com/Borislavv/go-jumpback-hash/internal/mapper"
	"github.com/Borislavv/go-jumpback-hash/internal/simulation"
	"github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	ctx, cancelCtx := context.WithCancel(context.Background())
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		logger.Warn().Str("signal", sig.String()).Msg("shutting down")
		cancelCtx()
	}()

	start := time.Now()
	if err := newApp(ctx, &logger, os.Stdout).Run(os.Args); err != nil {
		logger.Fatal().Err(err).Msg("jbhsim failed")
	}
	logger.Info().Dur("total", time.Since(start)).Msg("done")
}

func newApp(ctx context.Context, logger *zerolog.Logger, stdout io.Writer) *cli.App {
	run := &cli.Command{
		Name:  "run",
		Usage: "Simulate draw consumption over a grid of bucket counts",
		Flags: runFlags,
		Action: func(c *cli.Context) error {
			cfg, err := simulationConfig(c)
			if err != nil {
				return err
			}
			return runSimulation(ctx, c, cfg, logger, stdout)
		},
	}

	return &cli.App{
		Name:  "jbhsim",
		Usage: "Random-draw consumption simulation of jump-back hashing",
		Flags: globalFlags,
		Before: func(c *cli.Context) error {
			level := zerolog.InfoLevel
			if c.Bool(flagVerbose) {
				level = zerolog.DebugLevel
			}
			*logger = logger.Level(level)
			return nil
		},
		Commands: []*cli.Command{
			run,
			{
				Name:   "check",
				Usage:  "Compare a report with the closed-form expectations",
				Flags:  checkFlags,
				Action: func(c *cli.Context) error { return checkReport(c.String(flagIn), logger) },
			},
		},
		DefaultCommand: run.Name,
	}
}

// simulationConfig layers flags over the config file over defaults.
func simulationConfig(c *cli.Context) (*config.SimulationCfg, error) {
	cfg := config.DefaultSimulation()
	if path := c.String(flagConfig); path != "" {
		file, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		if file.Simulation.Enabled() {
			cfg = file.Simulation
		}
	}

	if c.IsSet(flagIterations) {
		cfg.Iterations = c.Int(flagIterations)
	}
	if c.IsSet(flagMin) {
		cfg.MinBuckets = int32(c.Int(flagMin))
	}
	if c.IsSet(flagMax) {
		cfg.MaxBuckets = int32(c.Int(flagMax))
	}
	if c.IsSet(flagFactor) {
		cfg.Factor = c.Float64(flagFactor)
	}
	if c.IsSet(flagWorkers) {
		cfg.Workers = c.Int(flagWorkers)
	}
	if c.IsSet(flagSeed) {
		cfg.Seed = c.Uint64(flagSeed)
	}
	if c.IsSet(flagOut) {
		cfg.Out = c.String(flagOut)
	}
	if c.IsSet(flagAlgorithms) {
		var algs []mapper.Algorithm
		for _, name := range c.StringSlice(flagAlgorithms) {
			algs = append(algs, mapper.Algorithm(name))
		}
		cfg.Algorithms = algs
	}

	wrapped := &config.Config{Simulation: cfg}
	wrapped.AdjustConfig()
	if err := wrapped.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(ctx context.Context, c *cli.Context, cfg *config.SimulationCfg, logger *zerolog.Logger, stdout io.Writer) error {
	counts := simulation.GeometricBucketCounts(cfg.MinBuckets, cfg.MaxBuckets, cfg.Factor)
	logger.Info().
		Int("iterations", cfg.Iterations).
		Int("bucket_counts", len(counts)).
		Int("workers", cfg.Workers).
		Interface("algorithms", cfg.Algorithms).
		Msg("starting simulation")

	var progress func()
	if !c.Bool(flagNoProgress) && isatty.IsTerminal(os.Stderr.Fd()) {
		bar := pb.New(len(counts)).SetWriter(os.Stderr)
		bar.Start()
		defer bar.Finish()
		progress = func() { bar.Increment() }
	}

	res, err := simulation.RunCounts(ctx, cfg, counts, progress)
	if err != nil {
		return fmt.Errorf("run simulation: %w", err)
	}

	out, closeOut, err := openOut(cfg.Out, stdout)
	if err != nil {
		return err
	}
	if err = simulation.WriteReport(out, res); err != nil {
		_ = closeOut()
		return fmt.Errorf("write report: %w", err)
	}
	if err = closeOut(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}

	logDeviations(logger, res)
	return nil
}

func checkReport(path string, logger *zerolog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	res, err := simulation.ReadReport(f)
	if err != nil {
		return err
	}
	logger.Info().Str("report", path).Int("iterations", res.Iterations).Int("bucket_counts", len(res.BucketCounts)).Msg("report loaded")
	logDeviations(logger, res)
	return nil
}

func logDeviations(logger *zerolog.Logger, res *simulation.Result) {
	for _, s := range res.Series {
		ev := logger.Info().Str("series", s.Label)
		if dev, ok := simulation.MaxDeviation(s, res.BucketCounts); ok {
			ev = ev.Float64("max_mean_deviation", dev.Mean).Float64("max_variance_deviation", dev.Variance)
		}
		if len(s.P99) > 0 {
			ev = ev.Float64("max_p99_draws", maxOf(s.P99))
		}
		ev.Msg("series summary")
	}
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		m = max(m, x)
	}
	return m
}

func openOut(path string, stdout io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create report file: %w", err)
	}
	return f, f.Close, nil
}
