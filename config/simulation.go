package config

import (
	"errors"
	"runtime"

	"github.com/Borislavv/go-jumpback-hash/internal/mapper"
)

const (
	DefaultSimulationIterations = 10_000_000
	DefaultSimulationMinBuckets = 1
	DefaultSimulationMaxBuckets = 1_000_000
	DefaultSimulationFactor     = 0.999
	DefaultSimulationSeed       = 0xa6b5ec7a57a6d38e
)

var (
	ErrBadIterations  = errors.New("iterations must be positive")
	ErrBadBucketRange = errors.New("min buckets must be in [1, max buckets]")
	ErrBadFactor      = errors.New("factor must be in (0, 1)")
	ErrNoAlgorithms   = errors.New("at least one algorithm is required")
)

type SimulationCfg struct {
	// Iterations is the number of random keys mapped per bucket count and algorithm.
	Iterations int `yaml:"iterations"`

	// MinBuckets and MaxBuckets bound the geometric grid of bucket counts.
	MinBuckets int32 `yaml:"min_buckets"`
	MaxBuckets int32 `yaml:"max_buckets"`

	// Factor is the ratio between two neighbouring bucket counts of the grid.
	Factor float64 `yaml:"factor"`

	// Workers bounds the number of bucket counts simulated at once. Default GOMAXPROCS.
	Workers int `yaml:"workers"`

	// Seed derives the per-bucket-count key streams.
	Seed uint64 `yaml:"seed"`

	// Algorithms to simulate. Default jumphash, jumpback, jumpback32.
	Algorithms []mapper.Algorithm `yaml:"algorithms"`

	// Out is the report path; empty or "-" means stdout.
	Out string `yaml:"out"`
}

func (cfg *SimulationCfg) Enabled() bool {
	return cfg != nil
}

// DefaultSimulation returns the settings of the published draw-consumption results.
func DefaultSimulation() *SimulationCfg {
	cfg := &SimulationCfg{}
	cfg.adjust()
	return cfg
}

func (cfg *SimulationCfg) adjust() {
	if cfg.Iterations == 0 {
		cfg.Iterations = DefaultSimulationIterations
	}
	if cfg.MinBuckets == 0 {
		cfg.MinBuckets = DefaultSimulationMinBuckets
	}
	if cfg.MaxBuckets == 0 {
		cfg.MaxBuckets = DefaultSimulationMaxBuckets
	}
	if cfg.Factor == 0 {
		cfg.Factor = DefaultSimulationFactor
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Seed == 0 {
		cfg.Seed = DefaultSimulationSeed
	}
	if len(cfg.Algorithms) == 0 {
		cfg.Algorithms = []mapper.Algorithm{mapper.AlgJumpHash, mapper.AlgJumpBack, mapper.AlgJumpBack32}
	}
}

func (cfg *SimulationCfg) validate() error {
	switch {
	case cfg.Iterations <= 0:
		return ErrBadIterations
	case cfg.MinBuckets < 1 || cfg.MinBuckets > cfg.MaxBuckets:
		return ErrBadBucketRange
	case cfg.Factor <= 0 || cfg.Factor >= 1:
		return ErrBadFactor
	case len(cfg.Algorithms) == 0:
		return ErrNoAlgorithms
	}
	for _, alg := range cfg.Algorithms {
		if err := alg.Validate(); err != nil {
			return err
		}
	}
	return nil
}
