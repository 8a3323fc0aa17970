// Package testhelp builds configs and loggers shared by tests across packages.
package testhelp

import (
	"log/slog"
	"os"
	"time"

	"github.com/Borislavv/go-jumpback-hash/config"
	"github.com/Borislavv/go-jumpback-hash/internal/mapper"
	"github.com/Borislavv/go-jumpback-hash/prng"
)

func Cfg() *config.Config {
	c := &config.Config{
		Mapper: config.MapperCfg{
			Algorithm: mapper.AlgJumpBack,
			Generator: prng.NameSplitMix64,
		},
		Router: &config.RouterCfg{
			Shards:                 8,
			IsTelemetryLogsEnabled: true,
			TelemetryLogsInterval:  20 * time.Millisecond,
			MetricsPrefix:          "test",
		},
	}
	c.AdjustConfig()
	return c
}

func SimulationCfg() *config.SimulationCfg {
	c := &config.SimulationCfg{
		Iterations: 1000,
		MaxBuckets: 64,
		Factor:     0.5,
		Workers:    2,
	}
	(&config.Config{Simulation: c}).AdjustConfig()
	return c
}

// Logger writes JSON at warn level so passing tests stay quiet.
func Logger() *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn})
	return slog.New(h).With(
		slog.String("service", "jumpback"),
		slog.String("env", "test"),
	)
}
