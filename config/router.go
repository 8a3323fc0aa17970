package config

import (
	"errors"
	"time"
)

const (
	defaultRouterShards      = 16
	defaultTelemetryInterval = 5 * time.Second
	defaultMetricsPrefix     = "jumpback_router"
)

var ErrNoShards = errors.New("shards must be positive")

type RouterCfg struct {
	// Shards is the initial number of shards keys are mapped onto. Resize changes it at runtime.
	Shards int32 `yaml:"shards"`

	// IsTelemetryLogsEnabled turns on the periodic slog counters line.
	IsTelemetryLogsEnabled bool `yaml:"stat_logs_enabled"`

	// TelemetryLogsInterval is the period between two counters lines. Default 5s.
	TelemetryLogsInterval time.Duration `yaml:"stat_logs_interval"`

	// MetricsPrefix prefixes every exported Prometheus metric name.
	MetricsPrefix string `yaml:"metrics_prefix"`
}

func (cfg *RouterCfg) Enabled() bool {
	return cfg != nil
}

func (cfg *RouterCfg) adjust() {
	if cfg.Shards == 0 {
		cfg.Shards = defaultRouterShards
	}
	if cfg.TelemetryLogsInterval <= 0 {
		cfg.TelemetryLogsInterval = defaultTelemetryInterval
	}
	if cfg.MetricsPrefix == "" {
		cfg.MetricsPrefix = defaultMetricsPrefix
	}
}

func (cfg *RouterCfg) validate() error {
	if cfg.Shards <= 0 {
		return ErrNoShards
	}
	return nil
}
