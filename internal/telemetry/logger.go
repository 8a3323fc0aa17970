package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/Borislavv/go-jumpback-hash/config"
	"github.com/Borislavv/go-jumpback-hash/internal/router"
)

// Source is what the telemetry loop samples. *router.Router implements it.
type Source interface {
	Metrics() router.Metrics
	Len() int64
	Mem() int64
	Shards() int32
}

type Logger interface {
	Interval() time.Duration
	Close() error
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.RouterCfg
	logger   *slog.Logger
	source   Source
	interval time.Duration
}

// New starts the counters loop when cfg enables it. interval <= 0 falls back to cfg.TelemetryLogsInterval.
func New(ctx context.Context, cfg *config.RouterCfg, logger *slog.Logger, source Source, interval time.Duration) *Logs {
	if interval <= 0 && cfg != nil {
		interval = cfg.TelemetryLogsInterval
	}
	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		source:   source,
		interval: interval,
	}).run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	if l.cfg.Enabled() && l.cfg.IsTelemetryLogsEnabled && l.interval > 0 && l.logger != nil {
		go l.loop()
	}
	return l
}

func (l *Logs) loop() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	prev := l.source.Metrics()
	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			cur := l.source.Metrics()
			d := deltaMetrics(prev, cur)
			prev = cur

			common := []any{"interval", l.interval.String()}

			l.logger.Info("router",
				append(common,
					"sets", int64(d.Sets),
					"gets", int64(d.Gets),
					"hits", int64(d.Hits),
					"misses", int64(d.Misses),
					"deletes", int64(d.Deletes),
				)...,
			)

			if d.Resizes > 0 || d.Restored > 0 {
				l.logger.Info("rebalance",
					append(common,
						"resizes", int64(d.Resizes),
						"moved", int64(d.Moved),
						"restored", int64(d.Restored),
					)...,
				)
			}

			l.logger.Info("storage",
				append(common,
					"size", fmtMem(uint64(max(l.source.Mem(), 0))),
					"entries", l.source.Len(),
					"shards", l.source.Shards(),
				)...,
			)
		}
	}
}
