// Package jumpback maps 64-bit keys to buckets with jump-back hashing and builds sharded routers on top:
// growing from n to n+1 buckets moves only keys that land in the new bucket, and each call costs
// at most a couple of pseudo-random draws on average, independent of n.
package jumpback

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Borislavv/go-jumpback-hash/config"
	"github.com/Borislavv/go-jumpback-hash/internal/mapper"
	"github.com/Borislavv/go-jumpback-hash/internal/router"
	"github.com/Borislavv/go-jumpback-hash/internal/telemetry"
	"github.com/Borislavv/go-jumpback-hash/prng"
)

type (
	BucketMapper = mapper.BucketMapper
	Algorithm    = mapper.Algorithm
	Metrics      = router.Metrics
)

const (
	AlgJumpBack   = mapper.AlgJumpBack
	AlgJumpBack32 = mapper.AlgJumpBack32
	AlgJumpHash   = mapper.AlgJumpHash
	AlgClassic    = mapper.AlgClassic
)

var (
	ErrRouterDisabled   = errors.New("router section is not configured")
	ErrUnknownAlgorithm = mapper.ErrUnknownAlgorithm
	ErrNilGenerator     = mapper.ErrNilGenerator
)

// Algorithms lists every supported algorithm name.
func Algorithms() []Algorithm { return mapper.Algorithms() }

// NewMapper returns a mapper safe for concurrent use drawing from the named generator.
func NewMapper(alg Algorithm, gen prng.Name) (BucketMapper, error) {
	return mapper.NewPool(alg, gen)
}

// NewMapperWith returns a mapper over g. It is not safe for concurrent use.
func NewMapperWith(alg Algorithm, g prng.Generator) (BucketMapper, error) {
	return mapper.New(alg, g)
}

type JumpBack interface {
	Set(key string, value []byte)
	Get(key string) ([]byte, bool)
	Del(key string) bool
	Owner(key string) int32
	Resize(n int32) (moved int64, err error)
	Len() int64
	Mem() int64
	Shards() int32
	Metrics() Metrics
	WritePrometheus(w io.Writer)
	Dump(w io.Writer) (int, error)
	Load(r io.Reader) (int, error)
	telemetry.Logger
	io.Closer
}

type Router struct {
	*router.Router
	telemetry.Logger
	cls context.CancelFunc
}

// New validates cfg and builds its router, with periodic counters logging when enabled.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Router.Enabled() {
		return nil, ErrRouterDisabled
	}

	pool, err := mapper.NewPool(cfg.Mapper.Algorithm, cfg.Mapper.Generator)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	r, err := router.New(ctx, cfg.Router, pool, logger)
	if err != nil {
		cancel()
		return nil, err
	}
	telemeter := telemetry.New(ctx, cfg.Router, logger, r, cfg.Router.TelemetryLogsInterval)
	return &Router{Router: r, Logger: telemeter, cls: cancel}, nil
}

func (r *Router) Close() error {
	r.cls()
	return nil
}
