// Package router implements a sharded in-memory key/value store whose shard ownership is
// decided by a consistent bucket mapper. Changing the shard count migrates only the entries
// whose owner changed, which for a monotone mapper means only entries moving to or from the
// added or removed shards.
package router

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/Borislavv/go-jumpback-hash/config"
	"github.com/Borislavv/go-jumpback-hash/internal/mapper"
	"github.com/Borislavv/go-jumpback-hash/model"
)

// Router respects given ctx for walks.
type Router struct {
	ctx    context.Context
	cfg    *config.RouterCfg
	logger *slog.Logger
	mapper mapper.BucketMapper

	// mu guards the shards slice. Hot paths take it shared, Resize and Load take it exclusively.
	mu     sync.RWMutex
	shards []*Shard

	len  int64 // aggregated number of entries (atomic)
	mem  int64 // aggregated key + value bytes (atomic)
	size int32 // len(shards), readable without mu (atomic)

	counters *counters
}

// New builds a router with cfg.Shards shards. m must be safe for concurrent use, e.g. a *mapper.Pool.
func New(ctx context.Context, cfg *config.RouterCfg, m mapper.BucketMapper, logger *slog.Logger) (*Router, error) {
	if cfg == nil || cfg.Shards <= 0 {
		return nil, config.ErrNoShards
	}
	if m == nil {
		return nil, mapper.ErrNilMapper
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := &Router{ctx: ctx, cfg: cfg, logger: logger, mapper: m}
	r.counters = newCounters(cfg.MetricsPrefix, r)
	r.shards = make([]*Shard, cfg.Shards)
	for id := range r.shards {
		r.shards[id] = newShard(int32(id))
	}
	atomic.StoreInt32(&r.size, cfg.Shards)
	return r, nil
}

// Set stores value under key. The value is kept by reference.
func (r *Router) Set(key string, value []byte) {
	r.counters.sets.Inc()
	r.set(newEntry(key, value))
}

// Get returns the value stored under key.
func (r *Router) Get(key string) (value []byte, ok bool) {
	r.counters.gets.Inc()
	k := model.NewKey(key)

	r.mu.RLock()
	value, ok = r.shardOf(k).get(k)
	r.mu.RUnlock()

	if ok {
		r.counters.hits.Inc()
	} else {
		r.counters.misses.Inc()
	}
	return value, ok
}

// Del removes key and reports whether it was present.
func (r *Router) Del(key string) bool {
	k := model.NewKey(key)

	r.mu.RLock()
	freed, hit := r.shardOf(k).remove(k)
	r.mu.RUnlock()

	if hit {
		r.counters.deletes.Inc()
		atomic.AddInt64(&r.len, -1)
		atomic.AddInt64(&r.mem, -freed)
	}
	return hit
}

// Owner returns the shard key is routed to under the current shard count.
func (r *Router) Owner(key string) int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mapper.Bucket(model.NewKey(key).Value(), int32(len(r.shards)))
}

// Walk calls fn for every entry until fn returns false or ctx is done.
// fn runs under a shard read lock and must not call back into the router's write paths.
func (r *Router) Walk(ctx context.Context, fn func(key string, value []byte) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sh := range r.shards {
		if !sh.walk(ctx, func(e *entry) bool { return fn(e.raw, e.value) }) {
			return
		}
	}
}

func (r *Router) Len() int64       { return atomic.LoadInt64(&r.len) }
func (r *Router) Mem() int64       { return atomic.LoadInt64(&r.mem) }
func (r *Router) Shards() int32    { return atomic.LoadInt32(&r.size) }
func (r *Router) Metrics() Metrics { return r.counters.snapshot() }

// ShardLen returns the number of entries in shard id, or 0 for an out-of-range id.
func (r *Router) ShardLen(id int32) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if id < 0 || int(id) >= len(r.shards) {
		return 0
	}
	return r.shards[id].Len()
}

// WritePrometheus writes the router counters and gauges in Prometheus text format.
func (r *Router) WritePrometheus(w io.Writer) { r.counters.writePrometheus(w) }

func (r *Router) set(e *entry) {
	r.mu.RLock()
	bytesDelta, lenDelta := r.shardOf(e.key).set(e)
	r.mu.RUnlock()

	if bytesDelta != 0 {
		atomic.AddInt64(&r.mem, bytesDelta)
	}
	if lenDelta != 0 {
		atomic.AddInt64(&r.len, lenDelta)
	}
}

// shardOf must be called with mu held.
func (r *Router) shardOf(k *model.Key) *Shard {
	return r.shards[r.mapper.Bucket(k.Value(), int32(len(r.shards)))]
}
