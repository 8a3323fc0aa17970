package router

import (
	"sync/atomic"

	"github.com/Borislavv/go-jumpback-hash/config"
)

// Resize changes the shard count to n and migrates every entry whose owner changed.
// Aggregated Len and Mem are unaffected. Blocks all other router calls while it runs.
func (r *Router) Resize(n int32) (moved int64, err error) {
	if n <= 0 {
		return 0, config.ErrNoShards
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old := int32(len(r.shards))
	if n == old {
		return 0, nil
	}

	next := make([]*Shard, n)
	copy(next, r.shards)
	for id := old; id < n; id++ {
		next[id] = newShard(id)
	}

	var migrating []*entry
	for _, sh := range r.shards {
		id := sh.id
		migrating = append(migrating, sh.extract(func(e *entry) bool {
			return id >= n || r.mapper.Bucket(e.key.Value(), n) != id
		})...)
	}

	r.shards = next
	atomic.StoreInt32(&r.size, n)
	for _, e := range migrating {
		// totals are kept: the entry left one shard and joins another
		_, _ = r.shardOf(e.key).set(e)
	}

	moved = int64(len(migrating))
	r.counters.resizes.Inc()
	r.counters.moved.Add(len(migrating))
	r.logger.Info("router resized", "from", old, "to", n, "moved", moved, "entries", r.Len())
	return moved, nil
}
