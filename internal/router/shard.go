package router

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Borislavv/go-jumpback-hash/model"
)

type entry struct {
	key   *model.Key
	raw   string
	value []byte
}

func newEntry(key string, value []byte) *entry {
	return &entry{key: model.NewKey(key), raw: key, value: value}
}

func (e *entry) weight() int64 { return int64(len(e.raw) + len(e.value)) }

// Shard is one bucket of the router. Per-shard counters are atomics so readers avoid the lock.
type Shard struct {
	sync.RWMutex
	items map[uint64]*entry

	id  int32
	mem int64 // key + value bytes (atomic)
	len int64 // number of entries (atomic)
}

func newShard(id int32) *Shard {
	return &Shard{id: id, items: make(map[uint64]*entry)}
}

func (sh *Shard) ID() int32     { return sh.id }
func (sh *Shard) Len() int64    { return atomic.LoadInt64(&sh.len) }
func (sh *Shard) Weight() int64 { return atomic.LoadInt64(&sh.mem) }

// set inserts or replaces the entry stored under its 64-bit key, a hash collision included.
// Returns deltas for global aggregations.
func (sh *Shard) set(e *entry) (bytesDelta, lenDelta int64) {
	k := e.key.Value()

	sh.Lock()
	if old, hit := sh.items[k]; hit {
		bytesDelta = e.weight() - old.weight()
	} else {
		bytesDelta, lenDelta = e.weight(), 1
		atomic.AddInt64(&sh.len, 1)
	}
	sh.items[k] = e
	atomic.AddInt64(&sh.mem, bytesDelta)
	sh.Unlock()
	return
}

func (sh *Shard) get(key *model.Key) (value []byte, hit bool) {
	sh.RLock()
	e, ok := sh.items[key.Value()]
	sh.RUnlock()
	if !ok || !e.key.IsTheSame(key) {
		return nil, false
	}
	return e.value, true
}

func (sh *Shard) remove(key *model.Key) (freedBytes int64, hit bool) {
	sh.Lock()
	if e, ok := sh.items[key.Value()]; ok && e.key.IsTheSame(key) {
		delete(sh.items, key.Value())
		freedBytes, hit = e.weight(), true
		atomic.AddInt64(&sh.len, -1)
		atomic.AddInt64(&sh.mem, -freedBytes)
	}
	sh.Unlock()
	return
}

// extract removes and returns every entry for which move reports true.
// The caller must hold the router resize lock.
func (sh *Shard) extract(move func(e *entry) bool) []*entry {
	sh.Lock()
	defer sh.Unlock()

	var out []*entry
	for k, e := range sh.items {
		if move(e) {
			delete(sh.items, k)
			atomic.AddInt64(&sh.len, -1)
			atomic.AddInt64(&sh.mem, -e.weight())
			out = append(out, e)
		}
	}
	return out
}

// walk iterates under a shared lock. The callback must be lightweight.
func (sh *Shard) walk(ctx context.Context, fn func(e *entry) bool) bool {
	sh.RLock()
	defer sh.RUnlock()
	for _, e := range sh.items {
		select {
		case <-ctx.Done():
			return false
		default:
			if !fn(e) {
				return false
			}
		}
	}
	return true
}
