package router

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// counters are cumulative and exported through a private metrics.Set,
// so several routers in one process never clash on metric names.
type counters struct {
	set *metrics.Set

	sets     *metrics.Counter
	gets     *metrics.Counter
	hits     *metrics.Counter
	misses   *metrics.Counter
	deletes  *metrics.Counter
	resizes  *metrics.Counter
	moved    *metrics.Counter
	restored *metrics.Counter
}

// Metrics is a point-in-time copy of the router counters.
type Metrics struct {
	Sets     uint64
	Gets     uint64
	Hits     uint64
	Misses   uint64
	Deletes  uint64
	Resizes  uint64
	Moved    uint64
	Restored uint64
}

func newCounters(prefix string, r *Router) *counters {
	set := metrics.NewSet()
	c := &counters{
		set:      set,
		sets:     set.NewCounter(prefix + "_sets_total"),
		gets:     set.NewCounter(prefix + "_gets_total"),
		hits:     set.NewCounter(prefix + "_hits_total"),
		misses:   set.NewCounter(prefix + "_misses_total"),
		deletes:  set.NewCounter(prefix + "_deletes_total"),
		resizes:  set.NewCounter(prefix + "_resizes_total"),
		moved:    set.NewCounter(prefix + "_moved_entries_total"),
		restored: set.NewCounter(prefix + "_restored_entries_total"),
	}
	set.NewGauge(prefix+"_entries", func() float64 { return float64(r.Len()) })
	set.NewGauge(prefix+"_bytes", func() float64 { return float64(r.Mem()) })
	set.NewGauge(prefix+"_shards", func() float64 { return float64(r.Shards()) })
	return c
}

func (c *counters) snapshot() Metrics {
	return Metrics{
		Sets:     c.sets.Get(),
		Gets:     c.gets.Get(),
		Hits:     c.hits.Get(),
		Misses:   c.misses.Get(),
		Deletes:  c.deletes.Get(),
		Resizes:  c.resizes.Get(),
		Moved:    c.moved.Get(),
		Restored: c.restored.Get(),
	}
}

func (c *counters) writePrometheus(w io.Writer) { c.set.WritePrometheus(w) }
