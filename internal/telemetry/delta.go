package telemetry

import (
	"fmt"

	"github.com/Borislavv/go-jumpback-hash/internal/router"
)

// deltaMetrics converts cumulative snapshots to per-interval deltas.
// If a counter was reset (cur < prev), cur is taken as the delta.
func deltaMetrics(prev, cur router.Metrics) router.Metrics {
	return router.Metrics{
		Sets:     delta(prev.Sets, cur.Sets),
		Gets:     delta(prev.Gets, cur.Gets),
		Hits:     delta(prev.Hits, cur.Hits),
		Misses:   delta(prev.Misses, cur.Misses),
		Deletes:  delta(prev.Deletes, cur.Deletes),
		Resizes:  delta(prev.Resizes, cur.Resizes),
		Moved:    delta(prev.Moved, cur.Moved),
		Restored: delta(prev.Restored, cur.Restored),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}

var memUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

// fmtMem renders n as its two most significant binary units, e.g. "10MB 512KB".
func fmtMem(n uint64) string {
	unit := 0
	for unit < len(memUnits)-1 && n >= 1<<(10*(unit+1)) {
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%dB", n)
	}
	whole := n >> (10 * unit)
	rest := (n >> (10 * (unit - 1))) & 1023
	return fmt.Sprintf("%d%s %d%s", whole, memUnits[unit], rest, memUnits[unit-1])
}
