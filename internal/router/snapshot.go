package router

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
	cbor "github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

const trailerSize = 8

var ErrSnapshotCorrupted = errors.New("router snapshot checksum mismatch")

type snapshotEntry struct {
	Key   string `cbor:"1,keyasint"`
	Value []byte `cbor:"2,keyasint"`
}

type snapshot struct {
	Shards  int32           `cbor:"1,keyasint"`
	Entries []snapshotEntry `cbor:"2,keyasint"`
}

// Dump writes every entry as a zstd stream of a CBOR body followed by its xxhash64.
func (r *Router) Dump(w io.Writer) (dumped int, err error) {
	r.mu.RLock()
	snap := snapshot{Shards: int32(len(r.shards)), Entries: make([]snapshotEntry, 0, r.Len())}
	for _, sh := range r.shards {
		sh.walk(r.ctx, func(e *entry) bool {
			snap.Entries = append(snap.Entries, snapshotEntry{Key: e.raw, Value: e.value})
			return true
		})
	}
	r.mu.RUnlock()
	if err = r.ctx.Err(); err != nil {
		return 0, err
	}

	body, err := cbor.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("marshal router snapshot: %w", err)
	}
	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint64(trailer[:], xxhash.Sum64(body))

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return 0, fmt.Errorf("create zstd writer: %w", err)
	}
	if _, err = zw.Write(body); err == nil {
		_, err = zw.Write(trailer[:])
	}
	if closeErr := zw.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("write router snapshot: %w", err)
	}

	r.logger.Info("router snapshot dumped", "entries", len(snap.Entries), "shards", snap.Shards)
	return len(snap.Entries), nil
}

// Load reads a snapshot written by Dump and routes its entries by the current shard count,
// which may differ from the one the snapshot was taken with.
func (r *Router) Load(rd io.Reader) (loaded int, err error) {
	zr, err := zstd.NewReader(rd)
	if err != nil {
		return 0, fmt.Errorf("create zstd reader: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return 0, fmt.Errorf("read router snapshot: %w", err)
	}
	if len(data) < trailerSize {
		return 0, ErrSnapshotCorrupted
	}
	body, trailer := data[:len(data)-trailerSize], data[len(data)-trailerSize:]
	if xxhash.Sum64(body) != binary.LittleEndian.Uint64(trailer) {
		return 0, ErrSnapshotCorrupted
	}

	var snap snapshot
	if err = cbor.Unmarshal(body, &snap); err != nil {
		return 0, fmt.Errorf("unmarshal router snapshot: %w", err)
	}

	for _, se := range snap.Entries {
		if err = r.ctx.Err(); err != nil {
			return loaded, err
		}
		r.set(newEntry(se.Key, se.Value))
		loaded++
	}
	r.counters.restored.Add(loaded)

	r.logger.Info("router snapshot loaded",
		"entries", loaded, "snapshot_shards", snap.Shards, "shards", r.Shards())
	return loaded, nil
}
