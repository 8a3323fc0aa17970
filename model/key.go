// Package model holds the key type callers route with: a 64-bit xxh3 value fed to a bucket
// mapper, plus the 128-bit digest of the same bytes for telling hash collisions apart.
package model

import (
	"sync"
	"unsafe"

	"github.com/zeebo/xxh3"
)

type Key struct {
	v  uint64
	hi uint64
	lo uint64
}

var hasherPool = sync.Pool{New: func() any { return xxh3.New() }}

// NewKey hashes s without copying it.
func NewKey(s string) *Key {
	return NewKeyBytes(unsafe.Slice(unsafe.StringData(s), len(s)))
}

func NewKeyBytes(b []byte) *Key {
	hasher := hasherPool.Get().(*xxh3.Hasher)
	hasher.Reset()
	_, _ = hasher.Write(b)

	u128 := hasher.Sum128()
	k := &Key{
		v:  hasher.Sum64(),
		hi: u128.Hi,
		lo: u128.Lo,
	}

	hasherPool.Put(hasher)
	return k
}

// Value is the 64-bit key handed to BucketMapper.Bucket.
func (k *Key) Value() uint64 {
	return k.v
}

func (k *Key) IsTheSame(key *Key) (same bool) {
	return k.v == key.v && k.hi == key.hi && k.lo == key.lo
}
