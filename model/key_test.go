package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

// TestNewKey_MatchesXXH3 verifies the key value is the plain xxh3 64-bit digest.
func TestNewKey_MatchesXXH3(t *testing.T) {
	for _, s := range []string{"", "a", "user:42", "some considerably longer key that spans more than one stripe of input"} {
		key := NewKey(s)
		require.Equal(t, xxh3.HashString(s), key.Value(), s)

		u128 := xxh3.HashString128(s)
		require.Equal(t, u128.Hi, key.hi, s)
		require.Equal(t, u128.Lo, key.lo, s)
	}
}

// TestNewKeyBytes_SameAsString verifies both constructors agree.
func TestNewKeyBytes_SameAsString(t *testing.T) {
	require.True(t, NewKey("bucket").IsTheSame(NewKeyBytes([]byte("bucket"))))
}

// TestKey_IsTheSame verifies key comparison.
func TestKey_IsTheSame(t *testing.T) {
	key1 := NewKey("test")
	key2 := NewKey("test")
	key3 := NewKey("different")

	require.True(t, key1.IsTheSame(key2), "same strings should produce same keys")
	require.False(t, key1.IsTheSame(key3), "different strings should produce different keys")
	require.True(t, key1.IsTheSame(key1))
}

// TestKey_IsTheSame_Collision verifies a shared 64-bit value alone is not enough.
func TestKey_IsTheSame_Collision(t *testing.T) {
	a := NewKey("a")
	forged := &Key{v: a.v, hi: a.hi ^ 1, lo: a.lo}
	require.Equal(t, a.Value(), forged.Value())
	require.False(t, a.IsTheSame(forged))
}

// TestNewKey_Concurrent verifies pooled hashers are not shared between goroutines.
func TestNewKey_Concurrent(t *testing.T) {
	want := NewKey("concurrent").Value()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if NewKey("concurrent").Value() != want {
					t.Error("unexpected key value")
					return
				}
			}
		}()
	}
	wg.Wait()
}
