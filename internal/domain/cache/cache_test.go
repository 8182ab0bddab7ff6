package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck/internal/storage"
)

func TestGetSet(t *testing.T) {
	c := New(time.Hour, 8, nil, nil)

	_, ok := c.Get("segmentize:aa")
	assert.False(t, ok)

	c.Set("segmentize:aa", []byte("result"))

	got, ok := c.Get("segmentize:aa")
	require.True(t, ok)
	assert.Equal(t, "result", string(got))
}

func TestOverwrite(t *testing.T) {
	c := New(time.Hour, 8, nil, nil)

	c.Set("k", []byte("first"))
	c.Set("k", []byte("second"))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "second", string(got))
	assert.Equal(t, 1, c.Len())
}

func TestTTLExpiry(t *testing.T) {
	c := New(time.Hour, 8, nil, nil)

	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("k", []byte("v"))

	// Just under the TTL: still a hit.
	now = now.Add(time.Hour - time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	// At the TTL boundary: evicted and reported as a miss.
	now = now.Add(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestLRUCapacity(t *testing.T) {
	c := New(time.Hour, 2, nil, nil)

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", []byte("3"))
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestWriteThroughSurvivesRestart(t *testing.T) {
	kv := storage.NewMemStore()

	c1 := New(time.Hour, 8, kv, nil)
	c1.Set("condense:bb", []byte("short text"))

	// A fresh cache over the same store sees the persisted entry.
	c2 := New(time.Hour, 8, kv, nil)
	got, ok := c2.Get("condense:bb")
	require.True(t, ok)
	assert.Equal(t, "short text", string(got))
}

func TestPersistedExpiryEvicts(t *testing.T) {
	kv := storage.NewMemStore()

	c1 := New(time.Hour, 8, kv, nil)
	c1.Set("k", []byte("v"))

	c2 := New(time.Hour, 8, kv, nil)
	c2.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, ok := c2.Get("k")
	assert.False(t, ok)

	_, exists, err := kv.Get("cache/k")
	require.NoError(t, err)
	assert.False(t, exists, "expired persisted entry should be removed")
}

func TestStorageFailuresAreAbsorbed(t *testing.T) {
	kv := storage.NewMemStore()
	kv.FailWrites = true

	c := New(time.Hour, 8, kv, nil)

	// Set must not fail even though persistence does.
	c.Set("k", []byte("v"))

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", string(got))
}

func TestOnEvictFires(t *testing.T) {
	c := New(time.Hour, 2, nil, nil)

	evicted := 0
	c.OnEvict(func() { evicted++ })

	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Set("c", []byte("3")) // capacity eviction

	now := time.Now()
	c.now = func() time.Time { return now.Add(2 * time.Hour) }
	c.Get("c") // TTL eviction

	assert.Equal(t, 2, evicted)
}

func TestCorruptPersistedRecordIsMiss(t *testing.T) {
	kv := storage.NewMemStore()
	require.NoError(t, kv.Set("cache/k", []byte("{not json")))

	c := New(time.Hour, 8, kv, nil)
	_, ok := c.Get("k")
	assert.False(t, ok)
}
