package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := s.Get("session/current")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("session/current", []byte(`{"a":1}`)))

	data, ok, err := s.Get("session/current")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"a":1}`), data)
}

func TestFileStoreOverwrite(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("k", []byte("first")))
	require.NoError(t, s.Set("k", []byte("second")))

	data, ok, err := s.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", string(data))
}

func TestFileStoreRemove(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("theme/current", []byte("dark")))
	require.NoError(t, s.Remove("theme/current"))
	require.NoError(t, s.Remove("theme/current")) // absent key is fine

	_, ok, err := s.Get("theme/current")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Set("cache/segmentize:aa11", []byte("x")))
	require.NoError(t, s.Set("cache/condense:bb22", []byte("y")))
	require.NoError(t, s.Set("credentials", []byte("z")))

	keys, err := s.Keys("cache/")
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.ElementsMatch(t, []string{"cache/segmentize:aa11", "cache/condense:bb22"}, keys)
}

func TestFileStoreEscapesKeySegments(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	// A key segment with path metacharacters must stay inside the root.
	require.NoError(t, s.Set("cache/op:..%2f..", []byte("v")))

	data, ok, err := s.Get("cache/op:..%2f..")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(data))
}
