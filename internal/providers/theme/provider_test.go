package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck/internal/storage"
)

func TestGetDefaultsToDark(t *testing.T) {
	p := NewProvider(storage.NewMemStore())

	result, err := p.Execute(context.Background(), "theme.get", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "dark", result.Data["theme"])
}

func TestSetPersistsAcrossProviders(t *testing.T) {
	kv := storage.NewMemStore()
	p := NewProvider(kv)

	result, err := p.Execute(context.Background(), "theme.set", map[string]interface{}{"theme": "light"}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	// A fresh provider over the same store sees the persisted choice.
	p2 := NewProvider(kv)
	result, err = p2.Execute(context.Background(), "theme.get", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "light", result.Data["theme"])
}

func TestSetRejectsUnknownTheme(t *testing.T) {
	p := NewProvider(storage.NewMemStore())

	result, err := p.Execute(context.Background(), "theme.set", map[string]interface{}{"theme": "neon"}, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)

	result, err = p.Execute(context.Background(), "theme.set", map[string]interface{}{}, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)
}

func TestCorruptPersistedThemeFallsBack(t *testing.T) {
	kv := storage.NewMemStore()
	require.NoError(t, kv.Set(currentKey, []byte("garbage")))

	p := NewProvider(kv)
	result, err := p.Execute(context.Background(), "theme.get", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "dark", result.Data["theme"])
}
