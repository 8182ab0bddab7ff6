package clipboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyText(t *testing.T, p *Provider, text string) {
	t.Helper()
	result, err := p.Execute(context.Background(), "clipboard.copy", map[string]interface{}{"text": text}, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
}

func TestCopyAndPaste(t *testing.T) {
	p := NewProvider()
	copyText(t, p, "hello")

	result, err := p.Execute(context.Background(), "clipboard.paste", nil, nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "hello", result.Data["text"])
}

func TestPasteReturnsNewest(t *testing.T) {
	p := NewProvider()
	copyText(t, p, "first")
	copyText(t, p, "second")

	result, err := p.Execute(context.Background(), "clipboard.paste", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "second", result.Data["text"])
}

func TestPasteEmptyClipboard(t *testing.T) {
	p := NewProvider()
	result, err := p.Execute(context.Background(), "clipboard.paste", nil, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)
}

func TestCopyRequiresText(t *testing.T) {
	p := NewProvider()
	result, err := p.Execute(context.Background(), "clipboard.copy", map[string]interface{}{}, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)
}

func TestHistoryNewestFirstWithLimit(t *testing.T) {
	p := NewProvider()
	copyText(t, p, "a")
	copyText(t, p, "b")
	copyText(t, p, "c")

	result, err := p.Execute(context.Background(), "clipboard.history", map[string]interface{}{"limit": float64(2)}, nil)
	require.NoError(t, err)
	entries := result.Data["entries"].([]Entry)
	require.Len(t, entries, 2)
	assert.Equal(t, "c", entries[0].Text)
	assert.Equal(t, "b", entries[1].Text)
	assert.Equal(t, 2, result.Data["count"])
}

func TestHistoryBounded(t *testing.T) {
	p := NewProvider()
	for i := 0; i < maxHistory+10; i++ {
		copyText(t, p, "entry")
	}

	result, err := p.Execute(context.Background(), "clipboard.history", nil, nil)
	require.NoError(t, err)
	entries := result.Data["entries"].([]Entry)
	assert.Len(t, entries, maxHistory)
}

func TestClear(t *testing.T) {
	p := NewProvider()
	copyText(t, p, "gone soon")

	result, err := p.Execute(context.Background(), "clipboard.clear", nil, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)

	result, err = p.Execute(context.Background(), "clipboard.paste", nil, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)
}

func TestUnknownTool(t *testing.T) {
	p := NewProvider()
	result, err := p.Execute(context.Background(), "clipboard.nope", nil, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)
}
