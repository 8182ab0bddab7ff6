package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdeck/promptdeck/internal/shared/types"
)

type stubProvider struct {
	def      types.Service
	lastTool string
}

func (p *stubProvider) Definition() types.Service { return p.def }

func (p *stubProvider) Execute(_ context.Context, toolID string, params map[string]interface{}, _ *types.Context) (*types.Result, error) {
	p.lastTool = toolID
	return &types.Result{Success: true, Data: map[string]interface{}{"tool": toolID}}, nil
}

func newStub(id string, category types.Category, tools int) *stubProvider {
	def := types.Service{ID: id, Name: id, Category: category}
	for i := 0; i < tools; i++ {
		def.Tools = append(def.Tools, types.Tool{ID: id + ".tool"})
	}
	return &stubProvider{def: def}
}

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newStub("clipboard", types.CategorySystem, 2)))

	p, ok := r.Get("clipboard")
	assert.True(t, ok)
	assert.Equal(t, "clipboard", p.Definition().ID)

	_, ok = r.Get("missing")
	assert.False(t, ok)
}

func TestRegisterRejectsEmptyID(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(&stubProvider{}))
}

func TestListFiltersByCategory(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newStub("clipboard", types.CategorySystem, 1)))
	require.NoError(t, r.Register(newStub("theme", types.CategorySystem, 1)))
	require.NoError(t, r.Register(newStub("export", types.CategoryExport, 1)))

	assert.Len(t, r.List(nil), 3)

	system := types.CategorySystem
	assert.Len(t, r.List(&system), 2)

	ai := types.CategoryAI
	assert.Empty(t, r.List(&ai))
}

func TestExecuteRoutesByPrefix(t *testing.T) {
	r := NewRegistry()
	stub := newStub("clipboard", types.CategorySystem, 1)
	require.NoError(t, r.Register(stub))

	result, err := r.Execute(context.Background(), "clipboard.copy", map[string]interface{}{"text": "hi"}, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "clipboard.copy", stub.lastTool)
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()

	result, err := r.Execute(context.Background(), "noseparator", nil, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)

	result, err = r.Execute(context.Background(), "missing.tool", nil, nil)
	assert.Error(t, err)
	assert.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "service not found")
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newStub("theme", types.CategorySystem, 1)))
	r.Unregister("theme")

	_, ok := r.Get("theme")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(newStub("clipboard", types.CategorySystem, 3)))
	require.NoError(t, r.Register(newStub("export", types.CategoryExport, 1)))

	stats := r.Stats()
	assert.Equal(t, 2, stats["total_services"])
	assert.Equal(t, 4, stats["total_tools"])
	categories := stats["categories"].(map[string]int)
	assert.Equal(t, 1, categories["system"])
	assert.Equal(t, 1, categories["export"])
}
