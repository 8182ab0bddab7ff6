package clipboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/promptdeck/promptdeck/internal/shared/types"
)

// maxHistory bounds the number of retained entries.
const maxHistory = 50

// Entry is one clipboard record, newest first in history.
type Entry struct {
	ID       uint64    `json:"id"`
	Text     string    `json:"text"`
	CopiedAt time.Time `json:"copied_at"`
}

// Provider implements an in-memory clipboard with history
type Provider struct {
	mu      sync.RWMutex
	entries []Entry
	nextID  uint64
}

// NewProvider creates a clipboard provider
func NewProvider() *Provider {
	return &Provider{nextID: 1}
}

// Definition returns service metadata
func (c *Provider) Definition() types.Service {
	return types.Service{
		ID:          "clipboard",
		Name:        "Clipboard Service",
		Description: "Text clipboard with bounded history",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"copy",
			"paste",
			"history",
		},
		Tools: []types.Tool{
			{
				ID:          "clipboard.copy",
				Name:        "Copy to Clipboard",
				Description: "Copy text to the clipboard",
				Parameters: []types.Parameter{
					{Name: "text", Type: "string", Description: "Text to copy", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "clipboard.paste",
				Name:        "Paste from Clipboard",
				Description: "Retrieve the most recent clipboard entry",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "clipboard.history",
				Name:        "Get Clipboard History",
				Description: "Retrieve clipboard history, newest first",
				Parameters: []types.Parameter{
					{Name: "limit", Type: "number", Description: "Maximum number of entries", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "clipboard.clear",
				Name:        "Clear Clipboard",
				Description: "Clear the clipboard and its history",
				Parameters:  []types.Parameter{},
				Returns:     "boolean",
			},
		},
	}
}

// Execute runs a clipboard operation
func (c *Provider) Execute(_ context.Context, toolID string, params map[string]interface{}, _ *types.Context) (*types.Result, error) {
	switch toolID {
	case "clipboard.copy":
		return c.copy(params)
	case "clipboard.paste":
		return c.paste()
	case "clipboard.history":
		return c.history(params)
	case "clipboard.clear":
		return c.clear()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (c *Provider) copy(params map[string]interface{}) (*types.Result, error) {
	text, ok := params["text"].(string)
	if !ok || text == "" {
		return failure("text parameter required")
	}

	c.mu.Lock()
	entry := Entry{ID: c.nextID, Text: text, CopiedAt: time.Now().UTC()}
	c.nextID++
	c.entries = append([]Entry{entry}, c.entries...)
	if len(c.entries) > maxHistory {
		c.entries = c.entries[:maxHistory]
	}
	c.mu.Unlock()

	return success(map[string]interface{}{
		"copied":   true,
		"entry_id": entry.ID,
	})
}

func (c *Provider) paste() (*types.Result, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.entries) == 0 {
		return failure("clipboard is empty")
	}
	entry := c.entries[0]
	return success(map[string]interface{}{
		"text":      entry.Text,
		"entry_id":  entry.ID,
		"copied_at": entry.CopiedAt,
	})
}

func (c *Provider) history(params map[string]interface{}) (*types.Result, error) {
	limit := maxHistory
	if l, ok := params["limit"].(float64); ok && int(l) > 0 {
		limit = int(l)
	}

	c.mu.RLock()
	n := len(c.entries)
	if n > limit {
		n = limit
	}
	entries := make([]Entry, n)
	copy(entries, c.entries[:n])
	c.mu.RUnlock()

	return success(map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func (c *Provider) clear() (*types.Result, error) {
	c.mu.Lock()
	c.entries = nil
	c.mu.Unlock()

	return success(map[string]interface{}{"cleared": true})
}

func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{
		Success: true,
		Data:    data,
	}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{
		Success: false,
		Error:   &errMsg,
	}, fmt.Errorf("%s", message)
}
