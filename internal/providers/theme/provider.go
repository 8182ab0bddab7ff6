package theme

import (
	"context"
	"fmt"

	"github.com/promptdeck/promptdeck/internal/shared/types"
	"github.com/promptdeck/promptdeck/internal/storage"
)

// currentKey is where the active theme is persisted.
const currentKey = "theme/current"

// defaultTheme is used until the client picks one.
const defaultTheme = "dark"

var validThemes = map[string]bool{
	"dark":   true,
	"light":  true,
	"system": true,
}

// Provider implements persisted theme selection
type Provider struct {
	kv storage.Store
}

// NewProvider creates a theme provider backed by kv
func NewProvider(kv storage.Store) *Provider {
	return &Provider{kv: kv}
}

// Definition returns service metadata
func (t *Provider) Definition() types.Service {
	return types.Service{
		ID:          "theme",
		Name:        "Theme Manager",
		Description: "Persisted UI theme selection",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"get",
			"set",
		},
		Tools: []types.Tool{
			{
				ID:          "theme.get",
				Name:        "Get Current Theme",
				Description: "Get the currently active theme",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "theme.set",
				Name:        "Set Theme",
				Description: "Set the active theme (dark, light, system)",
				Parameters: []types.Parameter{
					{Name: "theme", Type: "string", Description: "Theme name", Required: true},
				},
				Returns: "boolean",
			},
		},
	}
}

// Execute runs a theme operation
func (t *Provider) Execute(_ context.Context, toolID string, params map[string]interface{}, _ *types.Context) (*types.Result, error) {
	switch toolID {
	case "theme.get":
		return t.get()
	case "theme.set":
		return t.set(params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (t *Provider) get() (*types.Result, error) {
	theme := defaultTheme
	if raw, ok, err := t.kv.Get(currentKey); err == nil && ok && validThemes[string(raw)] {
		theme = string(raw)
	}
	return success(map[string]interface{}{"theme": theme})
}

func (t *Provider) set(params map[string]interface{}) (*types.Result, error) {
	theme, ok := params["theme"].(string)
	if !ok || theme == "" {
		return failure("theme parameter required")
	}
	if !validThemes[theme] {
		return failure(fmt.Sprintf("unknown theme: %s", theme))
	}

	if err := t.kv.Set(currentKey, []byte(theme)); err != nil {
		return failure(fmt.Sprintf("persist theme: %v", err))
	}
	return success(map[string]interface{}{"theme": theme})
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
