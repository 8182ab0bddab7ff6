package credentials

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/promptdeck/promptdeck/internal/shared/types"
	"github.com/promptdeck/promptdeck/internal/storage"
)

// currentKey is where the credential record is persisted.
const currentKey = "credentials/current"

// defaultModel is used when a key is set without choosing a model.
const defaultModel = "gpt-4o-mini"

// Provider holds the AI provider credentials. It is the explicit handle the
// gateway reads from; nothing else in the process sees the raw key.
type Provider struct {
	kv storage.Store

	mu    sync.RWMutex
	creds types.Credentials
}

// NewProvider creates a credentials provider, loading any persisted record.
func NewProvider(kv storage.Store) *Provider {
	p := &Provider{kv: kv}
	if raw, ok, err := kv.Get(currentKey); err == nil && ok {
		var creds types.Credentials
		if err := sonic.Unmarshal(raw, &creds); err == nil {
			p.creds = creds
		}
	}
	return p
}

// Credentials returns the current record. Implements the gateway source.
func (p *Provider) Credentials() types.Credentials {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.creds
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "credentials",
		Name:        "Credentials Service",
		Description: "AI provider credential management",
		Category:    types.CategoryAI,
		Capabilities: []string{
			"get",
			"set",
			"clear",
		},
		Tools: []types.Tool{
			{
				ID:          "credentials.get",
				Name:        "Get Credentials",
				Description: "Get the configured model and a masked API key",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "credentials.set",
				Name:        "Set Credentials",
				Description: "Set the API key and model",
				Parameters: []types.Parameter{
					{Name: "api_key", Type: "string", Description: "Provider API key", Required: true},
					{Name: "model", Type: "string", Description: "Model identifier", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "credentials.clear",
				Name:        "Clear Credentials",
				Description: "Remove the stored credentials",
				Parameters:  []types.Parameter{},
				Returns:     "boolean",
			},
		},
	}
}

// Execute runs a credentials operation
func (p *Provider) Execute(_ context.Context, toolID string, params map[string]interface{}, _ *types.Context) (*types.Result, error) {
	switch toolID {
	case "credentials.get":
		return p.get()
	case "credentials.set":
		return p.set(params)
	case "credentials.clear":
		return p.clear()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) get() (*types.Result, error) {
	p.mu.RLock()
	creds := p.creds
	p.mu.RUnlock()

	return success(map[string]interface{}{
		"configured": creds.Configured(),
		"api_key":    Mask(creds.APIKey),
		"model":      creds.Model,
	})
}

func (p *Provider) set(params map[string]interface{}) (*types.Result, error) {
	apiKey, ok := params["api_key"].(string)
	if !ok || strings.TrimSpace(apiKey) == "" {
		return failure("api_key parameter required")
	}

	model := defaultModel
	if m, ok := params["model"].(string); ok && strings.TrimSpace(m) != "" {
		model = strings.TrimSpace(m)
	}

	creds := types.Credentials{APIKey: strings.TrimSpace(apiKey), Model: model}
	raw, err := sonic.Marshal(creds)
	if err != nil {
		return failure(fmt.Sprintf("encode credentials: %v", err))
	}
	if err := p.kv.Set(currentKey, raw); err != nil {
		return failure(fmt.Sprintf("persist credentials: %v", err))
	}

	p.mu.Lock()
	p.creds = creds
	p.mu.Unlock()

	return success(map[string]interface{}{
		"configured": true,
		"api_key":    Mask(creds.APIKey),
		"model":      creds.Model,
	})
}

func (p *Provider) clear() (*types.Result, error) {
	if err := p.kv.Remove(currentKey); err != nil {
		return failure(fmt.Sprintf("clear credentials: %v", err))
	}

	p.mu.Lock()
	p.creds = types.Credentials{}
	p.mu.Unlock()

	return success(map[string]interface{}{"cleared": true})
}

// Mask hides all but the last four characters of a key. Short keys are
// fully masked.
func Mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
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
