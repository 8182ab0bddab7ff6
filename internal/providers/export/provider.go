package export

import (
	"context"
	"fmt"

	"github.com/promptdeck/promptdeck/internal/shared/types"
)

// Filename is the fixed download name for the derived output.
const Filename = "prompt-output.txt"

// OutputSource reads the current derived output.
type OutputSource interface {
	Output() string
}

// Provider implements derived output export
type Provider struct {
	source OutputSource
}

// NewProvider creates an export provider reading from source
func NewProvider(source OutputSource) *Provider {
	return &Provider{source: source}
}

// Definition returns service metadata
func (e *Provider) Definition() types.Service {
	return types.Service{
		ID:          "export",
		Name:        "Export Service",
		Description: "Download the derived output as a text file",
		Category:    types.CategoryExport,
		Capabilities: []string{
			"download",
		},
		Tools: []types.Tool{
			{
				ID:          "export.download",
				Name:        "Download Output",
				Description: "Package the derived output for download",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Execute runs an export operation
func (e *Provider) Execute(_ context.Context, toolID string, _ map[string]interface{}, _ *types.Context) (*types.Result, error) {
	switch toolID {
	case "export.download":
		return e.download()
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (e *Provider) download() (*types.Result, error) {
	content := e.source.Output()
	return success(map[string]interface{}{
		"filename":  Filename,
		"content":   content,
		"mime_type": "text/plain",
		"size":      len(content),
	})
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
