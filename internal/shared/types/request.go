package types

// SetPromptRequest replaces the original prompt.
type SetPromptRequest struct {
	Text string `json:"text"`
}

// ReorderRequest carries the new canonical order of segment IDs. It must be a
// permutation of the current segment set.
type ReorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// ExecuteRequest invokes a registered service tool.
type ExecuteRequest struct {
	ToolID  string                 `json:"tool_id" binding:"required"`
	Params  map[string]interface{} `json:"params"`
	Context *Context               `json:"context,omitempty"`
}

// SetCredentialsRequest configures the AI provider credential record.
type SetCredentialsRequest struct {
	APIKey string `json:"api_key" binding:"required"`
	Model  string `json:"model"`
}
