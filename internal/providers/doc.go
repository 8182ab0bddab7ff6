// Package providers implements the service provider system for PromptDeck.
//
// Service providers expose auxiliary capabilities to the frontend through
// a standardized tool-based interface, routed by the service registry.
//
// Available Providers:
//   - Clipboard: Copy/paste with bounded history
//   - Theme: UI theme preference persisted in the KV store
//   - Export: Download of the derived prompt output as a text file
//   - Credentials: API key and model selection for the AI provider
//
// Provider Interface:
//   - Definition(): Returns service metadata and tool definitions
//   - Execute(): Executes a tool with parameters and context
//
// Example Usage:
//
//	cb := clipboard.NewProvider()
//	result, err := cb.Execute(ctx, "clipboard.copy", params, nil)
package providers
