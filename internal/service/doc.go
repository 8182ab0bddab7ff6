// Package service provides the registry for boundary providers.
//
// The registry maintains a catalog of providers (clipboard, theme, export,
// credentials) and routes tool execution to them by tool ID prefix.
//
// Components:
//   - Registry: Central provider catalog
//   - Provider: Interface for provider implementations
//
// Features:
//   - Thread-safe provider registration
//   - Category-based listing
//   - Tool execution with context passing
//   - Registry statistics
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(clipboardProvider)
//	result, err := registry.Execute(ctx, "clipboard.copy", params, appCtx)
package service
