// Package config provides 12-factor configuration management for the
// PromptDeck backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Provider: external AI provider endpoint and call deadline
//   - Cache: AI result cache TTL and capacity bound
//   - Autosave: periodic and debounced save intervals
//   - Storage: key-value store root directory
//   - Logging: log level and output format
//   - RateLimit: per-IP rate limiting configuration
//
// Environment Variables:
//   - PORT, HOST
//   - PROVIDER_URL, PROVIDER_TIMEOUT
//   - CACHE_TTL, CACHE_CAPACITY
//   - AUTOSAVE_INTERVAL, AUTOSAVE_DEBOUNCE
//   - STORAGE_DIR
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
