// Package main is the entry point for the PromptDeck server.
//
// PromptDeck decomposes a prompt into ordered, editable segments, keeps a
// derived output assembled from the included ones, and persists the working
// session across restarts.
//
// The server provides:
//   - REST API for prompt and segment state
//   - WebSocket state push for connected clients
//   - AI segmentize/condense through a content-addressed result cache
//   - Debounced and periodic session autosave
//   - Rate limiting and Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -storage /var/lib/promptdeck
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown with a final session save
package main
