// Package http exposes the REST surface of the prompt service.
//
// Endpoints:
//   - State: GET /state, POST /prompt, PATCH /segments/:id,
//     POST /segments/reorder, POST /error/dismiss
//   - AI: POST /segmentize, POST /segments/:id/condense
//   - Output: GET /output, GET /export
//   - Services: GET /services, POST /services/execute
//   - Session: GET /session, POST /session/save, POST /session/restore
//   - Ops: GET /, GET /health, GET /stats, GET /metrics, GET /ws
//
// AI endpoints run synchronously: the handler holds the store's operation
// slot for the duration of the provider call, so a second AI request during
// one returns 409.
package http
