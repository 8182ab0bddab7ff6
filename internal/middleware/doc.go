// Package middleware provides HTTP middleware for the prompt service.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting with stale client cleanup
//   - RequestID: req_-prefixed ULID tagging on every request
//   - Recovery and request logging come from Gin itself
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
