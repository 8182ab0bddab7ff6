package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck/internal/shared/id"
)

// RequestIDKey is the gin context key holding the request ID.
const RequestIDKey = "request_id"

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with a req_-prefixed ULID. A well-formed
// inbound header is kept so client traces line up; anything else is replaced.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if !validRequestID(rid) {
			rid = id.NewRequestID()
		}
		c.Set(RequestIDKey, rid)
		c.Writer.Header().Set(RequestIDHeader, rid)
		c.Next()
	}
}

func validRequestID(rid string) bool {
	rest, ok := strings.CutPrefix(rid, id.RequestPrefix+"_")
	return ok && id.IsValid(rest)
}
