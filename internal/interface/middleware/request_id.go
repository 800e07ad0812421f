package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const CtxRequestIDKey = "request_id"

// RequestID tags every request with an identifier. An inbound X-Request-ID
// header is reused so log lines correlate across services; otherwise a fresh
// UUID is generated. The ID is echoed on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(CtxRequestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
