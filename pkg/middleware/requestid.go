package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key and response header for request IDs.
const RequestIDKey = "X-Request-Id"

// RequestIDMiddleware assigns a UUID to each request, honoring an inbound
// header from the reverse proxy when present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDKey)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDKey, id)

		c.Next()
	}
}
