package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware returns middleware that tags every request with an
// identifier, generating one when the client did not supply it.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set("requestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
