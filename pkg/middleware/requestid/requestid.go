package requestid

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header is the correlation header echoed on every response; clients quote
// it when reporting a rejected proposal.
const Header = "X-Request-ID"

const (
	contextKey    = "request_id"
	maxInboundLen = 64
)

// Middleware reuses a caller-supplied request id or assigns a fresh UUID.
// Oversized inbound ids are replaced, not truncated.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(Header)
		if id == "" || len(id) > maxInboundLen {
			id = uuid.NewString()
		}

		c.Set(contextKey, id)
		c.Writer.Header().Set(Header, id)

		c.Next()
	}
}

// Value returns the request id bound to the Gin context, or "".
func Value(c *gin.Context) string {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
