package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/nursultanov/budgetbook/internal/requestid"
)

// RequestID attaches a request ID to the request context and echoes it in
// the response. An ID supplied by the client is kept so IDs stay stable
// across proxies.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestid.Header)
		if id == "" {
			id = requestid.New()
		}

		c.Request = c.Request.WithContext(requestid.NewContext(c.Request.Context(), id))
		c.Header(requestid.Header, id)
		c.Next()
	}
}
