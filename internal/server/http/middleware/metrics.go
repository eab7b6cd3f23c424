package middleware

import "github.com/gin-gonic/gin"

// RequestObserver records the outcome of a served request.
type RequestObserver interface {
	RequestStarted() func(method, route string, status int)
}

// Metrics observes every request under its matched route template.
// Unmatched paths are grouped under a single label to bound cardinality.
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		done := observer.RequestStarted()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		done(c.Request.Method, route, c.Writer.Status())
	}
}
