package middleware

import "github.com/gin-gonic/gin"

// CacheControlMiddleware sets a public max-age on responses. Used for
// the attachment file routes, which are content-addressed and immutable.
func CacheControlMiddleware(duration string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age="+duration)
		c.Next()
	}
}
