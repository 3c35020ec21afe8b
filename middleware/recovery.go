package middleware

import (
	"log"
	"net/http"

	"main/utils"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware converts panics into 500 responses instead of
// dropping the connection.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID, _ := c.Get("request_id")
				log.Printf("panic recovered (request_id=%v): %v", requestID, err)
				utils.TrackError("panic", "handler_panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
