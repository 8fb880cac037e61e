package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// EnhancedRecoveryMiddleware turns panics into a generic 500. Expected
// failures never reach here; handlers map them to 4xx themselves.
func EnhancedRecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Recovered from panic on %s %s: %v",
					c.Request.Method, c.Request.URL.Path, err)
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
