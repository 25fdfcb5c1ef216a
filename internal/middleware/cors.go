package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS configures the cross-origin surface for the auth endpoints. The
// allowed header set matches what browser clients of this API send.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"POST", "OPTIONS"},
		AllowHeaders: []string{
			"authorization",
			"x-client-info",
			"apikey",
			"content-type",
		},
		MaxAge: 12 * time.Hour,
	})
}
