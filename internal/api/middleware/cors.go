package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ConfigCORS allows the configured origins, or any origin when the list
// contains "*".
func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if len(allowedDomains) == 1 && allowedDomains[0] == "*" {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = allowedDomains
		conf.AllowCredentials = true
	}

	return cors.New(conf)
}
