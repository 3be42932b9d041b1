package middleware

import "github.com/gin-gonic/gin"

// NoCache disables caching on the response. The authoritative time endpoint
// must never be served from an intermediary cache: a cached timestamp would
// poison every clock offset computed from it.
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}

// AllowFraming permits cross-origin iframe embedding of the response.
// Used by the embed route so tenants can place webinars on their own sites.
func AllowFraming() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", "frame-ancestors *")
		c.Next()
	}
}
