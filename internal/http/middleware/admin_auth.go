package middleware

import (
	"net/http"
	"strings"

	"earn_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

const adminKey = "admin_subject"

// AdminAuth requires an admin bearer token.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing bearer token"})
			return
		}

		sub, err := service.ParseAdminJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}

		c.Set(adminKey, sub)
		c.Next()
	}
}

// AdminSubject returns the authenticated admin, or "".
func AdminSubject(c *gin.Context) string {
	return c.GetString(adminKey)
}
