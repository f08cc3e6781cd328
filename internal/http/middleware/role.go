package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireRoles only lets requests through whose principal's role is in the
// allowed set. Assumes Auth ran earlier on the route.
//
//	r.GET("/admin", middleware.Auth(secret), middleware.RequireRoles("admin"), handler)
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing or invalid credential",
				"code":  "authentication_error",
			})
			return
		}

		role := strings.ToLower(strings.TrimSpace(p.Role))
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "role not permitted",
				"code":  "authorization_error",
			})
			return
		}
		c.Next()
	}
}
