package middleware

import (
	"net/http"
	"strings"

	"boardapi/internal/authz"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const principalKey = "principal"

// Auth verifies the Bearer token and stores the resolved principal in the
// context. Requests without a valid credential are rejected with 401.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principalFromHeader(c, secret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing or invalid credential",
				"code":  "authentication_error",
			})
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// AuthOptional resolves a principal when a valid credential is present and
// passes through anonymously otherwise.
func AuthOptional(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := principalFromHeader(c, secret); ok {
			c.Set(principalKey, p)
		}
		c.Next()
	}
}

// PrincipalFrom extracts the authenticated principal from the gin context.
func PrincipalFrom(c *gin.Context) (authz.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return authz.Principal{}, false
	}
	p, ok := v.(authz.Principal)
	return p, ok
}

func principalFromHeader(c *gin.Context, secret string) (authz.Principal, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return authz.Principal{}, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return authz.Principal{}, false
	}

	token, err := jwt.Parse(strings.TrimSpace(parts[1]), func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return authz.Principal{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return authz.Principal{}, false
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return authz.Principal{}, false
	}
	role, _ := claims["role"].(string)

	return authz.Principal{ID: int64(id), Role: role}, true
}
