package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID int64, role string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/secure", Auth(testSecret), func(c *gin.Context) {
		p, _ := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": p.ID, "role": p.Role})
	})
	r.GET("/open", AuthOptional(testSecret), func(c *gin.Context) {
		if p, ok := PrincipalFrom(c); ok {
			c.JSON(http.StatusOK, gin.H{"id": p.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"anonymous": true})
	})
	r.GET("/mods", Auth(testSecret), RequireRoles("admin", "moderator"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthAcceptsValidToken(t *testing.T) {
	r := authTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, 42, "member", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	r := authTestRouter()

	cases := map[string]string{
		"no header":    "",
		"not bearer":   "Basic abc",
		"garbage":      "Bearer not-a-jwt",
		"wrong secret": "Bearer " + signToken(t, "other-secret", 42, "member", time.Hour),
		"expired":      "Bearer " + signToken(t, testSecret, 42, "member", -time.Minute),
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/secure", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, w.Code)
		}
	}
}

func TestAuthOptionalPassesAnonymously(t *testing.T) {
	r := authTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireRolesForbidsMembers(t *testing.T) {
	r := authTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/mods", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, 7, "member", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for member, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/mods", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, 7, "moderator", time.Hour))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for moderator, got %d", w.Code)
	}
}
