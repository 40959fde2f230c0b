package middleware

import (
	"net/http"
	"strings"

	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	// CookieName carries the signed admin session token.
	CookieName    = "auth_token"
	ContextKeySID = "session_id"

	AdminPrefix    = "/admin"
	AdminLoginPath = "/admin/login"
)

// SessionValidator resolves a session token to a live session id.
type SessionValidator interface {
	Validate(token string) (string, bool, error)
}

// Auth rejects API requests without a live admin session with 401.
func Auth(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := authenticate(c, sessions)
		if !ok {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeySID, sid)
		c.Next()
	}
}

// AdminPages redirects every /admin page except the login page to the login
// page when the session cookie is missing or invalid.
func AdminPages(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsProtectedAdminPath(c.Request.URL.Path) {
			c.Next()
			return
		}
		sid, ok := authenticate(c, sessions)
		if !ok {
			c.Redirect(http.StatusFound, AdminLoginPath)
			c.Abort()
			return
		}
		c.Set(ContextKeySID, sid)
		c.Next()
	}
}

// IsProtectedAdminPath reports whether path needs an admin session to render.
func IsProtectedAdminPath(path string) bool {
	if path != AdminPrefix && !strings.HasPrefix(path, AdminPrefix+"/") {
		return false
	}
	return strings.TrimSuffix(path, "/") != AdminLoginPath
}

// CurrentSessionID extracts the authenticated session ID from context.
func CurrentSessionID(c *gin.Context) string {
	v, _ := c.Get(ContextKeySID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated reports whether the request carries a live session.
func IsAuthenticated(c *gin.Context, sessions SessionValidator) bool {
	_, ok := authenticate(c, sessions)
	return ok
}

func authenticate(c *gin.Context, sessions SessionValidator) (string, bool) {
	token := extractToken(c)
	if token == "" {
		return "", false
	}
	sid, ok, err := sessions.Validate(token)
	if err != nil || !ok {
		return "", false
	}
	return sid, true
}

// extractToken prefers the session cookie and falls back to a bearer header.
func extractToken(c *gin.Context) string {
	if v, err := c.Cookie(CookieName); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return NormalizeToken(c.GetHeader("Authorization"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
