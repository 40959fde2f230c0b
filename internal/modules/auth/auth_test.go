package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/database/databasetest"
	"github.com/folio-space/core/internal/middleware"
	jwtpkg "github.com/folio-space/core/internal/pkg/jwt"
	"github.com/folio-space/core/internal/pkg/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newRouter(t *testing.T, admin config.AdminConfig, secure bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := session.NewStore(databasetest.New(t), jwtpkg.NewSigner("test-secret"), admin.SessionTTL)
	r := gin.New()
	NewHandler(NewService(admin, store), store, secure, zap.NewNop()).RegisterRoutes(r.Group("/api"))
	r.GET("/api/private", middleware.Auth(store), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginJSON(password string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"`+password+`"}`))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	return nil
}

func TestVerify(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed"), bcrypt.MinCost)
	require.NoError(t, err)

	plain := NewService(config.AdminConfig{Password: "hunter2"}, nil)
	require.True(t, plain.Verify("hunter2"))
	require.False(t, plain.Verify("hunter3"))
	require.False(t, plain.Verify(""))

	hashed := NewService(config.AdminConfig{Password: "ignored", PasswordHash: string(hash)}, nil)
	require.True(t, hashed.Verify("hashed"))
	require.False(t, hashed.Verify("ignored"))

	none := NewService(config.AdminConfig{}, nil)
	require.False(t, none.Verify(""))
	require.False(t, none.Verify("anything"))
}

func TestLogin_SetsStrictHttpOnlyCookie(t *testing.T) {
	r := newRouter(t, config.AdminConfig{Password: "hunter2", SessionTTL: 24 * time.Hour}, true)

	w := do(r, loginJSON("hunter2"))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())

	ck := authCookie(w)
	require.NotNil(t, ck)
	require.True(t, ck.HttpOnly)
	require.True(t, ck.Secure)
	require.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	require.Equal(t, "/", ck.Path)
	require.Equal(t, 86400, ck.MaxAge)

	check := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	check.AddCookie(ck)
	w = do(r, check)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())

	private := httptest.NewRequest(http.MethodGet, "/api/private", nil)
	private.AddCookie(ck)
	require.Equal(t, http.StatusOK, do(r, private).Code)
}

func TestLogin_FormBody(t *testing.T) {
	r := newRouter(t, config.AdminConfig{Password: "hunter2", SessionTTL: time.Hour}, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(url.Values{"password": {"hunter2"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := do(r, req)
	require.Equal(t, http.StatusOK, w.Code)
	ck := authCookie(w)
	require.NotNil(t, ck)
	require.False(t, ck.Secure)
}

func TestLogin_WrongPasswordNeverLocksOrSetsCookie(t *testing.T) {
	r := newRouter(t, config.AdminConfig{Password: "hunter2", SessionTTL: time.Hour}, false)

	for i := 0; i < 5; i++ {
		w := do(r, loginJSON("wrong"))
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.JSONEq(t, `{"success":false,"error":"Invalid password"}`, w.Body.String())
		require.Nil(t, authCookie(w))
	}

	w := do(r, loginJSON("hunter2"))
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, authCookie(w))
}

func TestCheck_WithoutOrWithForgedCookie(t *testing.T) {
	r := newRouter(t, config.AdminConfig{Password: "hunter2", SessionTTL: time.Hour}, false)

	w := do(r, httptest.NewRequest(http.MethodGet, "/api/auth/check", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"success":false}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: "authenticated"})
	require.Equal(t, http.StatusUnauthorized, do(r, req).Code)
}

func TestLogout_RevokesSession(t *testing.T) {
	r := newRouter(t, config.AdminConfig{Password: "hunter2", SessionTTL: time.Hour}, false)
	ck := authCookie(do(r, loginJSON("hunter2")))
	require.NotNil(t, ck)

	out := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	out.AddCookie(ck)
	w := do(r, out)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := authCookie(w)
	require.NotNil(t, cleared)
	require.Empty(t, cleared.Value)
	require.Less(t, cleared.MaxAge, 0)

	check := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	check.AddCookie(ck)
	require.Equal(t, http.StatusUnauthorized, do(r, check).Code)
}
