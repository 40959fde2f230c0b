package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessions map[string]string

func (f fakeSessions) Validate(token string) (string, bool, error) {
	sid, ok := f[token]
	return sid, ok, nil
}

func newRouter(sessions SessionValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger(zap.NewNop()), AdminPages(sessions))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "sid=%s", CurrentSessionID(c)) }
	r.GET("/", ok)
	r.GET("/admin", ok)
	r.GET("/admin/login", ok)
	r.GET("/admin/skills", ok)
	r.POST("/api/skills", Auth(sessions), ok)
	return r
}

func do(r http.Handler, method, path, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminPages_RedirectsWithoutSession(t *testing.T) {
	r := newRouter(fakeSessions{"good": "s1"})

	for _, path := range []string{"/admin", "/admin/skills"} {
		w := do(r, http.MethodGet, path, "")
		require.Equal(t, http.StatusFound, w.Code, path)
		require.Equal(t, AdminLoginPath, w.Header().Get("Location"))

		w = do(r, http.MethodGet, path, "authenticated")
		require.Equal(t, http.StatusFound, w.Code, path)

		w = do(r, http.MethodGet, path, "good")
		require.Equal(t, http.StatusOK, w.Code, path)
		require.Equal(t, "sid=s1", w.Body.String())
	}

	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/admin/login", "").Code)
	require.Equal(t, http.StatusOK, do(r, http.MethodGet, "/", "").Code)
}

func TestAuth_APIReturns401(t *testing.T) {
	r := newRouter(fakeSessions{"good": "s1"})

	w := do(r, http.MethodPost, "/api/skills", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.JSONEq(t, `{"success":false,"error":"Unauthorized"}`, w.Body.String())

	require.Equal(t, http.StatusOK, do(r, http.MethodPost, "/api/skills", "good").Code)

	req := httptest.NewRequest(http.MethodPost, "/api/skills", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestIsProtectedAdminPath(t *testing.T) {
	require.True(t, IsProtectedAdminPath("/admin"))
	require.True(t, IsProtectedAdminPath("/admin/"))
	require.True(t, IsProtectedAdminPath("/admin/projects/1"))
	require.False(t, IsProtectedAdminPath("/admin/login"))
	require.False(t, IsProtectedAdminPath("/admin/login/"))
	require.False(t, IsProtectedAdminPath("/administrator"))
	require.False(t, IsProtectedAdminPath("/api/skills"))
}

func TestMetrics_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	col := NewMetricsCollector()
	reg := prometheus.NewRegistry()
	require.NoError(t, reg.Register(col))

	r := gin.New()
	r.Use(Metrics(col))
	r.GET("/api/skills/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	do(r, http.MethodGet, "/api/skills/a", "")
	do(r, http.MethodGet, "/api/skills/b", "")
	do(r, http.MethodGet, "/nope", "")

	expected := `
# HELP folio_http_requests_total The number of HTTP requests served.
# TYPE folio_http_requests_total counter
folio_http_requests_total{method="GET",route="/api/skills/:id",status="200"} 2
folio_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "folio_http_requests_total"))
}
