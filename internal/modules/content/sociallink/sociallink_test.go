package sociallink

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/folio-space/core/internal/database/databasetest"
	"github.com/folio-space/core/internal/modules/content/profile"
	"github.com/folio-space/core/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) *Service {
	t.Helper()
	db := databasetest.New(t)
	profiles := profile.NewService(db, "")
	_, err := profiles.Create(&profile.ProfileDTO{Name: "Ada", Title: "Engineer", Bio: "Hi"})
	require.NoError(t, err)
	return NewService(db, profiles)
}

func TestService_DuplicatePlatformsAllowed(t *testing.T) {
	svc := setup(t)

	a, err := svc.Create(&SocialLinkDTO{Platform: "GitHub", URL: "https://github.com/a"})
	require.NoError(t, err)
	b, err := svc.Create(&SocialLinkDTO{Platform: "GitHub", URL: "https://github.com/b"})
	require.NoError(t, err)

	items, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, b.ID, items[0].ID)

	require.NoError(t, svc.Delete(b.ID))
	got, err := svc.GetByID(a.ID)
	require.NoError(t, err)
	require.Equal(t, "https://github.com/a", got.URL)
}

func TestService_Update(t *testing.T) {
	svc := setup(t)
	a, err := svc.Create(&SocialLinkDTO{Platform: "X", URL: "https://x.com/a", Icon: "x"})
	require.NoError(t, err)

	up, err := svc.Update(a.ID, &SocialLinkDTO{Platform: "Mastodon", URL: "https://hachyderm.io/@a"})
	require.NoError(t, err)
	require.Equal(t, "Mastodon", up.Platform)
	require.Empty(t, up.Icon)

	_, err = svc.Update(a.ID, &SocialLinkDTO{ProfileID: "nope", Platform: "X", URL: "https://x.com"})
	require.ErrorIs(t, err, profile.ErrProfileNotFound)
}

func TestHandler_RejectsNonHTTPURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validation.Register()
	r := gin.New()
	NewHandler(setup(t), zap.NewNop()).RegisterRoutes(r.Group("/api"), func(c *gin.Context) { c.Next() })

	req := httptest.NewRequest(http.MethodPost, "/api/social-links", strings.NewReader(`{"platform":"x","url":"javascript:alert(1)"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"success":false,"error":"url must be an http(s) URL"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/social-links", strings.NewReader(`{"platform":"  ","url":"https://x.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"success":false,"error":"platform is required"}`, w.Body.String())
}
