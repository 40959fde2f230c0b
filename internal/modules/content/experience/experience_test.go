package experience

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/folio-space/core/internal/database/databasetest"
	"github.com/folio-space/core/internal/modules/content/profile"
	"github.com/folio-space/core/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*Service, *profile.Service) {
	t.Helper()
	db := databasetest.New(t)
	profiles := profile.NewService(db, "")
	_, err := profiles.Create(&profile.ProfileDTO{Name: "Ada", Title: "Engineer", Bio: "Hi"})
	require.NoError(t, err)
	return NewService(db, profiles), profiles
}

func str(s string) *string { return &s }

func TestService_CreateThenRead(t *testing.T) {
	svc, _ := setup(t)

	created, err := svc.Create(&ExperienceDTO{
		Title:        "Engineer",
		Company:      "Acme",
		StartDate:    "2020-01-15",
		Description:  `<p>Built <a href="javascript:x">things</a></p>`,
		Achievements: []string{"Shipped", ""},
	})
	require.NoError(t, err)

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Acme", got.Company)
	require.True(t, got.Ongoing())
	require.True(t, time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC).Equal(got.StartDate))
	require.Equal(t, `<p>Built <a rel="noopener noreferrer">things</a></p>`, got.Description)
	require.Equal(t, []string{"Shipped"}, []string(got.Achievements))
}

func TestService_DateValidation(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Create(&ExperienceDTO{Title: "x", Company: "y", StartDate: "soon"})
	require.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.Create(&ExperienceDTO{Title: "x", Company: "y", StartDate: "2020-01-01", EndDate: str("2019-01-01")})
	require.ErrorIs(t, err, ErrInvalidRange)

	item, err := svc.Create(&ExperienceDTO{Title: "x", Company: "y", StartDate: "2020-01-01", EndDate: str("")})
	require.NoError(t, err)
	require.Nil(t, item.EndDate)
}

func TestService_ListOrderAndDelete(t *testing.T) {
	svc, _ := setup(t)
	var ids []string
	for _, start := range []string{"2018-01-01", "2022-01-01", "2020-01-01"} {
		it, err := svc.Create(&ExperienceDTO{Title: start, Company: "c", StartDate: start, EndDate: str("2023-01-01")})
		require.NoError(t, err)
		ids = append(ids, it.ID)
	}

	items, err := svc.List("")
	require.NoError(t, err)
	require.Equal(t, []string{"2022-01-01", "2020-01-01", "2018-01-01"}, []string{items[0].Title, items[1].Title, items[2].Title})

	require.NoError(t, svc.Delete(ids[1]))
	items, err = svc.List("")
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "2020-01-01", items[0].Title)
}

func TestHandler_Errors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validation.Register()
	svc, _ := setup(t)
	r := gin.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(r.Group("/api"), func(c *gin.Context) { c.Next() })

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/experiences", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(`{"title":"x","company":"y"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "start_date is required")

	w = post(`{"title":"x","company":"   ","start_date":"2020-01-01"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "company is required")

	w = post(`{"title":"x","company":"y","start_date":"bad"}`)
	require.JSONEq(t, `{"success":false,"error":"Invalid date"}`, w.Body.String())

	w = post(`{"title":"x","company":"y","start_date":"2021-05"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodPut, "/api/experiences/missing", strings.NewReader(`{"title":"x","company":"y","start_date":"2021-05"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"success":false,"error":"Experience not found"}`, w.Body.String())
}
