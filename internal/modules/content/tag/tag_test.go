package tag

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/folio-space/core/internal/database/databasetest"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestService_OrderAndUniqueness(t *testing.T) {
	svc := NewService(databasetest.New(t))

	for _, name := range []string{"web", "cli", "infra"} {
		_, err := svc.Create(&TagDTO{Name: name})
		require.NoError(t, err)
	}
	_, err := svc.Create(&TagDTO{Name: " web "})
	require.ErrorIs(t, err, ErrExists)

	items, err := svc.List()
	require.NoError(t, err)
	require.Equal(t, "cli", items[0].Name)
	require.Equal(t, "infra", items[1].Name)
	require.Equal(t, "web", items[2].Name)

	_, err = svc.Update(items[0].ID, &TagDTO{Name: "web"})
	require.ErrorIs(t, err, ErrExists)
	up, err := svc.Update(items[0].ID, &TagDTO{Name: "cli"})
	require.NoError(t, err)
	require.Equal(t, "cli", up.Name)
}

func TestService_DeleteClearsProjectTag(t *testing.T) {
	db := databasetest.New(t)
	svc := NewService(db)
	tg, err := svc.Create(&TagDTO{Name: "web"})
	require.NoError(t, err)

	p := models.ProjectModel{Name: "Demo", TagID: &tg.ID}
	require.NoError(t, db.Create(&p).Error)

	require.NoError(t, svc.Delete(tg.ID))
	require.ErrorIs(t, svc.Delete(tg.ID), ErrNotFound)

	var reloaded models.ProjectModel
	require.NoError(t, db.First(&reloaded, "id = ?", p.ID).Error)
	require.Nil(t, reloaded.TagID)
}

func TestHandler_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validation.Register()
	r := gin.New()
	NewHandler(NewService(databasetest.New(t)), zap.NewNop()).
		RegisterRoutes(r.Group("/api"), func(c *gin.Context) { c.Next() })

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/tags", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, http.StatusCreated, post(`{"name":"go"}`).Code)
	w := post(`{"name":"go"}`)
	require.Equal(t, http.StatusConflict, w.Code)
	require.JSONEq(t, `{"success":false,"error":"Tag already exists"}`, w.Body.String())

	w = post(`{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"success":false,"error":"name is required"}`, w.Body.String())

	w = post(`{"name":" \t "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"success":false,"error":"name is required"}`, w.Body.String())
}
