package project

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/folio-space/core/internal/database/databasetest"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content/tag"
	"github.com/folio-space/core/internal/pkg/pagination"
	"github.com/folio-space/core/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*Service, *tag.Service, *gorm.DB) {
	t.Helper()
	db := databasetest.New(t)
	tags := tag.NewService(db)
	return NewService(db, tags), tags, db
}

// seed creates projects with strictly increasing created_at.
func seed(t *testing.T, db *gorm.DB, projects ...models.ProjectModel) []models.ProjectModel {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range projects {
		projects[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, db.Create(&projects[i]).Error)
	}
	return projects
}

func names(items []models.ProjectModel) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestService_CreateFeaturedDemo(t *testing.T) {
	svc, _, _ := setup(t)

	p, err := svc.Create(&ProjectDTO{
		Name:        "Demo",
		Description: `<p>Hello</p><script>alert(1)</script>`,
		NotionLink:  "https://www.notion.so/Demo-0123456789abcdef0123456789abcdef",
		Featured:    true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.True(t, p.Featured)
	require.Equal(t, "<p>Hello</p>", p.Description)
	require.Nil(t, p.TagID)

	featured := true
	items, err := svc.List(Filter{Featured: &featured})
	require.NoError(t, err)
	require.Equal(t, []string{"Demo"}, names(items))

	notFeatured := false
	items, err = svc.List(Filter{Featured: &notFeatured})
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestService_ListOrderAndShowcase(t *testing.T) {
	svc, _, db := setup(t)
	seed(t, db,
		models.ProjectModel{Name: "a", Featured: true},
		models.ProjectModel{Name: "b"},
		models.ProjectModel{Name: "c", Featured: true},
		models.ProjectModel{Name: "d"},
	)

	items, err := svc.List(Filter{})
	require.NoError(t, err)
	require.Equal(t, []string{"d", "c", "b", "a"}, names(items))

	items, err = svc.Showcase()
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "d", "b"}, names(items))
}

func TestService_TagFilterAndValidation(t *testing.T) {
	svc, tags, _ := setup(t)
	web, err := tags.Create(&tag.TagDTO{Name: "web"})
	require.NoError(t, err)

	_, err = svc.Create(&ProjectDTO{Name: "site", TagID: &web.ID})
	require.NoError(t, err)
	_, err = svc.Create(&ProjectDTO{Name: "tool"})
	require.NoError(t, err)

	missing := "00000000-0000-0000-0000-000000000000"
	_, err = svc.Create(&ProjectDTO{Name: "ghost", TagID: &missing})
	require.ErrorIs(t, err, ErrTagNotFound)

	byName, err := svc.List(Filter{Tag: "web"})
	require.NoError(t, err)
	require.Equal(t, []string{"site"}, names(byName))
	require.NotNil(t, byName[0].Tag)
	require.Equal(t, "web", byName[0].Tag.Name)

	byID, err := svc.List(Filter{Tag: web.ID})
	require.NoError(t, err)
	require.Len(t, byID, 1)

	blank := ""
	up, err := svc.Update(byName[0].ID, &ProjectDTO{Name: "site", TagID: &blank})
	require.NoError(t, err)
	require.Nil(t, up.TagID)
	require.Nil(t, up.Tag)
}

func TestService_ListPaged(t *testing.T) {
	svc, tags, db := setup(t)
	web, err := tags.Create(&tag.TagDTO{Name: "web"})
	require.NoError(t, err)
	seed(t, db,
		models.ProjectModel{Name: "p1", TagID: &web.ID},
		models.ProjectModel{Name: "p2"},
		models.ProjectModel{Name: "p3", TagID: &web.ID},
	)

	items, p, err := svc.ListPaged(Filter{}, pagination.Query{Page: 1, Size: 2})
	require.NoError(t, err)
	require.Equal(t, []string{"p3", "p2"}, names(items))
	require.Equal(t, int64(3), p.Total)
	require.Equal(t, 2, p.TotalPage)
	require.True(t, p.HasNextPage)
	require.NotNil(t, items[0].Tag)
	require.Nil(t, items[1].Tag)

	items, p, err = svc.ListPaged(Filter{}, pagination.Query{Page: 2, Size: 2})
	require.NoError(t, err)
	require.Equal(t, []string{"p1"}, names(items))
	require.False(t, p.HasNextPage)
}

func TestService_UpdateDeleteMissing(t *testing.T) {
	svc, _, _ := setup(t)
	_, err := svc.Update("nope", &ProjectDTO{Name: "x"})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete("nope"), ErrNotFound)
}

func TestHandler_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validation.Register()
	svc, _, _ := setup(t)
	r := gin.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(r.Group("/api"), func(c *gin.Context) { c.Next() })

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := send(http.MethodPost, "/api/projects", `{"name":"Demo","featured":true}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data models.ProjectModel `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.True(t, created.Data.Featured)

	w = send(http.MethodGet, "/api/projects?featured=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"name":"Demo"`)

	w = send(http.MethodGet, "/api/projects?featured=maybe", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = send(http.MethodGet, "/api/projects/page?page=1&size=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"pagination":{"total":1`)

	w = send(http.MethodPost, "/api/projects", `{"name":"x","github_link":"ftp://host/repo"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"success":false,"error":"github_link must be an http(s) URL"}`, w.Body.String())

	w = send(http.MethodPost, "/api/projects", `{"name":"   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"success":false,"error":"name is required"}`, w.Body.String())

	w = send(http.MethodGet, "/api/projects/missing", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"success":false,"error":"Project not found"}`, w.Body.String())

	w = send(http.MethodDelete, "/api/projects/"+created.Data.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestHandler_PageUsesProjectLimits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _, _ := setup(t)
	r := gin.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(r.Group("/api"), func(c *gin.Context) { c.Next() })

	size := func(query string) int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/page"+query, nil))
		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Pagination struct {
				Size int `json:"size"`
			} `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body.Pagination.Size
	}

	require.Equal(t, PageLimits.DefaultSize, size(""))
	require.Equal(t, PageLimits.MaxSize, size("?size=1000"))
	require.Equal(t, 3, size("?size=3"))
}
