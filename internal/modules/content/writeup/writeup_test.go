package writeup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/pkg/notion"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeProjects map[string]*models.ProjectModel

func (f fakeProjects) GetByID(id string) (*models.ProjectModel, error) { return f[id], nil }

type fakeBlocks struct {
	blocks    []notion.Block
	truncated bool
	err       error
	asked     string
}

func (f *fakeBlocks) FetchBlocks(_ context.Context, pageID string) (*notion.Page, error) {
	f.asked = pageID
	if f.err != nil {
		return nil, f.err
	}
	return &notion.Page{Blocks: f.blocks, Truncated: f.truncated}, nil
}

func paragraph(text string) notion.Block {
	return notion.Block{Type: "paragraph", Content: notion.Content{RichText: []notion.RichText{{PlainText: text}}}}
}

func projects() fakeProjects {
	return fakeProjects{
		"p1": {Base: models.Base{ID: "p1"}, NotionLink: "https://www.notion.so/Demo-0123456789ABCDEF0123456789abcdef?pvs=4"},
		"p2": {Base: models.Base{ID: "p2"}, NotionLink: ""},
	}
}

func TestService_Load(t *testing.T) {
	blocks := &fakeBlocks{blocks: []notion.Block{paragraph("Hello")}}
	svc := NewService(projects(), blocks)

	w, err := svc.Load(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, "0123456789abcdef0123456789abcdef", w.PageID)
	require.Equal(t, w.PageID, blocks.asked)
	require.Contains(t, w.HTML, "<p>Hello</p>")

	_, err = svc.Load(context.Background(), "p2")
	require.ErrorIs(t, err, ErrNoPage)

	_, err = svc.Load(context.Background(), "nope")
	require.ErrorIs(t, err, ErrProjectNotFound)

	blocks.err = errors.New("boom")
	_, err = svc.Load(context.Background(), "p1")
	require.ErrorIs(t, err, ErrUpstream)
}

func TestHandler_StatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	blocks := &fakeBlocks{blocks: []notion.Block{paragraph("Hi")}}
	r := gin.New()
	NewHandler(NewService(projects(), blocks), zap.NewNop()).RegisterRoutes(r.Group("/api"))

	get := func(id string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/"+id+"/writeup", nil))
		return w
	}

	w := get("p1")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"page_id":"0123456789abcdef0123456789abcdef"`)
	require.Contains(t, w.Body.String(), `"project_id":"p1"`)

	w = get("p2")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"success":false,"error":"No Notion page linked"}`, w.Body.String())

	w = get("zzz")
	require.JSONEq(t, `{"success":false,"error":"Project not found"}`, w.Body.String())

	blocks.err = notion.ErrNotFound
	w = get("p1")
	require.Equal(t, http.StatusBadGateway, w.Code)
	require.JSONEq(t, `{"success":false,"error":"Failed to load Notion content"}`, w.Body.String())
}

func TestHandler_TruncatedWriteupIsFlaggedAndLogged(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.WarnLevel)
	blocks := &fakeBlocks{blocks: []notion.Block{paragraph("Long")}, truncated: true}
	r := gin.New()
	NewHandler(NewService(projects(), blocks), zap.New(core)).RegisterRoutes(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/p1/writeup", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"truncated":true`)
	require.Equal(t, 1, logs.FilterMessage("notion writeup truncated").Len())
}
