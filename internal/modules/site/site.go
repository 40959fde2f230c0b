// Package site serves the server-rendered public pages and the admin dashboard.
package site

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/models"
	"github.com/folio-space/core/internal/modules/content/writeup"
	pkgcron "github.com/folio-space/core/internal/pkg/cron"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("site").Funcs(template.FuncMap{
	"rich":      func(s string) template.HTML { return template.HTML(s) },
	"monthYear": func(t time.Time) string { return t.Format("Jan 2006") },
	"until": func(t *time.Time) string {
		if t == nil {
			return "Present"
		}
		return t.Format("Jan 2006")
	},
	"isoDate": isoDate,
	"isoDateOpt": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return isoDate(*t)
	},
	"lines": func(v []string) string { return strings.Join(v, "\n") },
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"dict": func(kv ...interface{}) (map[string]interface{}, error) {
		if len(kv)%2 != 0 {
			return nil, errors.New("dict: odd number of arguments")
		}
		m := make(map[string]interface{}, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			k, ok := kv[i].(string)
			if !ok {
				return nil, errors.New("dict: key is not a string")
			}
			m[k] = kv[i+1]
		}
		return m, nil
	},
}).ParseFS(templateFS, "templates/*.html"))

type ProfileReader interface {
	GetSingleton() (*models.ProfileModel, error)
}

type ProjectReader interface {
	Showcase() ([]models.ProjectModel, error)
	GetByID(id string) (*models.ProjectModel, error)
}

type RetrospectiveReader interface {
	List(profileID string) ([]models.RetrospectiveModel, error)
}

type TagReader interface {
	List() ([]models.TagModel, error)
}

type WriteupLoader interface {
	Load(ctx context.Context, projectID string) (*writeup.Writeup, error)
}

type JobLister interface {
	List() []pkgcron.Snapshot
}

type Deps struct {
	Profiles       ProfileReader
	Projects       ProjectReader
	Retrospectives RetrospectiveReader
	Tags           TagReader
	Writeups       WriteupLoader
	Jobs           JobLister
}

func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// blankForms seeds the "add" forms on the dashboard.
type blankForms struct {
	Skill         models.SkillModel
	Experience    models.ExperienceModel
	Education     models.EducationModel
	SocialLink    models.SocialLinkModel
	Retrospective models.RetrospectiveModel
	Project       models.ProjectModel
}

type Handler struct {
	deps Deps
	log  *zap.Logger
}

func NewHandler(deps Deps, log *zap.Logger) *Handler {
	return &Handler{deps: deps, log: log}
}

// RegisterRoutes mounts the pages on the engine root. /admin is guarded by
// middleware.AdminPages installed globally.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.home)
	r.GET("/about", h.home)
	r.GET("/projects", h.projects)
	r.GET("/notion/:projectId", h.notion)
	r.GET("/retrospectives", h.retrospectives)
	r.GET(middleware.AdminLoginPath, h.login)
	r.GET(middleware.AdminPrefix, h.dashboard)
}

type endpoint struct {
	Method string
	Path   string
	Admin  bool
}

var apiEndpoints = []endpoint{
	{"GET", "/api/profile", false},
	{"POST", "/api/profile", true},
	{"PUT", "/api/profile/:id", true},
	{"GET", "/api/skills", false},
	{"POST", "/api/skills", true},
	{"PUT", "/api/skills/:id", true},
	{"DELETE", "/api/skills/:id", true},
	{"GET", "/api/experiences", false},
	{"POST", "/api/experiences", true},
	{"PUT", "/api/experiences/:id", true},
	{"DELETE", "/api/experiences/:id", true},
	{"GET", "/api/educations", false},
	{"POST", "/api/educations", true},
	{"PUT", "/api/educations/:id", true},
	{"DELETE", "/api/educations/:id", true},
	{"GET", "/api/social-links", false},
	{"POST", "/api/social-links", true},
	{"PUT", "/api/social-links/:id", true},
	{"DELETE", "/api/social-links/:id", true},
	{"GET", "/api/retrospectives", false},
	{"POST", "/api/retrospectives/:id/view", false},
	{"POST", "/api/retrospectives", true},
	{"PUT", "/api/retrospectives/:id", true},
	{"DELETE", "/api/retrospectives/:id", true},
	{"GET", "/api/projects", false},
	{"GET", "/api/projects/page", false},
	{"GET", "/api/projects/:id/writeup", false},
	{"POST", "/api/projects", true},
	{"PUT", "/api/projects/:id", true},
	{"DELETE", "/api/projects/:id", true},
	{"GET", "/api/tags", false},
	{"POST", "/api/tags", true},
	{"PUT", "/api/tags/:id", true},
	{"DELETE", "/api/tags/:id", true},
	{"POST", "/api/uploads", true},
	{"POST", "/api/uploads/preview", true},
	{"POST", "/api/auth/login", false},
	{"GET", "/api/auth/check", false},
	{"POST", "/api/auth/logout", false},
	{"GET", "/api/health", false},
	{"GET", "/api/cron", true},
	{"POST", "/api/cron/:name/run", true},
}

func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := pages.ExecuteTemplate(c.Writer, name, data); err != nil {
		h.log.Error("render page", zap.String("page", name), zap.Error(err))
	}
}

func (h *Handler) failPage(c *gin.Context, what string, err error) {
	h.log.Error("load "+what, zap.String("path", c.Request.URL.Path), zap.Error(err))
	h.render(c, http.StatusInternalServerError, "message.html", gin.H{
		"Title":   "Something went wrong",
		"Message": "Failed to load " + what + ".",
	})
}

func (h *Handler) home(c *gin.Context) {
	p, err := h.deps.Profiles.GetSingleton()
	if err != nil {
		h.failPage(c, "profile", err)
		return
	}
	h.render(c, http.StatusOK, "home.html", gin.H{"Title": "About", "Profile": p})
}

func (h *Handler) projects(c *gin.Context) {
	items, err := h.deps.Projects.Showcase()
	if err != nil {
		h.failPage(c, "projects", err)
		return
	}
	h.render(c, http.StatusOK, "projects.html", gin.H{"Title": "Projects", "Projects": items})
}

func (h *Handler) notion(c *gin.Context) {
	id := c.Param("projectId")
	p, err := h.deps.Projects.GetByID(id)
	if err != nil {
		h.failPage(c, "project", err)
		return
	}
	if p == nil {
		h.render(c, http.StatusNotFound, "message.html", gin.H{"Title": "Not found", "Message": "Project not found."})
		return
	}

	data := gin.H{"Title": p.Name, "Project": p}
	status := http.StatusOK
	w, err := h.deps.Writeups.Load(c.Request.Context(), id)
	switch {
	case err == nil:
		data["HTML"] = template.HTML(w.HTML)
	case errors.Is(err, writeup.ErrNoPage):
		data["Notice"] = "No Notion page linked."
	case errors.Is(err, writeup.ErrUpstream):
		h.log.Warn("load notion writeup", zap.String("project", id), zap.Error(err))
		data["Notice"] = "Failed to load Notion content."
		status = http.StatusBadGateway
	default:
		h.failPage(c, "project", err)
		return
	}
	h.render(c, status, "notion.html", data)
}

func (h *Handler) retrospectives(c *gin.Context) {
	items, err := h.deps.Retrospectives.List("")
	if err != nil {
		h.failPage(c, "retrospectives", err)
		return
	}
	h.render(c, http.StatusOK, "retrospectives.html", gin.H{"Title": "Retrospectives", "Items": items})
}

func (h *Handler) login(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Title": "Admin login"})
}

func (h *Handler) dashboard(c *gin.Context) {
	p, err := h.deps.Profiles.GetSingleton()
	if err != nil {
		h.failPage(c, "profile", err)
		return
	}
	projects, err := h.deps.Projects.Showcase()
	if err != nil {
		h.failPage(c, "projects", err)
		return
	}
	tags, err := h.deps.Tags.List()
	if err != nil {
		h.failPage(c, "tags", err)
		return
	}
	form := p
	if form == nil {
		form = &models.ProfileModel{}
	}
	var jobs []pkgcron.Snapshot
	if h.deps.Jobs != nil {
		jobs = h.deps.Jobs.List()
	}
	h.render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":       "Dashboard",
		"Profile":     p,
		"ProfileForm": form,
		"Projects":    projects,
		"Tags":        tags,
		"Jobs":        jobs,
		"Blank":       blankForms{},
		"Endpoints":   apiEndpoints,
	})
}
