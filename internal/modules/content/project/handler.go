package project

import (
	"errors"
	"strconv"

	"github.com/folio-space/core/internal/pkg/pagination"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/folio-space/core/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/projects")
	g.GET("", h.list)
	g.GET("/page", h.page)
	g.GET("/:id", h.get)

	authed := g.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.DELETE("/:id", h.delete)
}

func (h *Handler) fail(c *gin.Context, verb string, err error) {
	switch {
	case errors.Is(err, ErrTagNotFound):
		response.BadRequest(c, "Tag not found")
	case errors.Is(err, ErrNotFound):
		response.NotFoundMsg(c, "Project not found")
	default:
		h.log.Error(verb+" project", zap.String("id", c.Param("id")), zap.Error(err))
		response.InternalError(c, "Failed to "+verb+" project")
	}
}

func filterFrom(c *gin.Context) (Filter, bool) {
	f := Filter{Tag: c.Query("tag")}
	if raw := c.Query("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, false
		}
		f.Featured = &v
	}
	return f, true
}

func (h *Handler) list(c *gin.Context) {
	f, ok := filterFrom(c)
	if !ok {
		response.BadRequest(c, "featured must be true or false")
		return
	}
	items, err := h.svc.List(f)
	if err != nil {
		h.fail(c, "fetch", err)
		return
	}
	response.OK(c, items)
}

// PageLimits sizes the project grid: four rows of three by default.
var PageLimits = pagination.Limits{DefaultSize: 12, MaxSize: 48}

func (h *Handler) page(c *gin.Context) {
	f, ok := filterFrom(c)
	if !ok {
		response.BadRequest(c, "featured must be true or false")
		return
	}
	items, p, err := h.svc.ListPaged(f, PageLimits.FromContext(c))
	if err != nil {
		h.fail(c, "fetch", err)
		return
	}
	response.Paged(c, items, p)
}

func (h *Handler) get(c *gin.Context) {
	item, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		h.fail(c, "fetch", err)
		return
	}
	if item == nil {
		h.fail(c, "fetch", ErrNotFound)
		return
	}
	response.OK(c, item)
}

func (h *Handler) create(c *gin.Context) {
	var dto ProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err))
		return
	}
	item, err := h.svc.Create(&dto)
	if err != nil {
		h.fail(c, "create", err)
		return
	}
	response.Created(c, item)
}

func (h *Handler) update(c *gin.Context) {
	var dto ProjectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err))
		return
	}
	item, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		h.fail(c, "update", err)
		return
	}
	response.OK(c, item)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		h.fail(c, "delete", err)
		return
	}
	response.Success(c)
}
