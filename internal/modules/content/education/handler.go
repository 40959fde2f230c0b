package education

import (
	"errors"

	"github.com/folio-space/core/internal/modules/content/profile"
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
	g := rg.Group("/educations")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	authed := g.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.DELETE("/:id", h.delete)
}

func (h *Handler) fail(c *gin.Context, verb string, err error) {
	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		response.BadRequest(c, "Profile not found")
	case errors.Is(err, ErrInvalidDate):
		response.BadRequest(c, "Invalid date")
	case errors.Is(err, ErrInvalidRange):
		response.BadRequest(c, "end_date must not be before start_date")
	case errors.Is(err, ErrNotFound):
		response.NotFoundMsg(c, "Education not found")
	default:
		h.log.Error(verb+" education", zap.String("id", c.Param("id")), zap.Error(err))
		response.InternalError(c, "Failed to "+verb+" education")
	}
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Query("profile_id"))
	if err != nil {
		h.fail(c, "fetch", err)
		return
	}
	response.OK(c, items)
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
	var dto EducationDTO
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
	var dto EducationDTO
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
