package profile

import (
	"errors"

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
	g := rg.Group("/profile")
	g.GET("", h.getSingleton)
	g.GET("/:id", h.getByID)

	authed := g.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
}

func (h *Handler) getSingleton(c *gin.Context) {
	p, err := h.svc.GetSingleton()
	if err != nil {
		h.log.Error("fetch profile", zap.Error(err))
		response.InternalError(c, "Failed to fetch profile")
		return
	}
	if p == nil {
		response.NotFoundMsg(c, "Profile not found")
		return
	}
	response.OK(c, p)
}

func (h *Handler) getByID(c *gin.Context) {
	p, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		h.log.Error("fetch profile", zap.String("id", c.Param("id")), zap.Error(err))
		response.InternalError(c, "Failed to fetch profile")
		return
	}
	if p == nil {
		response.NotFoundMsg(c, "Profile not found")
		return
	}
	response.OK(c, p)
}

func (h *Handler) create(c *gin.Context) {
	var dto ProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err))
		return
	}
	p, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, ErrKeyTaken) {
			response.Conflict(c, "Profile already exists")
			return
		}
		h.log.Error("create profile", zap.Error(err))
		response.InternalError(c, "Failed to create profile")
		return
	}
	response.Created(c, p)
}

func (h *Handler) update(c *gin.Context) {
	var dto ProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, validation.Message(err))
		return
	}
	p, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		if errors.Is(err, ErrKeyTaken) {
			response.Conflict(c, "Profile already exists")
			return
		}
		h.log.Error("update profile", zap.String("id", c.Param("id")), zap.Error(err))
		response.InternalError(c, "Failed to update profile")
		return
	}
	if p == nil {
		response.NotFoundMsg(c, "Profile not found")
		return
	}
	response.OK(c, p)
}
