package writeup

import (
	"errors"

	"github.com/folio-space/core/internal/pkg/response"
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects/:id/writeup", h.get)
}

func (h *Handler) get(c *gin.Context) {
	w, err := h.svc.Load(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		if w.Truncated {
			h.log.Warn("notion writeup truncated", zap.String("project", w.ProjectID), zap.String("page", w.PageID))
		}
		response.OK(c, w)
	case errors.Is(err, ErrProjectNotFound):
		response.NotFoundMsg(c, "Project not found")
	case errors.Is(err, ErrNoPage):
		response.NotFoundMsg(c, "No Notion page linked")
	case errors.Is(err, ErrUpstream):
		h.log.Warn("load notion writeup", zap.String("project", c.Param("id")), zap.Error(err))
		response.BadGateway(c, "Failed to load Notion content")
	default:
		h.log.Error("load notion writeup", zap.String("project", c.Param("id")), zap.Error(err))
		response.InternalError(c, "Failed to fetch project")
	}
}
