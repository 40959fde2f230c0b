// Package crontask exposes the maintenance scheduler to the admin.
package crontask

import (
	"context"
	"errors"

	"github.com/folio-space/core/internal/middleware"
	pkgcron "github.com/folio-space/core/internal/pkg/cron"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Scheduler is the part of pkg/cron the handler needs.
type Scheduler interface {
	List() []pkgcron.Snapshot
	Run(ctx context.Context, name string) (pkgcron.Snapshot, error)
}

type Handler struct {
	sched Scheduler
	log   *zap.Logger
}

func NewHandler(sched Scheduler, log *zap.Logger) *Handler {
	return &Handler{sched: sched, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/cron", authMW)
	g.GET("", h.list)
	g.POST("/:name/run", h.run)
}

// GET /cron
func (h *Handler) list(c *gin.Context) {
	response.OK(c, h.sched.List())
}

// POST /cron/:name/run
func (h *Handler) run(c *gin.Context) {
	snap, err := h.sched.Run(c.Request.Context(), c.Param("name"))
	if errors.Is(err, pkgcron.ErrJobNotFound) {
		response.NotFoundMsg(c, "Job not found")
		return
	}
	if err != nil {
		h.log.Error("run cron job", zap.String("job", c.Param("name")), zap.Error(err))
		response.InternalError(c, "Failed to run job")
		return
	}
	h.log.Info("cron job triggered",
		zap.String("job", snap.Name),
		zap.String("status", string(snap.Status)),
		zap.String("session", middleware.CurrentSessionID(c)),
	)
	response.OK(c, snap)
}
