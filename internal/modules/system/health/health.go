package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const pingTimeout = 2 * time.Second

// Pinger is an optional dependency checked by the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes mounts GET /health. cache may be nil when redis is not configured.
func RegisterRoutes(rg *gin.RouterGroup, db *gorm.DB, cache Pinger, log *zap.Logger) {
	rg.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		dbOK := false
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.PingContext(ctx); err == nil {
				dbOK = true
			} else {
				log.Warn("health: database ping failed", zap.Error(err))
			}
		}

		redisState := "disabled"
		if cache != nil {
			redisState = "ok"
			if err := cache.Ping(ctx); err != nil {
				log.Warn("health: redis ping failed", zap.Error(err))
				redisState = "unavailable"
			}
		}

		status := "ok"
		code := http.StatusOK
		if !dbOK {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbOK,
			"redis":    redisState,
		})
	})
}
