package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/folio-space/core/internal/config"
	"github.com/folio-space/core/internal/database"
	"github.com/folio-space/core/internal/middleware"
	pkgcron "github.com/folio-space/core/internal/pkg/cron"
	jwtpkg "github.com/folio-space/core/internal/pkg/jwt"
	pkgredis "github.com/folio-space/core/internal/pkg/redis"
	"github.com/folio-space/core/internal/pkg/session"
	"github.com/folio-space/core/internal/pkg/validation"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionPruneInterval = time.Hour

// App holds all application dependencies.
type App struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	db       *gorm.DB
	redis    *pkgredis.Client
	sessions *session.Store
	sched    *pkgcron.Scheduler
	logger   *zap.Logger
	cancel   context.CancelFunc
}

// New initializes the application: config → DB → Redis → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := applyTimezone(cfg.Timezone); err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	var rc *pkgredis.Client
	if cfg.Redis.Enabled() {
		rc, err = pkgredis.Connect(cfg.Redis.URLValue())
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	return build(logger, cfg, db, rc)
}

// build wires routes around already opened stores. rc may be nil.
func build(logger *zap.Logger, cfg *config.AppConfig, db *gorm.DB, rc *pkgredis.Client) (*App, error) {
	secret := strings.TrimSpace(cfg.Admin.SessionSecret)
	if secret == "" {
		secret = randomSecret()
		logger.Warn("admin.session_secret is empty, using an ephemeral secret; sessions end on restart")
	}
	if cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		logger.Warn("no admin password configured, admin login is disabled")
	}
	validation.Register()

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	sessions := session.NewStore(db, jwtpkg.NewSigner(secret), cfg.Admin.SessionTTL)
	ctx, cancel := context.WithCancel(context.Background())

	sched := pkgcron.New(logger.Named("cron"))
	sched.Register(pkgcron.Job{
		Name:     "prune_admin_sessions",
		Interval: sessionPruneInterval,
		Fn: func(context.Context) error {
			n, err := sessions.Prune()
			if err == nil && n > 0 {
				logger.Info("pruned admin sessions", zap.Int64("count", n))
			}
			return err
		},
	})
	sched.Start(ctx)

	a := &App{
		cfg:      cfg,
		router:   router,
		db:       db,
		redis:    rc,
		sessions: sessions,
		sched:    sched,
		logger:   logger,
		cancel:   cancel,
	}
	if err := a.registerRoutes(); err != nil {
		cancel()
		return nil, err
	}
	return a, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background jobs and closes the stores.
func (a *App) Shutdown() {
	a.cancel()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", zap.Error(err))
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.logger.Warn("close database", zap.Error(err))
		}
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
