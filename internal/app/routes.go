package app

import (
	"fmt"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/modules/auth"
	"github.com/folio-space/core/internal/modules/content/education"
	"github.com/folio-space/core/internal/modules/content/experience"
	"github.com/folio-space/core/internal/modules/content/profile"
	"github.com/folio-space/core/internal/modules/content/project"
	"github.com/folio-space/core/internal/modules/content/retrospective"
	"github.com/folio-space/core/internal/modules/content/skill"
	"github.com/folio-space/core/internal/modules/content/sociallink"
	"github.com/folio-space/core/internal/modules/content/tag"
	"github.com/folio-space/core/internal/modules/content/writeup"
	"github.com/folio-space/core/internal/modules/site"
	"github.com/folio-space/core/internal/modules/storage/upload"
	"github.com/folio-space/core/internal/modules/system/crontask"
	"github.com/folio-space/core/internal/modules/system/health"
	"github.com/folio-space/core/internal/pkg/assethost"
	"github.com/folio-space/core/internal/pkg/notion"
	"github.com/folio-space/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func (a *App) registerRoutes() error {
	cfg, db, log := a.cfg, a.db, a.logger

	uploader, err := assethost.New(cfg)
	if err != nil {
		return fmt.Errorf("asset host: %w", err)
	}
	log.Info("asset host selected", zap.String("provider", uploader.Name()))

	if cfg.Metrics.Enable {
		col := middleware.NewMetricsCollector()
		reg := prometheus.NewRegistry()
		reg.MustRegister(col, collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		a.router.Use(middleware.Metrics(col))
		a.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}
	a.router.Use(middleware.AdminPages(a.sessions))

	// Optional dependencies stay untyped nil when redis is off.
	var (
		views retrospective.ViewMarker
		cache health.Pinger
	)
	if a.redis != nil {
		views, cache = a.redis, a.redis
	}

	profiles := profile.NewService(db, cfg.ProfileKey)
	retros := retrospective.NewService(db, profiles, views)
	tags := tag.NewService(db)
	projects := project.NewService(db, tags)
	writeups := writeup.NewService(projects, notion.NewClient(cfg.Notion))

	authMW := middleware.Auth(a.sessions)
	api := a.router.Group("/api")

	health.RegisterRoutes(api, db, cache, log)
	crontask.NewHandler(a.sched, log).RegisterRoutes(api, authMW)
	auth.NewHandler(auth.NewService(cfg.Admin, a.sessions), a.sessions, cfg.IsProduction(), log).RegisterRoutes(api)

	profile.NewHandler(profiles, log).RegisterRoutes(api, authMW)
	skill.NewHandler(skill.NewService(db, profiles), log).RegisterRoutes(api, authMW)
	experience.NewHandler(experience.NewService(db, profiles), log).RegisterRoutes(api, authMW)
	education.NewHandler(education.NewService(db, profiles), log).RegisterRoutes(api, authMW)
	sociallink.NewHandler(sociallink.NewService(db, profiles), log).RegisterRoutes(api, authMW)
	retrospective.NewHandler(retros, log).RegisterRoutes(api, authMW)
	project.NewHandler(projects, log).RegisterRoutes(api, authMW)
	tag.NewHandler(tags, log).RegisterRoutes(api, authMW)
	writeup.NewHandler(writeups, log).RegisterRoutes(api)
	upload.NewHandler(uploader, cfg.UploadLimitBytes(), cfg.Upload.JPEGQuality, log).RegisterRoutes(api, authMW)

	site.NewHandler(site.Deps{
		Profiles:       profiles,
		Projects:       projects,
		Retrospectives: retros,
		Tags:           tags,
		Writeups:       writeups,
		Jobs:           a.sched,
	}, log).RegisterRoutes(a.router)

	a.router.NoRoute(func(c *gin.Context) { response.NotFound(c) })
	return nil
}
