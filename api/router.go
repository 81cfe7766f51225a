package api

import (
	"log/slog"
	"time"

	"github.com/Dr-42/isogit/calculate"
	"github.com/Dr-42/isogit/core"
	"github.com/Dr-42/isogit/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Dependencies are the long-lived objects the router's handlers share.
type Dependencies struct {
	Providers *core.ProviderManager
	Config    *core.ConfigManager
	Log       *slog.Logger
}

func NewRouter(deps Dependencies) *gin.Engine {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), otelgin.Middleware(telemetry.ServiceName()), RequestID(), RequestLogger(log))

	staticHandler := NewStaticHandler(log)
	repoHandler := NewRepoHandler(calculate.NewInitService(deps.Providers, log), log)
	historyHandler := NewHistoryHandler(
		calculate.NewHistoryService(deps.Providers, log),
		func() time.Duration { return deps.Providers.Config().ListTimeout() },
		log,
	)
	configHandler := NewConfigHandler(calculate.NewConfigService(deps.Config, deps.Providers), log)

	r.GET("/", staticHandler.Asset("index.html", "text/html; charset=utf-8"))
	r.GET("/index.css", staticHandler.Asset("index.css", "text/css"))
	r.GET("/index.js", staticHandler.Asset("index.js", "text/javascript"))
	r.GET("/images/logo.png", staticHandler.Asset("images/logo.png", "image/x-icon"))

	internal := r.Group("/internal")
	{
		internal.GET("/repolist", repoHandler.RepoList)
		internal.POST("/addrepo", repoHandler.AddRepo)
		internal.GET("/filelist", historyHandler.FileList)
		internal.POST("/config/storage", configHandler.UpdateStoragePath)
	}

	return r
}
