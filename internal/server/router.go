package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"evodex/internal/config"
	"evodex/internal/dex"
	"evodex/internal/metrics"
	"evodex/internal/middleware"
	"evodex/internal/record"
	synchub "evodex/internal/sync"
	"evodex/pkg/logger"
)

type RouterConfig struct {
	Index   *dex.Index
	Records *record.Service
	Hub     *synchub.Hub
	Metrics *metrics.Metrics
	Log     *logger.Logger
	CORS    config.CORSConfig
	// TrustedProxies is a comma-separated list; empty trusts none.
	TrustedProxies string
	// StoreDriver is reported by /health.
	StoreDriver string
	// ServiceName labels request spans. TracerProvider defaults to the
	// global one.
	ServiceName    string
	TracerProvider trace.TracerProvider
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	// Route on the escaped path so an encoded "/" stays inside :slug.
	router.UseRawPath = true
	_ = router.SetTrustedProxies(config.SplitList(cfg.TrustedProxies))

	var traceOpts []otelgin.Option
	if cfg.TracerProvider != nil {
		traceOpts = append(traceOpts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "evodex"
	}

	router.Use(
		gin.Recovery(),
		otelgin.Middleware(serviceName, traceOpts...),
		middleware.RequestID(),
		middleware.Logger(cfg.Log),
		middleware.CORS(cfg.CORS),
		cfg.Metrics.Middleware(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"entries": cfg.Index.Len(),
			"store":   cfg.StoreDriver,
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := cfg.Hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := cfg.Records.Ready(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"store_error": err.Error(),
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"store":      "ok",
			"ws_clients": stats.WSClients,
		})
	})

	router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	router.GET("/ws", synchub.WSHandler(cfg.Hub, cfg.Log))

	dex.NewHandler(cfg.Index, cfg.Metrics).RegisterRoutes(router.Group("/dex"))
	record.NewHandler(cfg.Records, cfg.Metrics).RegisterRoutes(router.Group("/users"))

	return router
}
