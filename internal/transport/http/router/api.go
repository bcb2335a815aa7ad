package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"automarket/internal/core/config"
	"automarket/internal/core/server"
	"automarket/internal/transport/http/ez"
	"automarket/internal/transport/http/handler"
	mdw "automarket/internal/transport/http/middleware"
	resp "automarket/internal/transport/http/response"
)

// Deps 两个引擎共用的依赖
type Deps struct {
	Log     *zap.Logger
	App     config.App
	Guards  handler.Guards
	Modules *Registry
	// Tracing 非空时挂 otelgin，值为 service name
	Tracing string
	// ImageDir 本地存储目录；为空表示图片不由本进程托管
	ImageDir string
}

// base 公共中间件 + /health + 404 兜底
func base(d Deps, port int) *gin.Engine {
	resp.SetDebug(d.App.Debug())
	ez.RegisterValidators()

	lim := d.App.Limits
	r := server.NewRouter()
	r.Use(
		mdw.RequestID(),
		mdw.SecurityHeaders(),
		mdw.CORS(d.App.CORS, port),
	)
	if d.Tracing != "" {
		r.Use(otelgin.Middleware(d.Tracing))
	}
	r.Use(
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		mdw.Recovery(d.Log),
		mdw.RateLimitPerIP(rate.Limit(lim.RateRPS), lim.RateBurst),
		mdw.ConcurrencyLimit(lim.MaxInFlight),
		mdw.MaxBodyBytes(lim.MaxBodyMB<<20),
		mdw.Timeout(time.Duration(lim.RequestTimeoutSec)*time.Second),
	)

	notFound := func(c *gin.Context) { resp.Abort(c, http.StatusNotFound, resp.MsgRouteNotFound) }
	r.NoRoute(notFound)
	r.NoMethod(notFound)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339Nano)})
	})
	return r
}

func apiHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "AutoMarket API is running!"})
}

// NewAPIEngine 用户端：全部 /api 路由 + /api/admin + 静态图片 + /metrics
func NewAPIEngine(d Deps) *gin.Engine {
	r := base(d, d.App.HTTP.Port)
	r.GET("/metrics", mdw.MetricsHandler())
	if d.ImageDir != "" {
		r.Static("/images", d.ImageDir)
	}

	api := r.Group("/api")
	api.GET("/health", apiHealth)
	d.Modules.MountAPI(api)
	d.Modules.MountAdmin(api.Group("/admin", d.Guards.Auth, d.Guards.Admin))
	return r
}
