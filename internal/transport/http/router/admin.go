package router

import (
	"github.com/gin-gonic/gin"

	mdw "automarket/internal/transport/http/middleware"
)

// NewAdminEngine 后台端：只挂 /api/admin，供内网单独部署
func NewAdminEngine(d Deps) *gin.Engine {
	r := base(d, d.App.Admin.Port)
	r.GET("/metrics", mdw.MetricsHandler())

	r.GET("/api/health", apiHealth)

	admin := r.Group("/api/admin")
	admin.Use(d.Guards.Auth, d.Guards.Admin)
	d.Modules.MountAdmin(admin)
	return r
}
