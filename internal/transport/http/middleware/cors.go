package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"automarket/internal/core/config"
)

// CORS 白名单 + 同端口的本机来源；AllowAll 时放行任意来源（仍携带凭据）
func CORS(c config.CORS, port int) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(c.Origins))
	for _, o := range c.Origins {
		allowed[strings.TrimRight(strings.TrimSpace(o), "/")] = struct{}{}
	}
	self := []string{fmt.Sprintf("localhost:%d", port), fmt.Sprintf("127.0.0.1:%d", port)}

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if c.AllowAll {
				return true
			}
			if _, ok := allowed[origin]; ok {
				return true
			}
			for _, s := range self {
				if strings.Contains(origin, s) {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
