package middleware

import (
	"fmt"
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "automarket/internal/transport/http/response"
)

// Recovery panic 兜底：记录堆栈，返回通用 500
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return ginzap.CustomRecoveryWithZap(l, true, func(c *gin.Context, rec any) {
		b := resp.Body{Error: resp.MsgPanic, Message: "Internal server error"}
		if resp.Debug() {
			b.Message = fmt.Sprint(rec)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, b)
	})
}
