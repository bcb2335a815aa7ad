package response

import (
	"sync/atomic"

	"github.com/gin-gonic/gin"

	"automarket/internal/core/errs"
)

const (
	MsgRouteNotFound = "Route not found"
	MsgPanic         = "Something went wrong!"
)

// Body 错误响应；Message 只在开发环境携带底层原因
type Body struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

var debug atomic.Bool

// SetDebug 开发环境下 500 响应回显底层错误
func SetDebug(on bool) { debug.Store(on) }

func Debug() bool { return debug.Load() }

// Fail 按错误分类写状态码与 {error} 包体，并中止后续 handler
func Fail(c *gin.Context, err error) {
	status := StatusOf(err)
	b := Body{Error: errs.Message(err)}
	if status >= 500 && debug.Load() {
		b.Message = errs.Cause(err).Error()
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, b)
}

// Abort 直接给出状态码与文案，用于中间件
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Body{Error: msg})
}
