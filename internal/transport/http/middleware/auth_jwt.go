package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"automarket/internal/core/auth"
	resp "automarket/internal/transport/http/response"
)

const (
	CtxUserID = "userId"
	CtxEmail  = "email"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// RoleChecker 每次请求回库确认角色
type RoleChecker interface {
	IsAdmin(ctx context.Context, uid uint) (bool, error)
}

// AuthJWT 校验 Bearer token，把 userId/email 放进上下文
func AuthJWT(p TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		tok, ok := strings.CutPrefix(ah, "Bearer ")
		if !ok || strings.TrimSpace(tok) == "" {
			resp.Abort(c, 401, "Access token required.")
			return
		}
		claims, err := p.Parse(strings.TrimSpace(tok))
		if err != nil || claims.UserID == 0 {
			resp.Abort(c, 401, "Invalid or expired token.")
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxEmail, claims.Email)
		c.Next()
	}
}

// RequireAdmin 必须挂在 AuthJWT 之后
func RequireAdmin(rc RoleChecker, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := UserID(c)
		if !ok {
			resp.Abort(c, 401, "Access token required.")
			return
		}
		admin, err := rc.IsAdmin(c.Request.Context(), uid)
		if err != nil {
			l.Error("admin guard", zap.Uint("uid", uid), zap.Error(err))
			resp.Abort(c, 500, "Failed to verify admin role.")
			return
		}
		if !admin {
			resp.Abort(c, 403, "Admin access required.")
			return
		}
		c.Next()
	}
}

func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return 0, false
	}
	uid, ok := v.(uint)
	return uid, ok && uid != 0
}
