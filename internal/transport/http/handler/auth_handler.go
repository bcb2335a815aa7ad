package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"automarket/internal/domain"
	"automarket/internal/feature/user"
	"automarket/internal/transport/http/ez"
)

type AuthHandler struct {
	svc    AuthService
	guards Guards
}

func NewAuthHandler(svc AuthService, g Guards) *AuthHandler {
	return &AuthHandler{svc: svc, guards: g}
}

func (h *AuthHandler) Priority() int { return 10 }

// publicUser 注册/登录响应里的用户字段（不含 role）
func publicUser(u *domain.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"phone":      u.Phone,
		"created_at": u.CreatedAt,
	}
}

// MountAPI /api/auth/register|login|me
func (h *AuthHandler) MountAPI(api *gin.RouterGroup) {
	g := api.Group("/auth")

	ez.RegisterAction(g, ez.Action[user.RegisterInput, gin.H]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *user.RegisterInput) (gin.H, error) {
			s, err := h.svc.Register(c.Request.Context(), *in)
			if err != nil {
				return nil, err
			}
			return gin.H{"message": "User registered successfully", "token": s.Token, "user": publicUser(s.User)}, nil
		},
	})

	ez.RegisterAction(g, ez.Action[user.LoginInput, gin.H]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *user.LoginInput) (gin.H, error) {
			s, err := h.svc.Login(c.Request.Context(), *in)
			if err != nil {
				return nil, err
			}
			return gin.H{"message": "Logged in successfully", "token": s.Token, "user": publicUser(s.User)}, nil
		},
	})

	ez.RegisterAction(g.Group("", h.guards.Auth), ez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			u, err := h.svc.Me(c.Request.Context(), ez.MustUserID(c))
			if err != nil {
				return nil, err
			}
			return gin.H{"user": u}, nil
		},
	})
}
