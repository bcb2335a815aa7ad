package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"automarket/internal/core/errs"
	"automarket/internal/domain"
	"automarket/internal/feature/listing"
	"automarket/internal/feature/user"
	"automarket/internal/transport/http/ez"
)

// AdminHandler /api/admin/*；分组上已挂 Auth + Admin
type AdminHandler struct {
	svc AdminService
}

func NewAdminHandler(svc AdminService) *AdminHandler { return &AdminHandler{svc: svc} }

type adminListingsQuery struct {
	Status string `form:"status" binding:"omitempty,listing_status"`
}

func categoryParam(c *gin.Context) (domain.Category, error) {
	cat, ok := domain.ParseCategory(c.Param("category"))
	if !ok {
		return "", errs.Validation("Invalid category.")
	}
	return cat, nil
}

func (h *AdminHandler) MountAdmin(admin *gin.RouterGroup) {
	// --- 用户 ---
	ez.RegisterAction(admin, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet, Path: "/users", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			us, err := h.svc.Users(c.Request.Context())
			if err != nil {
				return nil, err
			}
			return gin.H{"users": us}, nil
		},
	})

	ez.RegisterAction(admin, ez.Action[user.RoleInput, gin.H]{
		Method: http.MethodPut, Path: "/users/:id/role", Binder: ez.BindJSON, Auth: true,
		Handler: func(c *gin.Context, in *user.RoleInput) (gin.H, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			u, err := h.svc.SetRole(c.Request.Context(), id, in.Role)
			if err != nil {
				return nil, err
			}
			return gin.H{"user": u}, nil
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete, Path: "/users/:id", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"message": "User deleted."}, nil
		},
	})

	// --- 跨分类在售 ---
	ez.RegisterAction(admin, ez.Action[adminListingsQuery, gin.H]{
		Method: http.MethodGet, Path: "/listings", Binder: ez.BindQuery, Auth: true,
		Handler: func(c *gin.Context, in *adminListingsQuery) (gin.H, error) {
			rows, err := h.svc.Listings(c.Request.Context(), "", in.Status)
			if err != nil {
				return nil, err
			}
			return gin.H{"listings": rows}, nil
		},
	})

	ez.RegisterAction(admin, ez.Action[adminListingsQuery, gin.H]{
		Method: http.MethodGet, Path: "/listings/:category", Binder: ez.BindQuery, Auth: true,
		Handler: func(c *gin.Context, in *adminListingsQuery) (gin.H, error) {
			cat, err := categoryParam(c)
			if err != nil {
				return nil, err
			}
			rows, err := h.svc.Listings(c.Request.Context(), cat, in.Status)
			if err != nil {
				return nil, err
			}
			return gin.H{"listings": rows}, nil
		},
	})

	ez.RegisterAction(admin, ez.Action[map[string]any, gin.H]{
		Method: http.MethodPut, Path: "/listings/:category/:id", Binder: ez.BindRaw, Auth: true,
		Handler: func(c *gin.Context, in *map[string]any) (gin.H, error) {
			cat, err := categoryParam(c)
			if err != nil {
				return nil, err
			}
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			l, err := h.svc.UpdateListing(c.Request.Context(), cat, id, *in)
			if err != nil {
				return nil, err
			}
			out := listing.Present(cat, l, true)
			out["category"] = string(cat)
			if !cat.IsVehicle() {
				out["part_category"] = l.Category
			}
			return gin.H{"listing": out}, nil
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete, Path: "/listings/:category/:id", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			cat, err := categoryParam(c)
			if err != nil {
				return nil, err
			}
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			if err := h.svc.DeleteListing(c.Request.Context(), cat, id); err != nil {
				return nil, err
			}
			return gin.H{"message": "Listing deleted."}, nil
		},
	})
}
