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

// AccountHandler /api/user/* 与 POST /api/cars/:id/inquiries，全部需要登录
type AccountHandler struct {
	svc    AccountService
	guards Guards
}

func NewAccountHandler(svc AccountService, g Guards) *AccountHandler {
	return &AccountHandler{svc: svc, guards: g}
}

func (h *AccountHandler) Priority() int { return 30 }

type ownListingsQuery struct {
	Category string `form:"category"`
	Status   string `form:"status" binding:"omitempty,listing_status"`
}

type inquiryIn struct {
	Message string `json:"message" binding:"required,max=5000"`
}

func (h *AccountHandler) MountAPI(api *gin.RouterGroup) {
	g := api.Group("/user", h.guards.Auth)

	ez.RegisterAction(g, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet, Path: "/profile", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			u, st, err := h.svc.Profile(c.Request.Context(), ez.MustUserID(c))
			if err != nil {
				return nil, err
			}
			return gin.H{"user": profileUser(u), "stats": st}, nil
		},
	})

	ez.RegisterAction(g, ez.Action[user.ProfileInput, gin.H]{
		Method: http.MethodPut, Path: "/profile", Binder: ez.BindJSON, Auth: true,
		Handler: func(c *gin.Context, in *user.ProfileInput) (gin.H, error) {
			u, err := h.svc.UpdateProfile(c.Request.Context(), ez.MustUserID(c), *in)
			if err != nil {
				return nil, err
			}
			return gin.H{"message": "Profile updated successfully", "user": profileUser(u)}, nil
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet, Path: "/favorites", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			p := pageOf(c)
			rows, total, err := h.svc.Favorites(c.Request.Context(), ez.MustUserID(c), p)
			if err != nil {
				return nil, err
			}
			out := make([]gin.H, 0, len(rows))
			for i := range rows {
				out = append(out, gin.H{
					"favorite_id":  rows[i].FavoriteID,
					"favorited_at": rows[i].FavoritedAt,
					"car":          listing.Present(domain.CategoryCars, &rows[i].Listing, false),
				})
			}
			return paged("favorites", out, p, total), nil
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, gin.H]{
		Method: http.MethodPost, Path: "/favorites/:carId", Binder: ez.BindNone, Auth: true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			carID, err := ez.ParamID(c, "carId")
			if err != nil {
				return nil, err
			}
			if err := h.svc.AddFavorite(c.Request.Context(), ez.MustUserID(c), carID); err != nil {
				return nil, err
			}
			return gin.H{"message": "Car added to favorites successfully"}, nil
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete, Path: "/favorites/:carId", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			carID, err := ez.ParamID(c, "carId")
			if err != nil {
				return nil, err
			}
			if err := h.svc.RemoveFavorite(c.Request.Context(), ez.MustUserID(c), carID); err != nil {
				return nil, err
			}
			return gin.H{"message": "Car removed from favorites successfully"}, nil
		},
	})

	ez.RegisterAction(g, ez.Action[ownListingsQuery, gin.H]{
		Method: http.MethodGet, Path: "/listings", Binder: ez.BindQuery, Auth: true,
		Handler: func(c *gin.Context, in *ownListingsQuery) (gin.H, error) {
			cat := domain.CategoryCars
			if in.Category != "" {
				var ok bool
				if cat, ok = domain.ParseCategory(in.Category); !ok {
					return nil, errs.Validation("Invalid category.")
				}
			}
			p := pageOf(c)
			rows, total, err := h.svc.Listings(c.Request.Context(), ez.MustUserID(c), cat, in.Status, p)
			if err != nil {
				return nil, err
			}
			return paged("listings", listing.PresentAll(cat, rows), p, total), nil
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet, Path: "/inquiries", Binder: ez.BindNone, Auth: true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			p := pageOf(c)
			rows, total, err := h.svc.Inquiries(c.Request.Context(), ez.MustUserID(c), c.Query("box"), p)
			if err != nil {
				return nil, err
			}
			return paged("inquiries", rows, p, total), nil
		},
	})

	cars := api.Group("/"+string(domain.CategoryCars), h.guards.Auth)
	ez.RegisterAction(cars, ez.Action[inquiryIn, gin.H]{
		Method: http.MethodPost, Path: "/:id/inquiries", Binder: ez.BindJSON, Auth: true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *inquiryIn) (gin.H, error) {
			carID, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			q, err := h.svc.SendInquiry(c.Request.Context(), ez.MustUserID(c), carID, in.Message)
			if err != nil {
				return nil, err
			}
			return gin.H{"message": "Inquiry sent successfully", "inquiry": q}, nil
		},
	})
}

func profileUser(u *domain.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"phone":      u.Phone,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}
