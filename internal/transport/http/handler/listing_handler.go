package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"automarket/internal/domain"
	"automarket/internal/feature/listing"
	"automarket/internal/transport/http/ez"
)

// ListingHandler 一个实例服务一个分类：/api/<cars|bikes|trucks|parts>
type ListingHandler struct {
	d      *listing.Descriptor
	svc    ListingService
	guards Guards
}

func NewListingHandler(c domain.Category, svc ListingService, g Guards) *ListingHandler {
	return &ListingHandler{d: listing.MustFor(c), svc: svc, guards: g}
}

func (h *ListingHandler) Priority() int { return 20 }

func (h *ListingHandler) MountAPI(api *gin.RouterGroup) {
	cat := h.d.Category
	g := api.Group("/" + string(cat))
	authed := g.Group("", h.guards.Auth)

	ez.RegisterAction(g, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			p := pageOf(c)
			rows, total, err := h.svc.List(c.Request.Context(), cat, c.Request.URL.Query(), p)
			if err != nil {
				return nil, err
			}
			return paged(string(cat), listing.PresentAll(cat, rows), p, total), nil
		},
	})

	ez.RegisterAction(g, ez.Action[struct{}, gin.H]{
		Method: http.MethodGet,
		Path:   "/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			l, err := h.svc.Get(c.Request.Context(), cat, id)
			if err != nil {
				return nil, err
			}
			return gin.H{h.d.Singular: listing.Present(cat, l, true)}, nil
		},
	})

	ez.RegisterAction(authed, ez.Action[map[string]any, gin.H]{
		Method: http.MethodPost,
		Path:   "",
		Binder: ez.BindRaw,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *map[string]any) (gin.H, error) {
			l, err := h.svc.Create(c.Request.Context(), cat, ez.MustUserID(c), *in)
			if err != nil {
				return nil, err
			}
			return gin.H{
				"message":    h.d.Label + " listing created successfully",
				h.d.Singular: listing.Present(cat, l, false),
			}, nil
		},
	})

	ez.RegisterAction(authed, ez.Action[map[string]any, gin.H]{
		Method: http.MethodPut,
		Path:   "/:id",
		Binder: ez.BindRaw,
		Auth:   true,
		Handler: func(c *gin.Context, in *map[string]any) (gin.H, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			l, err := h.svc.Update(c.Request.Context(), cat, id, ez.MustUserID(c), false, *in)
			if err != nil {
				return nil, err
			}
			return gin.H{
				"message":    h.d.Label + " listing updated successfully",
				h.d.Singular: listing.Present(cat, l, false),
			}, nil
		},
	})

	ez.RegisterAction(authed, ez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := ez.ParamID(c, "id")
			if err != nil {
				return nil, err
			}
			if err := h.svc.Delete(c.Request.Context(), cat, id, ez.MustUserID(c), false); err != nil {
				return nil, err
			}
			return gin.H{"message": h.d.Label + " listing deleted successfully"}, nil
		},
	})
}
