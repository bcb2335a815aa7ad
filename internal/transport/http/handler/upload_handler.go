package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"automarket/internal/core/errs"
	"automarket/internal/service"
	"automarket/internal/transport/http/ez"
	resp "automarket/internal/transport/http/response"
)

const (
	uploadField = "images"
	// 10 张 * 10MB，外加表单边界的余量
	maxUploadBody = service.MaxUploadFiles*service.MaxUploadSize + 1<<20
)

type UploadHandler struct {
	svc    UploadService
	guards Guards
}

func NewUploadHandler(svc UploadService, g Guards) *UploadHandler {
	return &UploadHandler{svc: svc, guards: g}
}

func (h *UploadHandler) Priority() int { return 40 }

func (h *UploadHandler) MountAPI(api *gin.RouterGroup) {
	g := api.Group("/uploads")

	ez.RegisterAction(g.Group("", h.guards.Auth), ez.Action[struct{}, gin.H]{
		Method: http.MethodPost, Path: "", Binder: ez.BindNone, Auth: true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)
			form, err := c.MultipartForm()
			if err != nil {
				var mbe *http.MaxBytesError
				if errors.As(err, &mbe) {
					return nil, errs.Validation("Upload is too large.")
				}
				return nil, errs.Validation("Invalid multipart form.")
			}
			urls, err := h.svc.Images(c.Request.Context(), form.File[uploadField])
			if err != nil {
				return nil, err
			}
			return gin.H{"image_urls": urls}, nil
		},
	})

	// gridfs 后端的图片经 API 回源
	g.GET("/:id", func(c *gin.Context) {
		rc, ct, err := h.svc.Open(c.Request.Context(), c.Param("id"))
		if err != nil {
			resp.Fail(c, err)
			return
		}
		defer rc.Close()
		c.Header("Cache-Control", "public, max-age=31536000, immutable")
		c.DataFromReader(http.StatusOK, -1, ct, rc, nil)
	})
}
