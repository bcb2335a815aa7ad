package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"automarket/internal/core/errs"
	"automarket/internal/core/storage"
)

const (
	MaxUploadFiles = 10
	MaxUploadSize  = 10 << 20
	sniffLen       = 512
)

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

type UploadService struct {
	store storage.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewUploadService(store storage.Store, l *zap.Logger) *UploadService {
	return &UploadService{store: store, log: l, now: time.Now}
}

// Images 逐个校验后写入存储，返回的地址顺序与入参一致；任一文件不合法则整体失败
func (s *UploadService) Images(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	switch {
	case len(files) == 0:
		return nil, errs.Validation("At least one image is required.")
	case len(files) > MaxUploadFiles:
		return nil, errs.Validation(fmt.Sprintf("You can upload at most %d images at once.", MaxUploadFiles))
	}
	for _, fh := range files {
		if fh.Size > MaxUploadSize {
			return nil, errs.Validation("Each image must be 10MB or smaller.")
		}
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		u, err := s.put(ctx, fh)
		if err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func (s *UploadService) put(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fail(s.log, "Failed to read uploaded file.", err, zap.String("file", fh.Filename))
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fail(s.log, "Failed to read uploaded file.", err, zap.String("file", fh.Filename))
	}
	head = head[:n]
	ct := http.DetectContentType(head)
	ext, ok := imageExt[ct]
	if !ok {
		return "", errs.Validation("Only image files are allowed.")
	}

	key := path.Join("listings", s.now().UTC().Format("2006/01"), uuid.NewString()+ext)
	u, err := s.store.Put(ctx, key, io.MultiReader(bytes.NewReader(head), f), fh.Size, ct)
	if err != nil {
		return "", fail(s.log, "Failed to store image.", err, zap.String("key", key))
	}
	return u, nil
}

// Open 只对 gridfs 这类需要 API 回源的后端可用
func (s *UploadService) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	o, ok := s.store.(storage.Opener)
	if !ok {
		return nil, "", errs.NotFound("Image not found.")
	}
	rc, ct, err := o.Open(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", errs.NotFound("Image not found.")
		}
		return nil, "", fail(s.log, "Failed to read image.", err, zap.String("id", id))
	}
	return rc, ct, nil
}
