// Package storage 上传图片的落盘后端：local / s3 / gcs / gridfs
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"automarket/internal/core/config"
)

var ErrNotFound = errors.New("object not found")

// Store Put 返回可直接写进 image_urls 的地址
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Close(ctx context.Context) error
}

// Opener 由自身不对外暴露文件的后端实现（gridfs），API 负责回源
type Opener interface {
	Open(ctx context.Context, id string) (io.ReadCloser, string, error)
}

func New(ctx context.Context, c config.Storage, staticDir string) (Store, error) {
	switch strings.ToLower(c.Driver) {
	case "", "local":
		return NewLocal(staticDir, c.PublicURL)
	case "s3":
		return NewS3(c.S3, c.PublicURL)
	case "gcs":
		return NewGCS(ctx, c.GCS, c.PublicURL)
	case "gridfs":
		return NewGridFS(ctx, c.GridFS)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", c.Driver)
	}
}

func joinURL(prefix, key string) string {
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(key, "/")
}
