package storage

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"automarket/internal/core/config"
)

type GCS struct {
	client    *storage.Client
	bucket    string
	publicURL string
}

func NewGCS(ctx context.Context, c config.GCS, publicURL string) (*GCS, error) {
	var opts []option.ClientOption
	if c.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if publicURL == "" || publicURL == "/images" {
		publicURL = "https://storage.googleapis.com/" + c.Bucket
	}
	return &GCS{client: client, bucket: c.Bucket, publicURL: publicURL}, nil
}

func (c *GCS) Put(ctx context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	w := c.client.Bucket(c.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write %s: %w", key, err)
	}
	// Close 才真正提交对象
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs commit %s: %w", key, err)
	}
	return joinURL(c.publicURL, key), nil
}

func (c *GCS) Close(context.Context) error { return c.client.Close() }
