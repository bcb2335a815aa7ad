package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Local struct {
	basePath  string
	publicURL string
}

func NewLocal(basePath, publicURL string) (*Local, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	if publicURL == "" {
		publicURL = "/images"
	}
	return &Local{basePath: basePath, publicURL: publicURL}, nil
}

func (s *Local) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	// 以 / 为根做 Clean，key 无法跳出 basePath
	clean := filepath.Clean("/" + key)
	full := filepath.Join(s.basePath, clean)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}
	dst, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return joinURL(s.publicURL, filepath.ToSlash(clean)), nil
}

func (s *Local) Close(context.Context) error { return nil }
