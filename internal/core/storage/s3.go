package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"automarket/internal/core/config"
)

type S3 struct {
	s3        *s3.S3
	bucket    string
	publicURL string
}

// NewS3 Endpoint 非空时走 path-style（minio 等兼容实现）
func NewS3(c config.S3, publicURL string) (*S3, error) {
	cfg := &aws.Config{Region: aws.String(c.Region)}
	if c.Endpoint != "" {
		cfg.Endpoint = aws.String(c.Endpoint)
		cfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	if publicURL == "" || publicURL == "/images" {
		publicURL = fmt.Sprintf("https://%s.s3.amazonaws.com", c.Bucket)
	}
	return &S3{s3: s3.New(sess), bucket: c.Bucket, publicURL: publicURL}, nil
}

func (c *S3) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	// PutObject 需要 ReadSeeker
	buf, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	_, err = c.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf),
		ContentLength: aws.Int64(int64(len(buf))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return joinURL(c.publicURL, key), nil
}

func (c *S3) Close(context.Context) error { return nil }
