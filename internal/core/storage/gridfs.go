package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"automarket/internal/core/config"
)

// GridFSURLPrefix gridfs 文件经由 API 回源
const GridFSURLPrefix = "/api/uploads"

type GridFS struct {
	client *mongo.Client
	bucket *gridfs.Bucket
}

func NewGridFS(ctx context.Context, c config.GridFS) (*GridFS, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	bucket, err := gridfs.NewBucket(client.Database(c.Database), options.GridFSBucket().SetName(c.Bucket))
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &GridFS{client: client, bucket: bucket}, nil
}

func (g *GridFS) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	id, err := g.bucket.UploadFromStream(key, r, opts)
	if err != nil {
		return "", fmt.Errorf("gridfs upload %s: %w", key, err)
	}
	return joinURL(GridFSURLPrefix, id.Hex()), nil
}

func (g *GridFS) Open(_ context.Context, id string) (io.ReadCloser, string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, "", ErrNotFound
	}
	stream, err := g.bucket.OpenDownloadStream(oid)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", err
	}
	contentType := "application/octet-stream"
	var meta struct {
		ContentType string `bson:"contentType"`
	}
	if raw := stream.GetFile().Metadata; raw != nil && bson.Unmarshal(raw, &meta) == nil && meta.ContentType != "" {
		contentType = meta.ContentType
	}
	return stream, contentType, nil
}

func (g *GridFS) Close(ctx context.Context) error { return g.client.Disconnect(ctx) }
