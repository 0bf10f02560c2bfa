// Package storage provides blob storage for report artifacts and resume files.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	aws3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/casdoor/oss/s3"

	"github.com/jonathan/jobboard/internal/config"
)

// ObjectInfo describes a stored blob.
type ObjectInfo struct {
	Path         string
	LastModified time.Time
}

// Store is the blob store contract the pipeline depends on. Any durable
// backend works as long as Put is atomic with respect to readers: a
// concurrent Open sees either the previous content or the new content,
// never a partial write.
type Store interface {
	// Put writes the blob at path, overwriting any existing blob.
	Put(ctx context.Context, path string, r io.Reader) error
	// Exists reports whether a blob is present at path.
	Exists(ctx context.Context, path string) (bool, error)
	// List returns info for every blob whose path starts with prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// Open returns the blob content for streaming.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes the blob at path.
	Delete(ctx context.Context, path string) error
}

// New creates a Store for the configured provider.
func New(cfg *config.StorageConfig) (Store, error) {
	switch cfg.Provider {
	case "filesystem":
		return NewLocalStore(cfg.Root)
	case "aws-s3":
		client := s3.New(&s3.Config{
			AccessID:   cfg.AccessID,
			AccessKey:  cfg.AccessKey,
			Region:     cfg.Region,
			Bucket:     cfg.Bucket,
			Endpoint:   cfg.Endpoint,
			S3Endpoint: cfg.Endpoint,
			ACL:        aws3.BucketCannedACLPrivate,
		})
		return NewOSSStore(client), nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}
