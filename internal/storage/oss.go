package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/casdoor/oss"
)

// OSSStore adapts a casdoor oss.StorageInterface (S3, MinIO, ...) to Store.
// Object-store puts are atomic per key, which satisfies the reader contract.
type OSSStore struct {
	client oss.StorageInterface
}

// NewOSSStore creates a Store backed by the given object storage client.
func NewOSSStore(client oss.StorageInterface) *OSSStore {
	return &OSSStore{client: client}
}

// Put stores the reader at the given path.
func (s *OSSStore) Put(_ context.Context, path string, r io.Reader) error {
	if _, err := s.client.Put(path, r); err != nil {
		return fmt.Errorf("failed to put blob %s: %w", path, err)
	}
	return nil
}

// Exists reports whether an object is present at path.
func (s *OSSStore) Exists(ctx context.Context, path string) (bool, error) {
	objects, err := s.client.List(path)
	if err != nil {
		return false, fmt.Errorf("failed to check blob %s: %w", path, err)
	}
	for _, obj := range objects {
		if obj.Path == path {
			return true, nil
		}
	}
	return false, nil
}

// List returns info for every object under prefix.
func (s *OSSStore) List(_ context.Context, prefix string) ([]ObjectInfo, error) {
	objects, err := s.client.List(prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs under %s: %w", prefix, err)
	}

	infos := make([]ObjectInfo, 0, len(objects))
	for _, obj := range objects {
		info := ObjectInfo{Path: strings.TrimPrefix(obj.Path, "/")}
		if obj.LastModified != nil {
			info.LastModified = *obj.LastModified
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Open returns the object content for streaming.
func (s *OSSStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	rc, err := s.client.GetStream(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob %s: %w", path, err)
	}
	return rc, nil
}

// Delete removes the object at path.
func (s *OSSStore) Delete(_ context.Context, path string) error {
	if err := s.client.Delete(path); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", path, err)
	}
	return nil
}
