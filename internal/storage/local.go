package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalStore is a filesystem-backed Store rooted at a base folder.
// Writes go through a temp file plus rename so readers never observe a
// half-written blob.
type LocalStore struct {
	root string
}

// NewLocalStore creates a LocalStore rooted at folder, creating it if needed.
func NewLocalStore(folder string) (*LocalStore, error) {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

// fullPath maps a blob path onto the filesystem, rejecting escapes from the root.
func (s *LocalStore) fullPath(p string) (string, error) {
	fp := filepath.Join(s.root, filepath.FromSlash(p))
	if !strings.HasPrefix(fp, s.root+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid blob path: %s", p)
	}
	return fp, nil
}

// Put writes the blob atomically: content goes to a temp file in the target
// directory first, then a rename swaps it into place.
func (s *LocalStore) Put(_ context.Context, path string, r io.Reader) error {
	fp, err := s.fullPath(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(fp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(fp)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fp); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to publish blob: %w", err)
	}
	return nil
}

// Exists reports whether a blob is present at path.
func (s *LocalStore) Exists(_ context.Context, path string) (bool, error) {
	fp, err := s.fullPath(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat blob: %w", err)
	}
	return true, nil
}

// List walks the prefix directory and returns blob info sorted by path.
// Temp files from in-flight writes are skipped.
func (s *LocalStore) List(_ context.Context, prefix string) ([]ObjectInfo, error) {
	dir := filepath.Join(s.root, filepath.FromSlash(prefix))
	var objects []ObjectInfo
	err := filepath.Walk(dir, func(fp string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil // empty prefix is not an error
			}
			return err
		}
		if info.IsDir() || strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		rel, err := filepath.Rel(s.root, fp)
		if err != nil {
			return err
		}
		objects = append(objects, ObjectInfo{
			Path:         filepath.ToSlash(rel),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list blobs under %s: %w", prefix, err)
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Path < objects[j].Path })
	return objects, nil
}

// Open returns the blob content for streaming.
func (s *LocalStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	fp, err := s.fullPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fp)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}

// Delete removes the blob at path.
func (s *LocalStore) Delete(_ context.Context, path string) error {
	fp, err := s.fullPath(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fp); err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
