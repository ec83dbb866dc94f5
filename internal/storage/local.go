package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DiskStore writes uploaded images to a local directory that the content
// service serves statically under /uploads.
type DiskStore struct {
	dir          string
	publicPrefix string
}

func NewDiskStore(dir, publicPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, publicPrefix: publicPrefix}, nil
}

func (s *DiskStore) Save(ctx context.Context, originalName string, r io.Reader, size int64, contentType string) (string, error) {
	ext, err := ValidateImageName(originalName)
	if err != nil {
		return "", err
	}
	name := "image-" + uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return s.publicPrefix + "/" + name, nil
}
