package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// ErrUnsupportedType is returned for uploads that are not images.
var ErrUnsupportedType = errors.New("only image files are allowed")

// ImageStore persists uploaded certificate images and returns the public
// path the SPA can render (served under /uploads).
type ImageStore interface {
	Save(ctx context.Context, originalName string, r io.Reader, size int64, contentType string) (string, error)
}

// allowed image extensions, matching the historical upload filter
var imageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ValidateImageName checks the file extension against the image allow-list
// and returns the normalized lowercase extension.
func ValidateImageName(name string) (string, error) {
	ext := strings.ToLower(path.Ext(name))
	if !imageExts[ext] {
		return "", ErrUnsupportedType
	}
	return ext, nil
}
