package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/social-network/pkg/util"
)

// MaxImageSize caps uploaded images at 5 MiB.
const MaxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageStore writes uploaded images to a local directory served at
// /uploads. Stored names are random; the original file name is
// discarded.
type ImageStore struct {
	dir string
}

// NewImageStore creates the upload directory if needed.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Dir returns the directory images are written to.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save validates and persists an uploaded image, returning its public
// URL path.
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	if file.Size > MaxImageSize {
		return "", apperrors.NewValidationError("image exceeds 5MB", nil)
	}

	contentType := strings.TrimSpace(strings.Split(file.Header.Get("Content-Type"), ";")[0])
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", apperrors.NewValidationError("image must be jpeg, png, gif or webp", nil)
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	defer src.Close()

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, MaxImageSize+1)); err != nil {
		return "", apperrors.NewInternalError(err)
	}

	return "/uploads/" + name, nil
}
