package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// IconStore defines the object storage operations used for category icons
type IconStore interface {
	Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// GenerateIconPath creates a unique object path for a category icon
func GenerateIconPath(categoryID uuid.UUID, ext string) string {
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	return path.Join("categories", categoryID.String(), filename)
}
