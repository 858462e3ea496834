package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/dafibh/cashflow/cashflow-backend/internal/repository/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	MaxIconSize     = 2 * 1024 * 1024 // 2MB
	MinIconSize     = 32
	IconSize        = 128
	IconURLLifetime = 15 * time.Minute
)

var (
	ErrIconTooLarge             = errors.New("file too large. Maximum size is 2MB")
	ErrInvalidIconFormat        = errors.New("invalid format. Supported: JPEG, PNG")
	ErrIconTooSmall             = errors.New("image too small. Minimum 32x32 pixels")
	ErrInvalidIconData          = errors.New("invalid image data")
	ErrIconStorageNotConfigured = errors.New("icon storage not configured")
)

// AllowedIconExtensions maps accepted upload extensions to content types
var AllowedIconExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// IconService turns uploaded images into square category icons and stores them
type IconService struct {
	store storage.IconStore
}

// NewIconService creates a new IconService. A nil store disables uploads.
func NewIconService(store storage.IconStore) *IconService {
	return &IconService{store: store}
}

// IsEnabled indicates whether uploads are supported (storage configured)
func (s *IconService) IsEnabled() bool {
	return s != nil && s.store != nil
}

// ValidateIcon validates image format, size and dimensions
func (s *IconService) ValidateIcon(data []byte, filename string) error {
	_, err := s.decode(data, filename)
	return err
}

func (s *IconService) decode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxIconSize {
		return nil, ErrIconTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedIconExtensions[ext]; !ok {
		return nil, ErrInvalidIconFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrInvalidIconData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinIconSize || bounds.Dy() < MinIconSize {
		return nil, ErrIconTooSmall
	}
	return img, nil
}

// ProcessAndUpload crops the image to a centred square, scales it to
// IconSize and uploads it as PNG. It returns the stored object path.
func (s *IconService) ProcessAndUpload(ctx context.Context, categoryID uuid.UUID, data []byte, filename string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrIconStorageNotConfigured
	}

	img, err := s.decode(data, filename)
	if err != nil {
		return "", err
	}

	icon := imaging.Fill(img, IconSize, IconSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, icon, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode icon: %w", err)
	}

	objectPath := storage.GenerateIconPath(categoryID, ".png")
	stored, err := s.store.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/png", int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("failed to upload icon: %w", err)
	}
	return stored, nil
}

// URL returns a temporary download URL for a stored icon
func (s *IconService) URL(ctx context.Context, objectPath string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrIconStorageNotConfigured
	}
	return s.store.GeneratePresignedURL(ctx, objectPath, IconURLLifetime)
}

// Delete removes a stored icon. Empty paths are ignored.
func (s *IconService) Delete(ctx context.Context, objectPath string) error {
	if objectPath == "" {
		return nil
	}
	if !s.IsEnabled() {
		return ErrIconStorageNotConfigured
	}
	return s.store.Delete(ctx, objectPath)
}

// IsStoredIcon reports whether an icon value points at an uploaded object
// rather than a client-side icon name.
func IsStoredIcon(icon string) bool {
	return strings.HasPrefix(icon, "categories/")
}
