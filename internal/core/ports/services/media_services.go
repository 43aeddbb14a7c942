package services

import (
	"context"
	"io"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
)

// MediaStore hosts uploaded media and returns a stable public URL for it.
type MediaStore interface {
	Upload(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (*domain.MediaAsset, error)
	Delete(ctx context.Context, objectKey string) error
}
