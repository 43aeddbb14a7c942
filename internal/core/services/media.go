package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/metrics"
	"github.com/SscSPs/vidtube_backend/internal/utils"
)

// Media kinds, used as object key prefixes and metric labels.
const (
	mediaAvatar    = "avatar"
	mediaCover     = "cover"
	mediaVideo     = "video"
	mediaThumbnail = "thumbnail"
)

// uploadMedia stores file under <kind>s/<ownerID>/<random><ext>.
func uploadMedia(ctx context.Context, store portssvc.MediaStore, kind, ownerID string, file *dto.FileUpload) (*domain.MediaAsset, error) {
	suffix, err := utils.GenerateSecureRandomString(8)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%ss/%s/%s%s", kind, ownerID, suffix, strings.ToLower(path.Ext(file.Filename)))

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	asset, err := store.Upload(ctx, key, file.Reader, file.Size, contentType)
	metrics.RecordMediaUpload(kind, file.Size, err)
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", kind, err)
	}
	return asset, nil
}
