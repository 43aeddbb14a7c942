package testsupport

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
)

// ErrUploadFailed is returned by MediaStoreStub for keys matching FailPrefix.
var ErrUploadFailed = errors.New("media upload failed")

var _ portssvc.MediaStore = (*MediaStoreStub)(nil)

// MediaStoreStub is an in-memory media store intended for tests.
type MediaStoreStub struct {
	mu      sync.Mutex
	objects map[string][]byte
	// FailPrefix makes uploads whose object key starts with it fail.
	FailPrefix string
}

// NewMediaStoreStub constructs a MediaStoreStub with empty state.
func NewMediaStoreStub() *MediaStoreStub {
	return &MediaStoreStub{objects: make(map[string][]byte)}
}

func (m *MediaStoreStub) Upload(_ context.Context, objectKey string, reader io.Reader, _ int64, contentType string) (*domain.MediaAsset, error) {
	if m.FailPrefix != "" && strings.HasPrefix(objectKey, m.FailPrefix) {
		return nil, ErrUploadFailed
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.objects[objectKey] = data
	m.mu.Unlock()
	return &domain.MediaAsset{
		ObjectKey:   objectKey,
		URL:         "http://media.test/" + objectKey,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

func (m *MediaStoreStub) Delete(_ context.Context, objectKey string) error {
	m.mu.Lock()
	delete(m.objects, objectKey)
	m.mu.Unlock()
	return nil
}

// Keys returns the keys of the stored objects.
func (m *MediaStoreStub) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	return keys
}
