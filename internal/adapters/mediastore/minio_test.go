package mediastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000", publicBaseURL(Config{Endpoint: "localhost:9000"}))
	assert.Equal(t, "https://s3.example.com", publicBaseURL(Config{Endpoint: "s3.example.com", UseSSL: true}))
	assert.Equal(t, "https://cdn.example.com", publicBaseURL(Config{Endpoint: "s3.example.com", PublicBaseURL: "https://cdn.example.com/"}))
}

func TestObjectURL(t *testing.T) {
	s := &Storage{bucketName: "vidtube-media", baseURL: "http://localhost:9000"}
	assert.Equal(t, "http://localhost:9000/vidtube-media/avatars/u1/a.png", s.ObjectURL("avatars/u1/a.png"))
}
