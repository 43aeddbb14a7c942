package services_test

import (
	"context"
	"strings"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/core/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/testsupport"
	"github.com/stretchr/testify/suite"
)

var testTokenConfig = domain.TokenConfig{
	AccessSecret:  "test-access-secret",
	AccessExpiry:  time.Minute,
	RefreshSecret: "test-refresh-secret",
	RefreshExpiry: time.Hour,
	Issuer:        "vidtube-test",
}

// serviceSuite wires every service over the in-memory store.
type serviceSuite struct {
	suite.Suite
	ctx   context.Context
	store *testsupport.MemoryStore
	media *testsupport.MediaStoreStub

	users         portssvc.UserSvcFacade
	tokens        portssvc.TokenSvcFacade
	videos        portssvc.VideoSvcFacade
	subscriptions portssvc.SubscriptionSvcFacade
	dashboard     portssvc.DashboardSvcFacade
}

func (s *serviceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = testsupport.NewMemoryStore()
	s.media = testsupport.NewMediaStoreStub()
	repos := s.store.Repositories()

	s.users = services.NewUserService(repos.UserRepo, s.media)
	s.tokens = services.NewTokenService(testTokenConfig, repos.UserRepo)
	s.videos = services.NewVideoService(repos.VideoRepo, s.media)
	s.subscriptions = services.NewSubscriptionService(repos.SubscriptionRepo, repos.UserRepo)
	s.dashboard = services.NewDashboardService(repos.DashboardRepo)
}

func upload(name, content string) *dto.FileUpload {
	return &dto.FileUpload{
		Filename:    name,
		ContentType: "application/octet-stream",
		Size:        int64(len(content)),
		Reader:      strings.NewReader(content),
	}
}

func registerRequest(username string) dto.RegisterUserRequest {
	return dto.RegisterUserRequest{
		FullName: "User " + username,
		Email:    username + "@example.com",
		Username: username,
		Password: "Secret123",
		Avatar:   upload("avatar.png", "png-bytes"),
	}
}

func (s *serviceSuite) mustRegister(username string) *domain.User {
	user, err := s.users.RegisterUser(s.ctx, registerRequest(username))
	s.Require().NoError(err)
	return user
}

func (s *serviceSuite) mustPublish(ownerID, title string) *domain.Video {
	video, err := s.videos.PublishVideo(s.ctx, ownerID, dto.PublishVideoRequest{
		Title:     title,
		Duration:  12.5,
		VideoFile: upload("clip.mp4", "mp4-bytes"),
		Thumbnail: upload("thumb.jpg", "jpg-bytes"),
	})
	s.Require().NoError(err)
	return video
}
