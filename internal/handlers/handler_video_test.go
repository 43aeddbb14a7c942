package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/core/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/handlers"
	"github.com/SscSPs/vidtube_backend/internal/testsupport"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVideoService is a mock implementation of portssvc.VideoSvcFacade
type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) PublishVideo(ctx context.Context, ownerID string, req dto.PublishVideoRequest) (*domain.Video, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoService) ListVideos(ctx context.Context, ownerID string, params dto.ListVideosParams) ([]domain.VideoWithOwner, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VideoWithOwner), args.Error(1)
}

func (m *MockVideoService) WatchVideo(ctx context.Context, videoID string, viewerID string) (*domain.VideoWithOwner, error) {
	args := m.Called(ctx, videoID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoWithOwner), args.Error(1)
}

func (m *MockVideoService) UpdateVideo(ctx context.Context, videoID string, req dto.UpdateVideoRequest, requesterID string) (*domain.Video, error) {
	args := m.Called(ctx, videoID, req, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func (m *MockVideoService) DeleteVideo(ctx context.Context, videoID string, requesterID string) error {
	args := m.Called(ctx, videoID, requesterID)
	return args.Error(0)
}

func (m *MockVideoService) TogglePublishStatus(ctx context.Context, videoID string, requesterID string) (*domain.Video, error) {
	args := m.Called(ctx, videoID, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

// setupVideoRouter wires the real session stack with a mocked video service and
// returns a bearer token for a registered user.
func setupVideoRouter(t *testing.T, videoSvc *MockVideoService) (*gin.Engine, string, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	store := testsupport.NewMemoryStore()
	container := services.NewServiceContainer(cfg, store.Repositories(), testsupport.NewMediaStoreStub())
	container.Video = videoSvc

	user, err := container.User.RegisterUser(context.Background(), dto.RegisterUserRequest{
		FullName: "Owner",
		Email:    "owner@example.com",
		Username: "owner",
		Password: "Secret123",
		Avatar:   &dto.FileUpload{Filename: "a.png", Reader: http.NoBody},
	})
	require.NoError(t, err)
	pair, err := container.Token.IssueTokenPair(context.Background(), user)
	require.NoError(t, err)

	r := gin.New()
	handlers.RegisterRoutes(r, cfg, container, nil)
	return r, user.UserID, pair.AccessToken
}

func TestVideoHandler_ListVideos_DefaultParams(t *testing.T) {
	videoSvc := new(MockVideoService)
	router, userID, token := setupVideoRouter(t, videoSvc)

	expected := dto.ListVideosParams{Page: 1, Limit: 10, SortBy: "createdAt", SortType: "asc"}
	videoSvc.On("ListVideos", mock.Anything, userID, expected).Return([]domain.VideoWithOwner{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"statusCode":200,"data":[],"message":"Videos fetched successfully","success":true}`, w.Body.String())
	videoSvc.AssertExpectations(t)
}

func TestVideoHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "not found",
			err:        apperrors.NewAppError(http.StatusNotFound, "video not found", apperrors.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"success":false,"message":"video not found"}`,
		},
		{
			name:       "forbidden sentinel",
			err:        apperrors.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantBody:   `{"success":false,"message":"forbidden"}`,
		},
		{
			name:       "internal error is not leaked",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"success":false,"message":"failed to delete video"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videoSvc := new(MockVideoService)
			router, userID, token := setupVideoRouter(t, videoSvc)
			videoSvc.On("DeleteVideo", mock.Anything, "vid-1", userID).Return(tt.err).Once()

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/videos/vid-1", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			videoSvc.AssertExpectations(t)
		})
	}
}

func TestVideoHandler_TogglePublish(t *testing.T) {
	videoSvc := new(MockVideoService)
	router, userID, token := setupVideoRouter(t, videoSvc)
	videoSvc.On("TogglePublishStatus", mock.Anything, "vid-2", userID).
		Return(&domain.Video{VideoID: "vid-2", OwnerID: userID, IsPublished: false}, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/videos/vid-2/publish-toggle", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isPublished":false`)
	videoSvc.AssertExpectations(t)
}
