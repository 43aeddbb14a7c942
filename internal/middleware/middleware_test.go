package middleware_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/core/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/metrics"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
	"github.com/SscSPs/vidtube_backend/internal/testsupport"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var tokenConfig = domain.TokenConfig{
	AccessSecret:  "mw-access-secret",
	AccessExpiry:  time.Minute,
	RefreshSecret: "mw-refresh-secret",
	RefreshExpiry: time.Hour,
	Issuer:        "vidtube-test",
}

type SessionMiddlewareTestSuite struct {
	suite.Suite
	store  *testsupport.MemoryStore
	users  portssvc.UserSvcFacade
	tokens portssvc.TokenSvcFacade
	user   *domain.User
	router *gin.Engine
}

func TestSessionMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(SessionMiddlewareTestSuite))
}

func (s *SessionMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.store = testsupport.NewMemoryStore()
	repos := s.store.Repositories()
	s.users = services.NewUserService(repos.UserRepo, testsupport.NewMediaStoreStub())
	s.tokens = services.NewTokenService(tokenConfig, repos.UserRepo)

	user, err := s.users.RegisterUser(context.Background(), dto.RegisterUserRequest{
		FullName: "Alice Example",
		Email:    "alice@example.com",
		Username: "alice",
		Password: "Secret123",
		Avatar:   &dto.FileUpload{Filename: "a.png", Reader: http.NoBody},
	})
	s.Require().NoError(err)
	s.user = user

	s.router = gin.New()
	s.router.GET("/me", middleware.SessionMiddleware(s.tokens, s.users), func(c *gin.Context) {
		identity, ok := middleware.GetIdentityFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		userID, _ := middleware.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": userID, "username": identity.Username, "hasPassword": identity.PasswordHash != ""})
	})
}

func (s *SessionMiddlewareTestSuite) accessToken() string {
	pair, err := s.tokens.IssueTokenPair(context.Background(), s.user)
	s.Require().NoError(err)
	return pair.AccessToken
}

func (s *SessionMiddlewareTestSuite) do(req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func (s *SessionMiddlewareTestSuite) TestCookieToken() {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: s.accessToken()})

	w, body := s.do(req)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(s.user.UserID, body["id"])
	s.Equal("alice", body["username"])
	s.Equal(false, body["hasPassword"])
}

func (s *SessionMiddlewareTestSuite) TestBearerHeader() {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+s.accessToken())

	w, body := s.do(req)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(s.user.UserID, body["id"])
}

func (s *SessionMiddlewareTestSuite) TestCookieWinsOverHeader() {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: s.accessToken()})
	req.Header.Set("Authorization", "Bearer garbage")

	w, _ := s.do(req)
	s.Equal(http.StatusOK, w.Code)
}

func (s *SessionMiddlewareTestSuite) TestRejections() {
	valid := s.accessToken()
	expiredCfg := tokenConfig
	expiredCfg.AccessExpiry = -time.Minute
	expiredPair, err := services.NewTokenService(expiredCfg, s.store).IssueTokenPair(context.Background(), s.user)
	s.Require().NoError(err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{"missing", "", "access token required"},
		{"wrong scheme", "Basic " + valid, "access token required"},
		{"tampered", "Bearer " + valid + "x", "invalid access token"},
		{"expired", "Bearer " + expiredPair.AccessToken, "invalid access token"},
		{"refresh token", "Bearer " + expiredPair.RefreshToken, "invalid access token"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w, body := s.do(req)
			s.Equal(http.StatusUnauthorized, w.Code)
			s.Equal(false, body["success"])
			s.Equal(tt.message, body["message"])
		})
	}
}

func (s *SessionMiddlewareTestSuite) TestDeletedUser() {
	token := s.accessToken()
	s.store.DeleteUser(s.user.UserID)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w, body := s.do(req)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("invalid access token", body["message"])
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim, err := middleware.NewLimiter("2-M", nil)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/login", middleware.RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.10:4567"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client has its own budget
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "192.0.2.11:4567"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewLimiter_InvalidRate(t *testing.T) {
	_, err := middleware.NewLimiter("lots", nil)
	assert.Error(t, err)
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.MetricsMiddleware())
	r.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/ping/:id", "204")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping/2", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	var sawLogger bool
	r.GET("/", func(c *gin.Context) {
		sawLogger = middleware.GetLoggerFromCtx(c.Request.Context()) != nil
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, sawLogger)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.NotNil(t, middleware.GetLoggerFromCtx(context.Background()))
}
