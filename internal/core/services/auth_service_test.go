package services_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/core/domain"
	"github.com/SscSPs/vidtube_backend/internal/core/services"
	"github.com/SscSPs/vidtube_backend/internal/utils"
	"github.com/stretchr/testify/suite"
)

type TokenServiceTestSuite struct {
	serviceSuite
	user *domain.User
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}

func (s *TokenServiceTestSuite) SetupTest() {
	s.serviceSuite.SetupTest()
	s.user = s.mustRegister("alice")
}

func (s *TokenServiceTestSuite) storedHash() *string {
	stored, err := s.store.FindUserByID(s.ctx, s.user.UserID)
	s.Require().NoError(err)
	return stored.RefreshTokenHash
}

func (s *TokenServiceTestSuite) TestIssueTokenPair_StoresOnlyHash() {
	pair, err := s.tokens.IssueTokenPair(s.ctx, s.user)
	s.Require().NoError(err)
	s.NotEmpty(pair.AccessToken)
	s.NotEmpty(pair.RefreshToken)
	s.True(pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	hash := s.storedHash()
	s.Require().NotNil(hash)
	s.NotEqual(pair.RefreshToken, *hash)
	s.Equal(utils.HashRefreshToken(pair.RefreshToken), *hash)
}

func (s *TokenServiceTestSuite) TestVerifyAccessToken() {
	pair, err := s.tokens.IssueTokenPair(s.ctx, s.user)
	s.Require().NoError(err)

	claims, err := s.tokens.VerifyAccessToken(s.ctx, pair.AccessToken)
	s.Require().NoError(err)
	s.Equal(s.user.UserID, claims.UserID)
	s.Equal("alice", claims.Username)
	s.Equal("alice@example.com", claims.Email)
	s.Equal(s.user.FullName, claims.FullName)

	_, err = s.tokens.VerifyAccessToken(s.ctx, pair.RefreshToken)
	s.Require().Error(err)
	s.Equal(http.StatusUnauthorized, apperrors.StatusCode(err))

	_, err = s.tokens.VerifyAccessToken(s.ctx, pair.AccessToken+"x")
	s.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *TokenServiceTestSuite) TestRotateRefreshToken_SupersedesPreviousToken() {
	first, err := s.tokens.IssueTokenPair(s.ctx, s.user)
	s.Require().NoError(err)

	second, err := s.tokens.RotateRefreshToken(s.ctx, first.RefreshToken)
	s.Require().NoError(err)
	s.NotEqual(first.RefreshToken, second.RefreshToken)
	s.Equal(utils.HashRefreshToken(second.RefreshToken), *s.storedHash())

	// replaying the superseded token is rejected and leaves the current one valid
	_, err = s.tokens.RotateRefreshToken(s.ctx, first.RefreshToken)
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrTokenReuse)
	s.Equal(http.StatusUnauthorized, apperrors.StatusCode(err))
	s.Contains(err.Error(), "refresh token is expired or used")

	third, err := s.tokens.RotateRefreshToken(s.ctx, second.RefreshToken)
	s.Require().NoError(err)
	s.NotEmpty(third.AccessToken)
}

func (s *TokenServiceTestSuite) TestRotateRefreshToken_NewLoginSupersedesOldSession() {
	first, err := s.tokens.IssueTokenPair(s.ctx, s.user)
	s.Require().NoError(err)
	_, err = s.tokens.IssueTokenPair(s.ctx, s.user)
	s.Require().NoError(err)

	_, err = s.tokens.RotateRefreshToken(s.ctx, first.RefreshToken)
	s.ErrorIs(err, apperrors.ErrTokenReuse)
}

func (s *TokenServiceTestSuite) TestRevokeRefreshToken() {
	pair, err := s.tokens.IssueTokenPair(s.ctx, s.user)
	s.Require().NoError(err)

	s.Require().NoError(s.tokens.RevokeRefreshToken(s.ctx, s.user.UserID))
	s.Nil(s.storedHash())

	_, err = s.tokens.RotateRefreshToken(s.ctx, pair.RefreshToken)
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrTokenReuse)

	// logging out twice is harmless
	s.NoError(s.tokens.RevokeRefreshToken(s.ctx, s.user.UserID))
}

func (s *TokenServiceTestSuite) TestRotateRefreshToken_Rejections() {
	pair, err := s.tokens.IssueTokenPair(s.ctx, s.user)
	s.Require().NoError(err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"access token", pair.AccessToken},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.tokens.RotateRefreshToken(s.ctx, tt.token)
			s.Require().Error(err)
			s.ErrorIs(err, apperrors.ErrUnauthorized)
			s.NotErrorIs(err, apperrors.ErrTokenReuse)
		})
	}
}

func (s *TokenServiceTestSuite) TestRotateRefreshToken_DeletedUser() {
	pair, err := s.tokens.IssueTokenPair(s.ctx, s.user)
	s.Require().NoError(err)
	s.store.DeleteUser(s.user.UserID)

	_, err = s.tokens.RotateRefreshToken(s.ctx, pair.RefreshToken)
	s.Require().Error(err)
	s.Equal(http.StatusUnauthorized, apperrors.StatusCode(err))
}

func (s *TokenServiceTestSuite) TestRotateRefreshToken_Expired() {
	cfg := testTokenConfig
	cfg.RefreshExpiry = -time.Minute
	expiring := services.NewTokenService(cfg, s.store)

	pair, err := expiring.IssueTokenPair(s.ctx, s.user)
	s.Require().NoError(err)

	_, err = expiring.RotateRefreshToken(s.ctx, pair.RefreshToken)
	s.Require().Error(err)
	s.Equal(http.StatusUnauthorized, apperrors.StatusCode(err))
}
