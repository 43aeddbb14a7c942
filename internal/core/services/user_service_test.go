package services_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/testsupport"
	"github.com/SscSPs/vidtube_backend/internal/utils"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	serviceSuite
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

// --- RegisterUser Tests ---

func (s *UserServiceTestSuite) TestRegisterUser_Success() {
	req := registerRequest("Alice")
	req.Email = "  Alice@Example.com "
	req.CoverImage = upload("cover.JPG", "cover-bytes")

	user, err := s.users.RegisterUser(s.ctx, req)
	s.Require().NoError(err)

	s.NotEmpty(user.UserID)
	s.Equal("alice", user.Username)
	s.Equal("alice@example.com", user.Email)
	s.True(strings.HasPrefix(user.Avatar, "http://media.test/avatars/"+user.UserID+"/"))
	s.Require().NotNil(user.CoverImage)
	s.True(strings.HasSuffix(*user.CoverImage, ".jpg"))
	s.Empty(user.PasswordHash, "returned user must not carry credentials")
	s.Nil(user.RefreshTokenHash)

	stored, err := s.store.FindUserByID(s.ctx, user.UserID)
	s.Require().NoError(err)
	s.NotEqual("Secret123", stored.PasswordHash)
	s.True(utils.CheckPasswordHash("Secret123", stored.PasswordHash))
}

func (s *UserServiceTestSuite) TestRegisterUser_MissingField() {
	req := registerRequest("bob")
	req.FullName = "   "

	_, err := s.users.RegisterUser(s.ctx, req)
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Contains(err.Error(), "All fields are required")
}

func (s *UserServiceTestSuite) TestRegisterUser_InvalidEmail() {
	req := registerRequest("bob")
	req.Email = "not-an-email"

	_, err := s.users.RegisterUser(s.ctx, req)
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))
}

func (s *UserServiceTestSuite) TestRegisterUser_Duplicate() {
	s.mustRegister("alice")

	req := registerRequest("ALICE")
	req.Email = "other@example.com"
	_, err := s.users.RegisterUser(s.ctx, req)
	s.Require().Error(err)
	s.Equal(http.StatusConflict, apperrors.StatusCode(err))
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *UserServiceTestSuite) TestRegisterUser_AvatarRequired() {
	req := registerRequest("carol")
	req.Avatar = nil

	_, err := s.users.RegisterUser(s.ctx, req)
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))
	s.Contains(err.Error(), "Avatar file is required")
}

func (s *UserServiceTestSuite) TestRegisterUser_AvatarUploadFails() {
	s.media.FailPrefix = "avatars/"

	_, err := s.users.RegisterUser(s.ctx, registerRequest("dave"))
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))
	s.ErrorIs(err, testsupport.ErrUploadFailed)

	_, findErr := s.store.FindUserByLogin(s.ctx, "dave", "")
	s.ErrorIs(findErr, apperrors.ErrNotFound)
}

func (s *UserServiceTestSuite) TestRegisterUser_CoverUploadFailureIsIgnored() {
	s.media.FailPrefix = "covers/"
	req := registerRequest("erin")
	req.CoverImage = upload("cover.png", "cover")

	user, err := s.users.RegisterUser(s.ctx, req)
	s.Require().NoError(err)
	s.Nil(user.CoverImage)
}

// --- AuthenticateUser Tests ---

func (s *UserServiceTestSuite) TestAuthenticateUser_ByUsernameOrEmail() {
	registered := s.mustRegister("alice")

	byUsername, err := s.users.AuthenticateUser(s.ctx, dto.LoginRequest{Username: "Alice", Password: "Secret123"})
	s.Require().NoError(err)
	s.Equal(registered.UserID, byUsername.UserID)

	byEmail, err := s.users.AuthenticateUser(s.ctx, dto.LoginRequest{Email: "alice@example.com", Password: "Secret123"})
	s.Require().NoError(err)
	s.Equal(registered.UserID, byEmail.UserID)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_Failures() {
	s.mustRegister("alice")

	tests := []struct {
		name    string
		req     dto.LoginRequest
		status  int
		message string
	}{
		{"no identifier", dto.LoginRequest{Password: "Secret123"}, http.StatusBadRequest, "username or email is required"},
		{"no password", dto.LoginRequest{Username: "alice"}, http.StatusBadRequest, "password is required"},
		{"unknown user", dto.LoginRequest{Username: "nobody", Password: "Secret123"}, http.StatusNotFound, "User does not exist"},
		{"wrong password", dto.LoginRequest{Username: "alice", Password: "wrong"}, http.StatusUnauthorized, "Invalid user credentials"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			user, err := s.users.AuthenticateUser(s.ctx, tt.req)
			s.Require().Error(err)
			s.Nil(user)
			s.Equal(tt.status, apperrors.StatusCode(err))
			s.Contains(err.Error(), tt.message)
		})
	}
}

// --- ChangePassword Tests ---

func (s *UserServiceTestSuite) TestChangePassword() {
	user := s.mustRegister("alice")

	err := s.users.ChangePassword(s.ctx, user.UserID, dto.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "NewSecret1"})
	s.Require().Error(err)
	s.Contains(err.Error(), "Invalid old password")

	err = s.users.ChangePassword(s.ctx, user.UserID, dto.ChangePasswordRequest{OldPassword: "Secret123", NewPassword: "NewSecret1"})
	s.Require().NoError(err)

	_, err = s.users.AuthenticateUser(s.ctx, dto.LoginRequest{Username: "alice", Password: "Secret123"})
	s.Equal(http.StatusUnauthorized, apperrors.StatusCode(err))
	_, err = s.users.AuthenticateUser(s.ctx, dto.LoginRequest{Username: "alice", Password: "NewSecret1"})
	s.NoError(err)
}

func (s *UserServiceTestSuite) TestPasswordOverByteLimit() {
	// 40 characters, 80 bytes
	long := strings.Repeat("é", 40)

	req := registerRequest("carol")
	req.Password = long
	_, err := s.users.RegisterUser(s.ctx, req)
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))
	s.Empty(s.media.Keys(), "nothing is uploaded for a rejected registration")

	user := s.mustRegister("alice")
	err = s.users.ChangePassword(s.ctx, user.UserID, dto.ChangePasswordRequest{OldPassword: "Secret123", NewPassword: long})
	s.Require().Error(err)
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))
	s.Contains(err.Error(), "at most 72 bytes")

	_, err = s.users.AuthenticateUser(s.ctx, dto.LoginRequest{Username: "alice", Password: "Secret123"})
	s.NoError(err, "password is unchanged")
}

// --- Channel profile and watch history Tests ---

func (s *UserServiceTestSuite) TestGetChannelProfile() {
	alice := s.mustRegister("alice")
	bob := s.mustRegister("bob")

	profile, err := s.users.GetChannelProfile(s.ctx, "  ALICE ", bob.UserID)
	s.Require().NoError(err)
	s.Equal(alice.UserID, profile.UserID)
	s.Equal(int64(0), profile.SubscriberCount)
	s.Equal(int64(0), profile.ChannelsSubscribedToCount)
	s.False(profile.IsSubscribed)

	_, subscribed, err := s.subscriptions.ToggleSubscription(s.ctx, bob.UserID, alice.UserID)
	s.Require().NoError(err)
	s.True(subscribed)

	profile, err = s.users.GetChannelProfile(s.ctx, "alice", bob.UserID)
	s.Require().NoError(err)
	s.Equal(int64(1), profile.SubscriberCount)
	s.True(profile.IsSubscribed)

	// the same channel seen by its owner
	profile, err = s.users.GetChannelProfile(s.ctx, "alice", alice.UserID)
	s.Require().NoError(err)
	s.False(profile.IsSubscribed)

	bobProfile, err := s.users.GetChannelProfile(s.ctx, "bob", alice.UserID)
	s.Require().NoError(err)
	s.Equal(int64(1), bobProfile.ChannelsSubscribedToCount)
	s.Equal(int64(0), bobProfile.SubscriberCount)
}

func (s *UserServiceTestSuite) TestGetChannelProfile_Errors() {
	_, err := s.users.GetChannelProfile(s.ctx, " ", "")
	s.Equal(http.StatusBadRequest, apperrors.StatusCode(err))

	_, err = s.users.GetChannelProfile(s.ctx, "ghost", "")
	s.Equal(http.StatusNotFound, apperrors.StatusCode(err))
	s.Contains(err.Error(), "channel does not exist")
}

func (s *UserServiceTestSuite) TestGetWatchHistory() {
	alice := s.mustRegister("alice")
	bob := s.mustRegister("bob")

	history, err := s.users.GetWatchHistory(s.ctx, bob.UserID)
	s.Require().NoError(err)
	s.NotNil(history)
	s.Empty(history)

	first := s.mustPublish(alice.UserID, "first")
	second := s.mustPublish(alice.UserID, "second")
	for _, id := range []string{second.VideoID, first.VideoID, second.VideoID} {
		_, err := s.videos.WatchVideo(s.ctx, id, bob.UserID)
		s.Require().NoError(err)
	}

	history, err = s.users.GetWatchHistory(s.ctx, bob.UserID)
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	s.Equal(second.VideoID, history[0].VideoID)
	s.Equal(first.VideoID, history[1].VideoID)
	s.Equal(second.VideoID, history[2].VideoID)
	s.Equal("alice", history[0].Owner.Username)
	s.Equal(alice.Avatar, history[0].Owner.Avatar)
}
