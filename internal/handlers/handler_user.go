package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// userHandler handles HTTP requests related to the authenticated user and channels.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade) *userHandler {
	return &userHandler{userService: us}
}

// registerUserRoutes registers the authenticated user routes.
func registerUserRoutes(users *gin.RouterGroup, userService portssvc.UserSvcFacade, session gin.HandlerFunc) {
	h := newUserHandler(userService)

	authed := users.Group("", session)
	{
		authed.GET("/current-user", h.getCurrentUser)
		authed.POST("/change-password", h.changePassword)
		authed.GET("/channel/:username", h.getChannelProfile)
		authed.GET("/watch-history", h.getWatchHistory)
	}
}

// getCurrentUser godoc
// @Summary Current user
// @Description Returns the authenticated user.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ApiResponse{data=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/current-user [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}
	respondOK(c, http.StatusOK, dto.ToUserResponse(user), "User fetched successfully")
}

// changePassword godoc
// @Summary Change password
// @Tags users
// @Accept json
// @Produce json
// @Param body body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.ApiResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/change-password [post]
func (h *userHandler) changePassword(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Invalid change password body")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("oldPassword and newPassword (min 6 characters) are required"))
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), user.UserID, req); err != nil {
		respondError(c, err, "failed to change password")
		return
	}
	respondOK(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

// getChannelProfile godoc
// @Summary Channel profile
// @Description Returns the public profile of a channel with its subscriber counts and whether the caller is subscribed.
// @Tags users
// @Produce json
// @Param username path string true "Channel username (case-insensitive)"
// @Success 200 {object} dto.ApiResponse{data=domain.ChannelProfile}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/channel/{username} [get]
func (h *userHandler) getChannelProfile(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}

	profile, err := h.userService.GetChannelProfile(c.Request.Context(), c.Param("username"), user.UserID)
	if err != nil {
		respondError(c, err, "failed to fetch channel")
		return
	}
	respondOK(c, http.StatusOK, profile, "User channel fetched successfully")
}

// getWatchHistory godoc
// @Summary Watch history
// @Description Returns the caller's watch history in the order the videos were watched.
// @Tags users
// @Produce json
// @Success 200 {object} dto.ApiResponse{data=[]domain.WatchHistoryEntry}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/watch-history [get]
func (h *userHandler) getWatchHistory(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}

	history, err := h.userService.GetWatchHistory(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "failed to fetch watch history")
		return
	}
	respondOK(c, http.StatusOK, history, "Watch history fetched successfully")
}
