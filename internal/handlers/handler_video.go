package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/SscSPs/vidtube_backend/internal/middleware"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// videoHandler handles HTTP requests related to videos.
type videoHandler struct {
	videoService   portssvc.VideoSvcFacade
	maxUploadBytes int64
}

func newVideoHandler(vs portssvc.VideoSvcFacade, cfg *config.Config) *videoHandler {
	return &videoHandler{videoService: vs, maxUploadBytes: uploadLimit(cfg)}
}

// registerVideoRoutes registers routes related to videos. All of them require a session.
func registerVideoRoutes(rg *gin.RouterGroup, cfg *config.Config, videoService portssvc.VideoSvcFacade, session gin.HandlerFunc) {
	h := newVideoHandler(videoService, cfg)

	videos := rg.Group("/videos", session)
	{
		videos.POST("", h.publishVideo)
		videos.GET("", h.listVideos)
		videos.GET("/:videoId", h.getVideo)
		videos.PATCH("/:videoId", h.updateVideo)
		videos.DELETE("/:videoId", h.deleteVideo)
		videos.PATCH("/:videoId/publish-toggle", h.togglePublish)
	}
}

// publishVideo godoc
// @Summary Publish a video
// @Description Uploads a video file and its thumbnail and creates the video.
// @Tags videos
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param duration formData number false "Duration in seconds"
// @Param videoFile formData file true "Video file"
// @Param thumbnail formData file true "Thumbnail image"
// @Success 201 {object} dto.ApiResponse{data=domain.Video}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /videos [post]
func (h *videoHandler) publishVideo(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	var req dto.PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind publish form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid video form"))
		return
	}

	videoFile, closeVideo, err := formFile(c, "videoFile")
	if err != nil {
		respondError(c, err, "failed to read video file")
		return
	}
	defer closeVideo()
	thumbnail, closeThumb, err := formFile(c, "thumbnail")
	if err != nil {
		respondError(c, err, "failed to read thumbnail")
		return
	}
	defer closeThumb()
	req.VideoFile = videoFile
	req.Thumbnail = thumbnail

	video, err := h.videoService.PublishVideo(c.Request.Context(), user.UserID, req)
	if err != nil {
		respondError(c, err, "failed to publish video")
		return
	}
	respondOK(c, http.StatusCreated, video, "Video published successfully")
}

// listVideos godoc
// @Summary List my videos
// @Description Lists the caller's videos, paged and sorted.
// @Tags videos
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Param sortBy query string false "createdAt, views, title or duration" default(createdAt)
// @Param sortType query string false "asc or desc" default(asc)
// @Success 200 {object} dto.ApiResponse{data=[]domain.VideoWithOwner}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /videos [get]
func (h *videoHandler) listVideos(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}

	var params dto.ListVideosParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid query parameters: "+err.Error()))
		return
	}

	videos, err := h.videoService.ListVideos(c.Request.Context(), user.UserID, params)
	if err != nil {
		respondError(c, err, "failed to list videos")
		return
	}
	respondOK(c, http.StatusOK, videos, "Videos fetched successfully")
}

// getVideo godoc
// @Summary Watch a video
// @Description Returns the video and appends it to the caller's watch history.
// @Tags videos
// @Produce json
// @Param videoId path string true "Video ID"
// @Success 200 {object} dto.ApiResponse{data=domain.VideoWithOwner}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /videos/{videoId} [get]
func (h *videoHandler) getVideo(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}

	video, err := h.videoService.WatchVideo(c.Request.Context(), c.Param("videoId"), user.UserID)
	if err != nil {
		respondError(c, err, "failed to fetch video")
		return
	}
	respondOK(c, http.StatusOK, video, "Video fetched successfully")
}

// updateVideo godoc
// @Summary Update a video
// @Description Updates title and description. A multipart/form-data request with the same fields may also carry a new "thumbnail" file.
// @Tags videos
// @Accept json,mpfd
// @Produce json
// @Param videoId path string true "Video ID"
// @Param video body dto.UpdateVideoRequest true "Fields to update"
// @Success 200 {object} dto.ApiResponse{data=domain.Video}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /videos/{videoId} [patch]
func (h *videoHandler) updateVideo(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}

	multipartForm := c.ContentType() == binding.MIMEMultipartPOSTForm
	if multipartForm {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var req dto.UpdateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request body: "+err.Error()))
		return
	}

	if multipartForm {
		thumbnail, closeThumb, err := formFile(c, "thumbnail")
		if err != nil {
			respondError(c, err, "failed to read thumbnail")
			return
		}
		defer closeThumb()
		req.Thumbnail = thumbnail
	}

	video, err := h.videoService.UpdateVideo(c.Request.Context(), c.Param("videoId"), req, user.UserID)
	if err != nil {
		respondError(c, err, "failed to update video")
		return
	}
	respondOK(c, http.StatusOK, video, "Video updated successfully")
}

// deleteVideo godoc
// @Summary Delete a video
// @Tags videos
// @Produce json
// @Param videoId path string true "Video ID"
// @Success 200 {object} dto.ApiResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /videos/{videoId} [delete]
func (h *videoHandler) deleteVideo(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}

	if err := h.videoService.DeleteVideo(c.Request.Context(), c.Param("videoId"), user.UserID); err != nil {
		respondError(c, err, "failed to delete video")
		return
	}
	respondOK(c, http.StatusOK, gin.H{}, "Video deleted successfully")
}

// togglePublish godoc
// @Summary Toggle publish status
// @Tags videos
// @Produce json
// @Param videoId path string true "Video ID"
// @Success 200 {object} dto.ApiResponse{data=domain.Video}
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /videos/{videoId}/publish-toggle [patch]
func (h *videoHandler) togglePublish(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}

	video, err := h.videoService.TogglePublishStatus(c.Request.Context(), c.Param("videoId"), user.UserID)
	if err != nil {
		respondError(c, err, "failed to toggle publish status")
		return
	}
	respondOK(c, http.StatusOK, video, "Publish status toggled")
}
