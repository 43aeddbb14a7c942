package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// dashboardHandler serves the caller's own channel dashboard.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

// registerDashboardRoutes registers the dashboard routes.
func registerDashboardRoutes(rg *gin.RouterGroup, ds portssvc.DashboardSvcFacade, session gin.HandlerFunc) {
	h := &dashboardHandler{dashboardService: ds}

	dashboard := rg.Group("/dashboard", session)
	{
		dashboard.GET("/stats", h.getChannelStats)
		dashboard.GET("/videos", h.getChannelVideos)
	}
}

// getChannelStats godoc
// @Summary Channel stats
// @Description Totals of the caller's videos, their views and the channel's subscribers.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.ApiResponse{data=domain.ChannelStats}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/stats [get]
func (h *dashboardHandler) getChannelStats(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetChannelStats(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "failed to fetch channel stats")
		return
	}
	respondOK(c, http.StatusOK, stats, "Channel stats fetched successfully")
}

// getChannelVideos godoc
// @Summary Channel videos
// @Description All of the caller's videos, unpublished ones included, newest first.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.ApiResponse{data=[]domain.Video}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/videos [get]
func (h *dashboardHandler) getChannelVideos(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}

	videos, err := h.dashboardService.GetChannelVideos(c.Request.Context(), user.UserID)
	if err != nil {
		respondError(c, err, "failed to fetch channel videos")
		return
	}
	respondOK(c, http.StatusOK, videos, "Channel videos fetched successfully")
}
