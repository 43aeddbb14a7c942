package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// subscriptionHandler handles HTTP requests related to channel subscriptions.
type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionSvcFacade
}

func newSubscriptionHandler(ss portssvc.SubscriptionSvcFacade) *subscriptionHandler {
	return &subscriptionHandler{subscriptionService: ss}
}

// registerSubscriptionRoutes registers the subscription routes.
func registerSubscriptionRoutes(rg *gin.RouterGroup, ss portssvc.SubscriptionSvcFacade, session gin.HandlerFunc) {
	h := newSubscriptionHandler(ss)

	subs := rg.Group("/subscriptions", session)
	{
		subs.POST("/c/:channelId", h.toggleSubscription)
		subs.GET("/c/:channelId", h.listChannelSubscribers)
		subs.GET("/u/:subscriberId", h.listSubscribedChannels)
	}
}

// toggleSubscription godoc
// @Summary Toggle subscription
// @Description Subscribes the caller to the channel, or unsubscribes if already subscribed.
// @Tags subscriptions
// @Produce json
// @Param channelId path string true "Channel (user) ID"
// @Success 200 {object} dto.ApiResponse{data=dto.ToggleSubscriptionResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/c/{channelId} [post]
func (h *subscriptionHandler) toggleSubscription(c *gin.Context) {
	user, ok := currentIdentity(c)
	if !ok {
		return
	}

	sub, subscribed, err := h.subscriptionService.ToggleSubscription(c.Request.Context(), user.UserID, c.Param("channelId"))
	if err != nil {
		respondError(c, err, "failed to toggle subscription")
		return
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	respondOK(c, http.StatusOK, dto.ToggleSubscriptionResponse{Subscribed: subscribed, Subscription: sub}, message)
}

// listChannelSubscribers godoc
// @Summary List channel subscribers
// @Tags subscriptions
// @Produce json
// @Param channelId path string true "Channel (user) ID"
// @Success 200 {object} dto.ApiResponse{data=[]domain.SubscriptionWithUser}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/c/{channelId} [get]
func (h *subscriptionHandler) listChannelSubscribers(c *gin.Context) {
	subs, err := h.subscriptionService.ListChannelSubscribers(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		respondError(c, err, "failed to list subscribers")
		return
	}
	respondOK(c, http.StatusOK, subs, "Subscribers fetched successfully")
}

// listSubscribedChannels godoc
// @Summary List subscribed channels
// @Tags subscriptions
// @Produce json
// @Param subscriberId path string true "Subscriber (user) ID"
// @Success 200 {object} dto.ApiResponse{data=[]domain.SubscriptionWithUser}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /subscriptions/u/{subscriberId} [get]
func (h *subscriptionHandler) listSubscribedChannels(c *gin.Context) {
	subs, err := h.subscriptionService.ListSubscribedChannels(c.Request.Context(), c.Param("subscriberId"))
	if err != nil {
		respondError(c, err, "failed to list subscribed channels")
		return
	}
	respondOK(c, http.StatusOK, subs, "Subscribed channels fetched successfully")
}
