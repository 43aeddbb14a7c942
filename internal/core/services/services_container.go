package services

import (
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/vidtube_backend/internal/core/ports/services"
	"github.com/SscSPs/vidtube_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, media portssvc.MediaStore) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		User:         NewUserService(repos.UserRepo, media),
		Token:        NewTokenService(cfg.TokenConfig(), repos.UserRepo),
		Video:        NewVideoService(repos.VideoRepo, media),
		Subscription: NewSubscriptionService(repos.SubscriptionRepo, repos.UserRepo),
		Dashboard:    NewDashboardService(repos.DashboardRepo),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.UserSvcFacade         = (*userService)(nil)
	_ portssvc.TokenSvcFacade        = (*tokenService)(nil)
	_ portssvc.VideoSvcFacade        = (*videoService)(nil)
	_ portssvc.SubscriptionSvcFacade = (*subscriptionService)(nil)
	_ portssvc.DashboardSvcFacade    = (*dashboardService)(nil)
)
