package pgsql

import (
	portsrepo "github.com/SscSPs/vidtube_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool DBPool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		VideoRepo:        newPgxVideoRepository(dbPool),
		SubscriptionRepo: newPgxSubscriptionRepository(dbPool),
		DashboardRepo:    newPgxDashboardRepository(dbPool),
	}
}
