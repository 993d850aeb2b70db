package service

import (
	"github.com/ddanilova/organizer-sync/internal/config"
	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/internal/store"
	"github.com/ddanilova/organizer-sync/internal/validators"
)

type Services struct {
	AuthService   AuthService
	SyncService   SyncService
	EntityService EntityService
	HealthService HealthService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, log *logger.Logger) (*Services, error) {
	healthService, err := NewHealthService(cfg.App, log)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:   NewAuthService(storages.Users, validators.NewUserValidator(), cfg.App, log),
		SyncService:   NewSyncService(storages, validators.NewSyncValidator(), log),
		EntityService: NewEntityService(storages, log),
		HealthService: healthService,
	}, nil
}
