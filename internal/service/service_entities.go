package service

import (
	"context"
	"fmt"

	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/internal/store"
	"github.com/ddanilova/organizer-sync/models"
)

// entityService serves the read-only listing endpoints straight from the
// repositories. Listings never touch sync state; deleted records are already
// filtered out at the store level.
type entityService struct {
	storages *store.Storages
	logger   *logger.Logger
}

func NewEntityService(storages *store.Storages, log *logger.Logger) EntityService {
	return &entityService{storages: storages, logger: log}
}

func (s *entityService) ListAccounts(ctx context.Context, userID int64) ([]*models.Account, error) {
	records, err := s.storages.Accounts.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return records, nil
}

func (s *entityService) ListCategories(ctx context.Context, userID int64) ([]*models.Category, error) {
	records, err := s.storages.Categories.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return records, nil
}

func (s *entityService) ListReminders(ctx context.Context, userID int64) ([]*models.Reminder, error) {
	records, err := s.storages.Reminders.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing reminders: %w", err)
	}
	return records, nil
}

func (s *entityService) ListEvents(ctx context.Context, userID int64) ([]*models.Event, error) {
	records, err := s.storages.Events.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	return records, nil
}
