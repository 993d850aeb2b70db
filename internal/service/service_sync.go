// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package service

import (
	"context"
	"fmt"

	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/internal/reconcile"
	"github.com/ddanilova/organizer-sync/internal/store"
	"github.com/ddanilova/organizer-sync/internal/validators"
	"github.com/ddanilova/organizer-sync/models"
)

// syncService fronts one reconciliation engine per replicated entity type.
// It validates incoming batches and enforces that the owner declared in the
// request is the authenticated user before any engine runs.
type syncService struct {
	accounts   *reconcile.Engine[*models.Account]
	categories *reconcile.Engine[*models.Category]
	reminders  *reconcile.Engine[*models.Reminder]
	events     *reconcile.Engine[*models.Event]

	validator validators.Validator
	logger    *logger.Logger
}

// NewSyncService wires the four engines onto the shared storages.
func NewSyncService(storages *store.Storages, validator validators.Validator, log *logger.Logger) SyncService {
	return &syncService{
		accounts:   reconcile.NewEngine[*models.Account](storages.Accounts, models.EntityAccount),
		categories: reconcile.NewEngine[*models.Category](storages.Categories, models.EntityCategory),
		reminders:  reconcile.NewEngine[*models.Reminder](storages.Reminders, models.EntityReminder),
		events:     reconcile.NewEngine[*models.Event](storages.Events, models.EntityEvent),
		validator:  validator,
		logger:     log,
	}
}

func (s *syncService) SyncAccounts(ctx context.Context, userID int64, req models.SyncRequest[*models.Account]) (models.SyncResponse[*models.Account], error) {
	return reconcileBatch(ctx, s, s.accounts, userID, req)
}

func (s *syncService) SyncCategories(ctx context.Context, userID int64, req models.SyncRequest[*models.Category]) (models.SyncResponse[*models.Category], error) {
	return reconcileBatch(ctx, s, s.categories, userID, req)
}

func (s *syncService) SyncReminders(ctx context.Context, userID int64, req models.SyncRequest[*models.Reminder]) (models.SyncResponse[*models.Reminder], error) {
	return reconcileBatch(ctx, s, s.reminders, userID, req)
}

func (s *syncService) SyncEvents(ctx context.Context, userID int64, req models.SyncRequest[*models.Event]) (models.SyncResponse[*models.Event], error) {
	return reconcileBatch(ctx, s, s.events, userID, req)
}

// reconcileBatch is the shared path of the four Sync methods: validate,
// check the owner claim against the authenticated user, run the engine,
// shape the response.
func reconcileBatch[R reconcile.Record](ctx context.Context, s *syncService, engine *reconcile.Engine[R], userID int64, req models.SyncRequest[R]) (models.SyncResponse[R], error) {
	log := logger.FromContext(ctx)

	if req.OwnerID != userID {
		log.Warn().
			Int64("user_id", userID).
			Int64("declared_owner_id", req.OwnerID).
			Msg("batch declares a foreign owner")
		return models.SyncResponse[R]{}, ErrOwnerMismatch
	}

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.SyncResponse[R]{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	result, err := engine.Reconcile(ctx, userID, req.Changes)
	if err != nil {
		return models.SyncResponse[R]{}, fmt.Errorf("reconciling batch: %w", err)
	}

	return models.SyncResponse[R]{
		OwnerID:      userID,
		Acknowledged: result.Acknowledged,
		Rejected:     result.Rejected,
		SyncedAt:     result.SyncedAt,
	}, nil
}
