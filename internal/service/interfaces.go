package service

import (
	"context"

	"github.com/ddanilova/organizer-sync/models"
)

// AuthService covers the full credential lifecycle: registration, login,
// password reset and JWT issuance/verification.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	ResetPassword(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, userID int64) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SyncService reconciles client change batches, one method per replicated
// entity type. Go interfaces cannot carry generic methods, so the four
// instantiations are spelled out.
type SyncService interface {
	SyncAccounts(ctx context.Context, userID int64, req models.SyncRequest[*models.Account]) (models.SyncResponse[*models.Account], error)
	SyncCategories(ctx context.Context, userID int64, req models.SyncRequest[*models.Category]) (models.SyncResponse[*models.Category], error)
	SyncReminders(ctx context.Context, userID int64, req models.SyncRequest[*models.Reminder]) (models.SyncResponse[*models.Reminder], error)
	SyncEvents(ctx context.Context, userID int64, req models.SyncRequest[*models.Event]) (models.SyncResponse[*models.Event], error)
}

// EntityService serves the read-only listing endpoints.
type EntityService interface {
	ListAccounts(ctx context.Context, userID int64) ([]*models.Account, error)
	ListCategories(ctx context.Context, userID int64) ([]*models.Category, error)
	ListReminders(ctx context.Context, userID int64) ([]*models.Reminder, error)
	ListEvents(ctx context.Context, userID int64) ([]*models.Event, error)
}

// HealthService reports liveness details for the public health endpoint.
type HealthService interface {
	Health(ctx context.Context) models.HealthStatus
}
