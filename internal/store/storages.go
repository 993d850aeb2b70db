package store

import (
	"context"

	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/internal/reconcile"
	"github.com/ddanilova/organizer-sync/models"
)

// EntityStore joins the reconciliation contract with the read-only listing
// used by the query endpoints. InTx binds one reconciliation call to one
// database transaction; the plain methods run on the shared pool.
type EntityStore[R reconcile.Record] interface {
	reconcile.Store[R]
	reconcile.TxStore[R]
	ListByOwner(ctx context.Context, ownerID int64) ([]R, error)
}

// Storages bundles every repository backed by the shared database
// connection.
type Storages struct {
	Users      UserRepository
	Accounts   EntityStore[*models.Account]
	Categories EntityStore[*models.Category]
	Reminders  EntityStore[*models.Reminder]
	Events     EntityStore[*models.Event]
}

// NewStorages wires all repositories onto one database connection. The
// entity stores share the cursor repository so a reconciliation transaction
// covers the watermark write as well.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	cursors := NewCursorRepository(db, log)

	return &Storages{
		Users:      NewUserRepository(db, log),
		Accounts:   NewAccountRepository(db, cursors, log),
		Categories: NewCategoryRepository(db, cursors, log),
		Reminders:  NewReminderRepository(db, cursors, log),
		Events:     NewEventRepository(db, cursors, log),
	}
}
