package reconcile

import (
	"context"

	"github.com/ddanilova/organizer-sync/models"
)

// Record is any replicated entity: a pointer to a model embedding
// [models.SyncMeta]. The engine manipulates records exclusively through the
// promoted Meta accessor and never inspects payload fields.
type Record interface {
	Meta() *models.SyncMeta
}

// Store is the narrow per-entity persistence contract the engine depends on.
// The engine only ever sees a Store through [TxStore.InTx], so implementations
// are bound to the transaction of the surrounding reconciliation call.
type Store[R Record] interface {
	// Create persists a brand-new record, assigns its server id and returns
	// the persisted row. The record's SyncState is stored as provided.
	Create(ctx context.Context, record R) (R, error)

	// GetByServerID fetches one record scoped to its owner.
	// Returns a not-found error when no such row exists.
	GetByServerID(ctx context.Context, ownerID, serverID int64) (R, error)

	// UpdateFields overwrites the record's payload fields together with its
	// last_modified and sync_state columns in one statement, then returns the
	// re-read row. Returns a not-found error when no such row exists.
	UpdateFields(ctx context.Context, record R) (R, error)

	// Delete hard-deletes the record. Returns a not-found error when no such
	// row exists.
	Delete(ctx context.Context, ownerID, serverID int64) error

	// ListDirty returns every record of the owner whose sync_state is not
	// clean, ordered by server id for reproducible pulls.
	ListDirty(ctx context.Context, ownerID int64) ([]R, error)

	// SetState updates only the sync_state column of one record.
	SetState(ctx context.Context, ownerID, serverID int64, state models.SyncState) error
}

// CursorStore persists the per-owner-per-entity lastSyncAt watermark so the
// server does not have to infer "what the client already has" from dirty
// flags alone.
type CursorStore interface {
	// Get returns the watermark in epoch milliseconds, zero when the owner
	// has never synchronized this entity.
	Get(ctx context.Context, ownerID int64, entity string) (int64, error)

	// Set upserts the watermark.
	Set(ctx context.Context, ownerID int64, entity string, syncedAt int64) error
}

// TxStore opens one storage transaction per reconciliation call. The Store
// and CursorStore handed to fn are bound to that transaction: a non-nil
// error from fn rolls every statement back, a nil return commits them
// together. A failed call therefore leaves no partial state and the caller
// may retry the whole batch.
type TxStore[R Record] interface {
	InTx(ctx context.Context, fn func(store Store[R], cursors CursorStore) error) error
}
