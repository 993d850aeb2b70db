// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/models"
)

// Result is the outcome of one reconciliation call. Batch order is preserved:
// the n-th acknowledged or rejected entry was produced by the n-th change
// that landed in that list.
type Result[R Record] struct {
	Acknowledged []R
	Rejected     []R

	// SyncedAt is the watermark recorded for this owner and entity at the end
	// of the call, epoch milliseconds.
	SyncedAt int64
}

// Engine reconciles client change batches for one entity type. It is safe
// for concurrent use; calls for the same owner are serialized internally,
// calls for different owners share no mutable state beyond the store.
type Engine[R Record] struct {
	tx     TxStore[R]
	entity string
	locks  *ownerLocks

	// now returns the current time; replaced in tests.
	now func() time.Time
}

// NewEngine constructs a reconciliation engine for one entity type. The
// entity label scopes watermarks and log fields (e.g. "category").
func NewEngine[R Record](tx TxStore[R], entity string) *Engine[R] {
	return &Engine[R]{
		tx:     tx,
		entity: entity,
		locks:  newOwnerLocks(),
		now:    time.Now,
	}
}

// Reconcile merges a batch of client-declared changes with the authoritative
// store and returns the acknowledged/rejected split.
//
// An empty batch is a pull: every dirty record of the owner is reset to clean
// and returned as acknowledged, closing its sync cycle.
//
// A non-empty batch is processed change by change, in order:
//
//   - no server id, not deleted: create; the persisted record (with its new
//     server id, awaiting acknowledgment) is acknowledged.
//   - no server id, deleted: rejected untouched; nothing ever existed
//     server-side, the client purges its local-only copy.
//   - server id, not deleted: conflict-resolved against the stored record
//     (see [Resolve]), persisted, reset to clean, acknowledged.
//   - server id, deleted: hard-deleted; the change lands in rejected as the
//     delete confirmation.
//
// A change referencing an unknown server id, or declaring a state the
// lifecycle cannot settle, rejects that single change and the batch
// continues. The whole call runs inside one storage transaction: a store
// failure aborts it, rolls back every statement made on its behalf, and the
// caller may safely retry the batch.
func (e *Engine[R]) Reconcile(ctx context.Context, ownerID int64, changes []R) (Result[R], error) {
	if ownerID <= 0 {
		return Result[R]{}, ErrNoOwner
	}

	unlock := e.locks.lock(ownerID)
	defer unlock()

	log := logger.FromContext(ctx)

	var (
		res      Result[R]
		syncedAt int64
	)
	err := e.tx.InTx(ctx, func(store Store[R], cursors CursorStore) error {
		var err error
		if len(changes) == 0 {
			res, err = e.pull(ctx, store, ownerID)
		} else {
			res, err = e.push(ctx, store, ownerID, changes)
		}
		if err != nil {
			return err
		}

		syncedAt = e.now().UnixMilli()
		if err := cursors.Set(ctx, ownerID, e.entity, syncedAt); err != nil {
			log.Err(err).
				Str("entity", e.entity).
				Int64("owner_id", ownerID).
				Msg("failed to record sync watermark")
			return fmt.Errorf("recording sync watermark: %w", err)
		}

		return nil
	})
	if err != nil {
		return Result[R]{}, err
	}
	res.SyncedAt = syncedAt

	log.Info().
		Str("entity", e.entity).
		Int64("owner_id", ownerID).
		Int("changes", len(changes)).
		Int("acknowledged", len(res.Acknowledged)).
		Int("rejected", len(res.Rejected)).
		Msg("reconciliation completed")

	return res, nil
}

// pull serves an empty batch: it hands back every record the server has
// created or updated on the owner's behalf (another device's edits included)
// and eagerly closes their sync cycle. Delivery is at-least-once; re-running
// a pull after the reset finds nothing dirty and returns an empty result.
func (e *Engine[R]) pull(ctx context.Context, store Store[R], ownerID int64) (Result[R], error) {
	log := logger.FromContext(ctx)

	dirty, err := store.ListDirty(ctx, ownerID)
	if err != nil {
		return Result[R]{}, fmt.Errorf("listing dirty records: %w", err)
	}

	var res Result[R]
	for _, record := range dirty {
		meta := record.Meta()

		if stepErr := Step(meta.SyncState, models.StateClean); stepErr != nil {
			log.Warn().
				Str("entity", e.entity).
				Int64("owner_id", ownerID).
				Int64("server_id", serverID(meta)).
				Str("sync_state", meta.SyncState.String()).
				Msg("dirty record in a state that cannot settle, skipping")
			continue
		}

		if err := store.SetState(ctx, ownerID, *meta.ServerID, models.StateClean); err != nil {
			return Result[R]{}, fmt.Errorf("settling record %d: %w", *meta.ServerID, err)
		}

		settled, err := store.GetByServerID(ctx, ownerID, *meta.ServerID)
		if err != nil {
			return Result[R]{}, fmt.Errorf("re-reading settled record %d: %w", *meta.ServerID, err)
		}

		res.Acknowledged = append(res.Acknowledged, RestoreIdentity(meta.LocalID, settled))
	}

	return res, nil
}

// push processes a non-empty batch change by change.
func (e *Engine[R]) push(ctx context.Context, store Store[R], ownerID int64, changes []R) (Result[R], error) {
	var res Result[R]

	for i, change := range changes {
		meta := change.Meta()
		// Incoming owner ids are untrusted; the authenticated owner wins.
		meta.OwnerID = ownerID

		var err error
		switch {
		case !meta.HasServerID() && !meta.Deleted:
			err = e.create(ctx, store, change, &res)
		case !meta.HasServerID() && meta.Deleted:
			meta.RejectReason = ReasonNeverExisted
			res.Rejected = append(res.Rejected, change)
		case meta.Deleted:
			err = e.delete(ctx, store, change, &res)
		default:
			err = e.update(ctx, store, change, &res)
		}

		if err != nil {
			return Result[R]{}, fmt.Errorf("change %d (local id %d): %w", i, meta.LocalID, err)
		}
	}

	return res, nil
}

// create persists a brand-new record and acknowledges it. The stored state is
// CreateAwaitingAck: the client's next pull confirms receipt and settles it.
func (e *Engine[R]) create(ctx context.Context, store Store[R], change R, res *Result[R]) error {
	log := logger.FromContext(ctx)
	meta := change.Meta()

	if err := Step(meta.SyncState, models.StateCreateAwaitingAck); err != nil {
		log.Warn().
			Str("entity", e.entity).
			Int64("local_id", meta.LocalID).
			Str("sync_state", meta.SyncState.String()).
			Msg("record without server id did not declare a create, rejecting")
		meta.RejectReason = fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, meta.SyncState, models.StateCreateAwaitingAck)
		res.Rejected = append(res.Rejected, change)
		return nil
	}

	meta.SyncState = models.StateCreateAwaitingAck
	created, err := store.Create(ctx, change)
	if err != nil {
		return fmt.Errorf("creating record: %w", err)
	}

	log.Debug().
		Str("entity", e.entity).
		Int64("owner_id", meta.OwnerID).
		Int64("local_id", meta.LocalID).
		Int64("server_id", serverID(created.Meta())).
		Msg("record created")

	res.Acknowledged = append(res.Acknowledged, RestoreIdentity(meta.LocalID, created))
	return nil
}

// update conflict-resolves the change against the stored record, persists the
// winner and settles it to clean in the same statement.
func (e *Engine[R]) update(ctx context.Context, store Store[R], change R, res *Result[R]) error {
	log := logger.FromContext(ctx)
	meta := change.Meta()

	stored, err := store.GetByServerID(ctx, meta.OwnerID, *meta.ServerID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			meta.RejectReason = ReasonNotFound
			res.Rejected = append(res.Rejected, change)
			return nil
		}
		return fmt.Errorf("reading record %d: %w", *meta.ServerID, err)
	}

	resolved, stale := Resolve(change, stored)
	rm := resolved.Meta()
	if stale {
		log.Debug().
			Str("entity", e.entity).
			Int64("server_id", *rm.ServerID).
			Int64("incoming_last_modified", meta.LastModified).
			Int64("stored_last_modified", rm.LastModified).
			Msg("stale change, stored record wins")
	}

	// A declared state the lifecycle cannot settle (e.g. pending_delete on a
	// record that is not flagged deleted) is the client's defect, not the
	// batch's: reject the single change and keep going.
	if err := Step(rm.SyncState, models.StateClean); err != nil {
		log.Warn().
			Str("entity", e.entity).
			Int64("server_id", *rm.ServerID).
			Str("sync_state", rm.SyncState.String()).
			Msg("change declares a state that cannot settle, rejecting")
		meta.RejectReason = fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, rm.SyncState, models.StateClean)
		res.Rejected = append(res.Rejected, change)
		return nil
	}
	rm.SyncState = models.StateClean

	updated, err := store.UpdateFields(ctx, resolved)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			meta.RejectReason = ReasonNotFound
			res.Rejected = append(res.Rejected, change)
			return nil
		}
		return fmt.Errorf("updating record %d: %w", *rm.ServerID, err)
	}

	res.Acknowledged = append(res.Acknowledged, RestoreIdentity(meta.LocalID, updated))
	return nil
}

// delete hard-deletes the record and confirms it through the rejected list:
// the server id is gone and the client must stop tracking it locally.
func (e *Engine[R]) delete(ctx context.Context, store Store[R], change R, res *Result[R]) error {
	log := logger.FromContext(ctx)
	meta := change.Meta()

	err := store.Delete(ctx, meta.OwnerID, *meta.ServerID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			meta.RejectReason = ReasonNotFound
			res.Rejected = append(res.Rejected, change)
			return nil
		}
		return fmt.Errorf("deleting record %d: %w", *meta.ServerID, err)
	}

	log.Debug().
		Str("entity", e.entity).
		Int64("owner_id", meta.OwnerID).
		Int64("server_id", *meta.ServerID).
		Msg("record hard-deleted")

	meta.RejectReason = ReasonDeleted
	res.Rejected = append(res.Rejected, change)
	return nil
}

// serverID is a nil-safe accessor for log fields.
func serverID(m *models.SyncMeta) int64 {
	if m.ServerID == nil {
		return 0
	}
	return *m.ServerID
}
