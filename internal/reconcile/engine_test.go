// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ddanilova/organizer-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ─────────────────────────────────────────────────────────────────────────────

// memStore is an in-memory Store[*models.Category] for engine tests. Records
// are copied on every read so the engine's mutations never alias the stored
// row, mirroring a real database round-trip.
type memStore struct {
	mu      sync.Mutex
	nextID  int64
	records map[int64]models.Category

	failNext error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[int64]models.Category)}
}

func (s *memStore) takeFailure() error {
	err := s.failNext
	s.failNext = nil
	return err
}

func (s *memStore) Create(_ context.Context, record *models.Category) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}

	s.nextID++
	id := s.nextID
	record.ServerID = &id
	s.records[id] = *record

	out := *record
	out.LocalID = 0
	return &out, nil
}

func (s *memStore) GetByServerID(_ context.Context, ownerID, serverID int64) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}

	rec, ok := s.records[serverID]
	if !ok || rec.OwnerID != ownerID {
		return nil, ErrRecordNotFound
	}
	out := rec
	out.LocalID = 0
	sid := serverID
	out.ServerID = &sid
	return &out, nil
}

func (s *memStore) UpdateFields(_ context.Context, record *models.Category) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}

	rec, ok := s.records[*record.ServerID]
	if !ok || rec.OwnerID != record.OwnerID {
		return nil, ErrRecordNotFound
	}
	s.records[*record.ServerID] = *record

	out := *record
	out.LocalID = 0
	return &out, nil
}

func (s *memStore) Delete(_ context.Context, ownerID, serverID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}

	rec, ok := s.records[serverID]
	if !ok || rec.OwnerID != ownerID {
		return ErrRecordNotFound
	}
	delete(s.records, serverID)
	return nil
}

func (s *memStore) ListDirty(_ context.Context, ownerID int64) ([]*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return nil, err
	}

	var out []*models.Category
	for id := int64(1); id <= s.nextID; id++ {
		rec, ok := s.records[id]
		if !ok || rec.OwnerID != ownerID || !rec.SyncState.Dirty() {
			continue
		}
		c := rec
		c.LocalID = 0
		sid := id
		c.ServerID = &sid
		out = append(out, &c)
	}
	return out, nil
}

func (s *memStore) SetState(_ context.Context, ownerID, serverID int64, state models.SyncState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeFailure(); err != nil {
		return err
	}

	rec, ok := s.records[serverID]
	if !ok || rec.OwnerID != ownerID {
		return ErrRecordNotFound
	}
	rec.SyncState = state
	s.records[serverID] = rec
	return nil
}

// memCursors is an in-memory CursorStore.
type memCursors struct {
	mu   sync.Mutex
	data map[string]int64
}

func newMemCursors() *memCursors {
	return &memCursors{data: make(map[string]int64)}
}

func (c *memCursors) key(ownerID int64, entity string) string {
	return fmt.Sprintf("%s/%d", entity, ownerID)
}

func (c *memCursors) Get(_ context.Context, ownerID int64, entity string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[c.key(ownerID, entity)], nil
}

func (c *memCursors) Set(_ context.Context, ownerID int64, entity string, syncedAt int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[c.key(ownerID, entity)] = syncedAt
	return nil
}

// memTx satisfies TxStore over the in-memory fakes. It has no rollback:
// transactional atomicity is the SQL store's concern and is covered by the
// store package's own tests.
type memTx struct {
	store   *memStore
	cursors *memCursors
}

func (t *memTx) InTx(_ context.Context, fn func(Store[*models.Category], CursorStore) error) error {
	return fn(t.store, t.cursors)
}

func newTestEngine(store *memStore) (*Engine[*models.Category], *memCursors) {
	cursors := newMemCursors()
	engine := NewEngine[*models.Category](&memTx{store: store, cursors: cursors}, models.EntityCategory)
	engine.now = func() time.Time { return time.UnixMilli(5_000_000) }
	return engine, cursors
}

func change(localID, serverID, lastModified int64, state models.SyncState, deleted bool, name string) *models.Category {
	c := &models.Category{
		SyncMeta: models.SyncMeta{
			LocalID:      localID,
			LastModified: lastModified,
			SyncState:    state,
			Deleted:      deleted,
		},
		Name: name,
	}
	if serverID != 0 {
		c.ServerID = &serverID
	}
	return c
}

// ─────────────────────────────────────────────────────────────────────────────
// Reconcile
// ─────────────────────────────────────────────────────────────────────────────

func TestReconcile_RejectsMissingOwner(t *testing.T) {
	engine, _ := newTestEngine(newMemStore())

	_, err := engine.Reconcile(context.Background(), 0, nil)
	require.ErrorIs(t, err, ErrNoOwner)

	_, err = engine.Reconcile(context.Background(), -4, nil)
	require.ErrorIs(t, err, ErrNoOwner)
}

func TestReconcile_CreateRoundTrip(t *testing.T) {
	store := newMemStore()
	engine, _ := newTestEngine(store)
	ctx := context.Background()

	// push: brand-new record declared as a pending create
	res, err := engine.Reconcile(ctx, 1, []*models.Category{
		change(101, 0, 1000, models.StatePendingCreate, false, "groceries"),
	})
	require.NoError(t, err)
	require.Len(t, res.Acknowledged, 1)
	require.Empty(t, res.Rejected)

	ack := res.Acknowledged[0]
	assert.Equal(t, int64(101), ack.LocalID, "local id must survive the round-trip")
	require.True(t, ack.HasServerID())
	assert.Equal(t, models.StateCreateAwaitingAck, ack.SyncState)

	// the client's next pull confirms receipt and settles the record
	res, err = engine.Reconcile(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, res.Acknowledged, 1)
	assert.Equal(t, models.StateClean, res.Acknowledged[0].SyncState)

	// a second pull finds nothing left to settle
	res, err = engine.Reconcile(ctx, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Acknowledged)
	assert.Empty(t, res.Rejected)
}

func TestReconcile_CreateWithWrongDeclaredState(t *testing.T) {
	store := newMemStore()
	engine, _ := newTestEngine(store)

	res, err := engine.Reconcile(context.Background(), 1, []*models.Category{
		change(101, 0, 1000, models.StateClean, false, "not really new"),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Acknowledged)
	require.Len(t, res.Rejected, 1)
	assert.NotEmpty(t, res.Rejected[0].RejectReason)
	assert.Empty(t, store.records, "nothing may be persisted for a rejected create")
}

func TestReconcile_NewerUpdateWins(t *testing.T) {
	store := newMemStore()
	engine, _ := newTestEngine(store)
	ctx := context.Background()

	res, err := engine.Reconcile(ctx, 1, []*models.Category{
		change(101, 0, 1000, models.StatePendingCreate, false, "original"),
	})
	require.NoError(t, err)
	serverID := *res.Acknowledged[0].ServerID

	res, err = engine.Reconcile(ctx, 1, []*models.Category{
		change(102, serverID, 2000, models.StatePendingUpdate, false, "edited"),
	})
	require.NoError(t, err)
	require.Len(t, res.Acknowledged, 1)

	ack := res.Acknowledged[0]
	assert.Equal(t, "edited", ack.Name)
	assert.Equal(t, models.StateClean, ack.SyncState)
	assert.Equal(t, int64(102), ack.LocalID)

	stored := store.records[serverID]
	assert.Equal(t, "edited", stored.Name)
	assert.Equal(t, models.StateClean, stored.SyncState)
}

func TestReconcile_StaleUpdateLoses(t *testing.T) {
	store := newMemStore()
	engine, _ := newTestEngine(store)
	ctx := context.Background()

	res, err := engine.Reconcile(ctx, 1, []*models.Category{
		change(101, 0, 2000, models.StatePendingCreate, false, "authoritative"),
	})
	require.NoError(t, err)
	serverID := *res.Acknowledged[0].ServerID

	// an older edit from a device that had not pulled yet
	res, err = engine.Reconcile(ctx, 1, []*models.Category{
		change(102, serverID, 1500, models.StatePendingUpdate, false, "stale edit"),
	})
	require.NoError(t, err)
	require.Len(t, res.Acknowledged, 1)

	// the acknowledgment carries the stored payload so the losing device
	// converges onto the server's view
	ack := res.Acknowledged[0]
	assert.Equal(t, "authoritative", ack.Name)
	assert.Equal(t, int64(2000), ack.LastModified)
	assert.Equal(t, int64(102), ack.LocalID)

	stored := store.records[serverID]
	assert.Equal(t, "authoritative", stored.Name)
}

func TestReconcile_DeleteConfirmedViaRejected(t *testing.T) {
	store := newMemStore()
	engine, _ := newTestEngine(store)
	ctx := context.Background()

	res, err := engine.Reconcile(ctx, 1, []*models.Category{
		change(101, 0, 1000, models.StatePendingCreate, false, "doomed"),
	})
	require.NoError(t, err)
	serverID := *res.Acknowledged[0].ServerID

	res, err = engine.Reconcile(ctx, 1, []*models.Category{
		change(102, serverID, 1100, models.StatePendingDelete, true, "doomed"),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Acknowledged)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, ReasonDeleted, res.Rejected[0].RejectReason)
	assert.Empty(t, store.records, "delete must purge the row")

	// retrying the same delete reports not-found instead of failing the batch
	res, err = engine.Reconcile(ctx, 1, []*models.Category{
		change(102, serverID, 1100, models.StatePendingDelete, true, "doomed"),
	})
	require.NoError(t, err)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, ReasonNotFound, res.Rejected[0].RejectReason)
}

func TestReconcile_LocalOnlyDeleteNeverPersisted(t *testing.T) {
	engine, _ := newTestEngine(newMemStore())

	res, err := engine.Reconcile(context.Background(), 1, []*models.Category{
		change(101, 0, 1000, models.StatePendingDelete, true, "created then deleted offline"),
	})
	require.NoError(t, err)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, ReasonNeverExisted, res.Rejected[0].RejectReason)
	assert.Equal(t, int64(101), res.Rejected[0].LocalID)
}

func TestReconcile_UnknownTargetDoesNotAbortBatch(t *testing.T) {
	store := newMemStore()
	engine, _ := newTestEngine(store)

	res, err := engine.Reconcile(context.Background(), 1, []*models.Category{
		change(101, 999, 1000, models.StatePendingUpdate, false, "update of a ghost"),
		change(102, 0, 1000, models.StatePendingCreate, false, "valid create"),
	})
	require.NoError(t, err)

	require.Len(t, res.Rejected, 1)
	assert.Equal(t, ReasonNotFound, res.Rejected[0].RejectReason)
	assert.Equal(t, int64(101), res.Rejected[0].LocalID)

	require.Len(t, res.Acknowledged, 1)
	assert.Equal(t, int64(102), res.Acknowledged[0].LocalID)
	assert.True(t, res.Acknowledged[0].HasServerID())
}

func TestReconcile_UnsettleableStateDoesNotAbortBatch(t *testing.T) {
	store := newMemStore()
	engine, _ := newTestEngine(store)
	ctx := context.Background()

	res, err := engine.Reconcile(ctx, 1, []*models.Category{
		change(101, 0, 1000, models.StatePendingCreate, false, "existing"),
	})
	require.NoError(t, err)
	serverID := *res.Acknowledged[0].ServerID

	// pending_delete without the deleted flag is wire-valid but can never
	// settle; it must reject that single change, not fail the call
	res, err = engine.Reconcile(ctx, 1, []*models.Category{
		change(201, 0, 1200, models.StatePendingCreate, false, "sibling create"),
		change(202, serverID, 1300, models.StatePendingDelete, false, "half-declared delete"),
	})
	require.NoError(t, err)

	require.Len(t, res.Acknowledged, 1)
	assert.Equal(t, int64(201), res.Acknowledged[0].LocalID)

	require.Len(t, res.Rejected, 1)
	assert.Equal(t, int64(202), res.Rejected[0].LocalID)
	assert.Contains(t, res.Rejected[0].RejectReason, ErrIllegalTransition.Error())

	assert.Len(t, store.records, 2, "the sibling create must be committed")
}

func TestReconcile_StoreFailureAbortsWholeCall(t *testing.T) {
	store := newMemStore()
	engine, cursors := newTestEngine(store)
	boom := errors.New("connection reset")

	store.failNext = boom
	_, err := engine.Reconcile(context.Background(), 1, []*models.Category{
		change(101, 0, 1000, models.StatePendingCreate, false, "never lands"),
	})
	require.ErrorIs(t, err, boom)

	watermark, _ := cursors.Get(context.Background(), 1, models.EntityCategory)
	assert.Zero(t, watermark, "a failed call must not advance the watermark")
}

func TestReconcile_AdvancesWatermark(t *testing.T) {
	store := newMemStore()
	engine, cursors := newTestEngine(store)
	ctx := context.Background()

	res, err := engine.Reconcile(ctx, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000), res.SyncedAt)

	watermark, err := cursors.Get(ctx, 1, models.EntityCategory)
	require.NoError(t, err)
	assert.Equal(t, int64(5_000_000), watermark)
}

func TestReconcile_OwnerIsolation(t *testing.T) {
	store := newMemStore()
	engine, _ := newTestEngine(store)
	ctx := context.Background()

	res, err := engine.Reconcile(ctx, 1, []*models.Category{
		change(101, 0, 1000, models.StatePendingCreate, false, "owner one's"),
	})
	require.NoError(t, err)
	serverID := *res.Acknowledged[0].ServerID

	// owner 2 cannot touch owner 1's record through its server id
	res, err = engine.Reconcile(ctx, 2, []*models.Category{
		change(201, serverID, 9000, models.StatePendingUpdate, false, "hijack attempt"),
	})
	require.NoError(t, err)
	assert.Empty(t, res.Acknowledged)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, ReasonNotFound, res.Rejected[0].RejectReason)
}
