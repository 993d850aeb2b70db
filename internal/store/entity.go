// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/internal/reconcile"
	"github.com/ddanilova/organizer-sync/models"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// tableSpec describes how one replicated entity maps onto its table: the
// table name, its payload columns beyond the shared sync metadata, and the
// two directions of the mapping.
type tableSpec[R reconcile.Record] struct {
	table          string
	payloadColumns []string
	payloadValues  func(record R) []any
	scan           func(row rowScanner) (R, error)
}

// entityRepository is the SQL-backed store for one replicated entity. All of
// its methods are owner-scoped: a record is only visible through the
// (owner_id, server_id) pair it was created under.
//
// Statements run through the db runner, which is either the shared pool or
// a per-reconcile transaction (see withTx).
type entityRepository[R reconcile.Record] struct {
	db     DBTX
	spec   tableSpec[R]
	logger *logger.Logger
}

func newEntityRepository[R reconcile.Record](db DBTX, spec tableSpec[R], log *logger.Logger) *entityRepository[R] {
	return &entityRepository[R]{
		db:     db,
		spec:   spec,
		logger: log,
	}
}

// withTx returns a copy of the repository whose statements run inside tx.
func (r *entityRepository[R]) withTx(tx *sql.Tx) *entityRepository[R] {
	cp := *r
	cp.db = tx
	return &cp
}

// Create inserts the record and assigns its server id from the table's
// sequence. The stored copy, with the assigned id in place, is returned.
func (r *entityRepository[R]) Create(ctx context.Context, record R) (R, error) {
	log := logger.FromContext(ctx)
	meta := record.Meta()

	query, args, err := buildInsertQuery(
		r.spec.table,
		r.spec.payloadColumns,
		[]any{meta.OwnerID, meta.LastModified, meta.SyncState, meta.Deleted},
		r.spec.payloadValues(record),
	)
	if err != nil {
		var zero R
		return zero, err
	}

	var serverID int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&serverID); err != nil {
		log.Error().Str("func", "Create").Err(err).Msg("insert failed")
		var zero R
		return zero, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	meta.ServerID = &serverID

	return record, nil
}

// GetByServerID reads one record of the owner. A missing row is reported as
// reconcile.ErrRecordNotFound.
func (r *entityRepository[R]) GetByServerID(ctx context.Context, ownerID, serverID int64) (R, error) {
	log := logger.FromContext(ctx)
	var zero R

	query, args, err := buildSelectQuery(r.spec.table, r.spec.payloadColumns, ownerID, serverID)
	if err != nil {
		return zero, err
	}

	record, err := r.spec.scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, reconcile.ErrRecordNotFound
		}
		log.Error().Str("func", "GetByServerID").Err(err).Msg("select failed")
		return zero, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

// UpdateFields writes the record's payload and sync metadata back to its row.
// The row must already exist; otherwise reconcile.ErrRecordNotFound.
func (r *entityRepository[R]) UpdateFields(ctx context.Context, record R) (R, error) {
	log := logger.FromContext(ctx)
	var zero R
	meta := record.Meta()

	if !record.Meta().HasServerID() {
		return zero, reconcile.ErrRecordNotFound
	}

	query, args, err := buildUpdateQuery(
		r.spec.table,
		r.spec.payloadColumns,
		map[string]any{
			"last_modified": meta.LastModified,
			"sync_state":    meta.SyncState,
			"is_deleted":    meta.Deleted,
		},
		r.spec.payloadValues(record),
		meta.OwnerID,
		*meta.ServerID,
	)
	if err != nil {
		return zero, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error().Str("func", "UpdateFields").Err(err).Msg("update failed")
		return zero, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return zero, reconcile.ErrRecordNotFound
	}

	return record, nil
}

// Delete removes the owner's record permanently. A missing row is reported as
// reconcile.ErrRecordNotFound so a retried delete stays idempotent.
func (r *entityRepository[R]) Delete(ctx context.Context, ownerID, serverID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(r.spec.table, ownerID, serverID)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error().Str("func", "Delete").Err(err).Msg("delete failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return reconcile.ErrRecordNotFound
	}

	return nil
}

// ListDirty returns every record of the owner with an open sync cycle, in
// server id order.
func (r *entityRepository[R]) ListDirty(ctx context.Context, ownerID int64) ([]R, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListDirtyQuery(r.spec.table, r.spec.payloadColumns, ownerID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error().Str("func", "ListDirty").Err(err).Msg("select failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []R
	for rows.Next() {
		record, err := r.spec.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// SetState rewrites only the record's sync_state.
func (r *entityRepository[R]) SetState(ctx context.Context, ownerID, serverID int64, state models.SyncState) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSetStateQuery(r.spec.table, ownerID, serverID, state)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error().Str("func", "SetState").Err(err).Msg("update failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return reconcile.ErrRecordNotFound
	}

	return nil
}

// ListByOwner returns every live record of the owner, in server id order.
// Used by the read-only list endpoints, not by reconciliation.
func (r *entityRepository[R]) ListByOwner(ctx context.Context, ownerID int64) ([]R, error) {
	log := logger.FromContext(ctx)

	columns := append([]string{"server_id"}, metaColumns...)
	columns = append(columns, r.spec.payloadColumns...)

	query, args, err := psql.Select(columns...).
		From(r.spec.table).
		Where(sq.Eq{"owner_id": ownerID, "is_deleted": false}).
		OrderBy("server_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error().Str("func", "ListByOwner").Err(err).Msg("select failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []R
	for rows.Next() {
		record, err := r.spec.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
