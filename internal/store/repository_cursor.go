// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ddanilova/organizer-sync/internal/logger"
)

// cursorRepository persists per-owner, per-entity synchronization watermarks
// in the "sync_cursors" table. It implements [reconcile.CursorStore].
type cursorRepository struct {
	logger *logger.Logger
	db     DBTX
}

// NewCursorRepository constructs a cursor store backed by the provided
// database connection.
func NewCursorRepository(db DBTX, log *logger.Logger) *cursorRepository {
	return &cursorRepository{
		db:     db,
		logger: log,
	}
}

// withTx returns a copy of the repository whose statements run inside tx.
func (r *cursorRepository) withTx(tx *sql.Tx) *cursorRepository {
	cp := *r
	cp.db = tx
	return &cp
}

// Get returns the stored watermark for the owner and entity, or zero when no
// sync has completed yet.
func (r *cursorRepository) Get(ctx context.Context, ownerID int64, entity string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCursorGetQuery(ownerID, entity)
	if err != nil {
		return 0, err
	}

	var syncedAt int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&syncedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		log.Error().Str("func", "Get").Err(err).Msg("select failed")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return syncedAt, nil
}

// Set upserts the watermark for the owner and entity.
func (r *cursorRepository) Set(ctx context.Context, ownerID int64, entity string, syncedAt int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildCursorUpsertQuery(ownerID, entity, syncedAt)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error().Str("func", "Set").Err(err).Msg("upsert failed")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
