// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package store

import (
	"context"
	"fmt"

	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/internal/reconcile"
)

// syncStore is the full storage surface of one replicated entity: the plain
// repository methods for reads outside reconciliation, plus InTx, which binds
// one reconciliation call to one database transaction.
type syncStore[R reconcile.Record] struct {
	*entityRepository[R]

	conn    *DB
	cursors *cursorRepository
}

func newSyncStore[R reconcile.Record](db *DB, spec tableSpec[R], cursors *cursorRepository, log *logger.Logger) *syncStore[R] {
	return &syncStore[R]{
		entityRepository: newEntityRepository[R](db, spec, log),
		conn:             db,
		cursors:          cursors,
	}
}

// InTx begins a transaction, hands fn repository copies bound to it, and
// commits on success or rolls back on error or panic. Panics are rethrown.
// A store failure mid-batch therefore leaves no partial commits behind, and
// the caller may retry the whole batch.
func (s *syncStore[R]) InTx(ctx context.Context, fn func(store reconcile.Store[R], cursors reconcile.CursorStore) error) (err error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(s.entityRepository.withTx(tx), s.cursors.withTx(tx))
	return err
}
