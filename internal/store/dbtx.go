// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql the repositories run their statements
// through. Both *sql.DB and *sql.Tx satisfy it, so a repository can execute
// against the shared pool or against the transaction of one reconciliation
// call without knowing the difference.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
