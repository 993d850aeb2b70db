// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// psql is the shared statement builder configured for PostgreSQL dollar
// placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Synchronization metadata columns shared by every replicated entity table.
// Payload columns are appended per entity by its tableSpec.
var metaColumns = []string{"owner_id", "last_modified", "sync_state", "is_deleted"}

// buildInsertQuery builds the INSERT for a brand-new record. The server id is
// allocated by the table's sequence and returned, so the insert and the id
// assignment are one atomic statement.
func buildInsertQuery(table string, payloadColumns []string, metaValues, payloadValues []any) (string, []any, error) {
	columns := append(append([]string{}, metaColumns...), payloadColumns...)
	values := append(append([]any{}, metaValues...), payloadValues...)

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING server_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSelectQuery builds the owner-scoped single-record SELECT.
func buildSelectQuery(table string, payloadColumns []string, ownerID, serverID int64) (string, []any, error) {
	columns := append([]string{"server_id"}, metaColumns...)
	columns = append(columns, payloadColumns...)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"server_id": serverID, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListDirtyQuery builds the pull-mode SELECT: every record of the owner
// whose sync cycle is still open, in server id order for reproducible pulls.
func buildListDirtyQuery(table string, payloadColumns []string, ownerID int64) (string, []any, error) {
	columns := append([]string{"server_id"}, metaColumns...)
	columns = append(columns, payloadColumns...)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.And{
			sq.Eq{"owner_id": ownerID},
			sq.NotEq{"sync_state": 0},
		}).
		OrderBy("server_id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateQuery builds the whole-record UPDATE: payload fields together
// with last_modified and sync_state in one statement, so a reconciliation
// outcome is committed atomically per change.
func buildUpdateQuery(table string, payloadColumns []string, metaSet map[string]any, payloadValues []any, ownerID, serverID int64) (string, []any, error) {
	builder := psql.Update(table).SetMap(metaSet)
	for i, column := range payloadColumns {
		builder = builder.Set(column, payloadValues[i])
	}

	query, args, err := builder.
		Where(sq.Eq{"server_id": serverID, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSetStateQuery builds the sync_state-only UPDATE used when a pull
// settles a dirty record.
func buildSetStateQuery(table string, ownerID, serverID int64, state any) (string, []any, error) {
	query, args, err := psql.Update(table).
		Set("sync_state", state).
		Where(sq.Eq{"server_id": serverID, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildDeleteQuery builds the owner-scoped hard DELETE.
func buildDeleteQuery(table string, ownerID, serverID int64) (string, []any, error) {
	query, args, err := psql.Delete(table).
		Where(sq.Eq{"server_id": serverID, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildCursorGetQuery builds the watermark SELECT for one owner and entity.
func buildCursorGetQuery(ownerID int64, entity string) (string, []any, error) {
	query, args, err := psql.Select("synced_at").
		From("sync_cursors").
		Where(sq.Eq{"owner_id": ownerID, "entity": entity}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildCursorUpsertQuery builds the watermark upsert keyed by owner and
// entity.
func buildCursorUpsertQuery(ownerID int64, entity string, syncedAt int64) (string, []any, error) {
	query, args, err := psql.Insert("sync_cursors").
		Columns("owner_id", "entity", "synced_at").
		Values(ownerID, entity, syncedAt).
		Suffix("ON CONFLICT (owner_id, entity) DO UPDATE SET synced_at = EXCLUDED.synced_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
