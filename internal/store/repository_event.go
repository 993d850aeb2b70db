// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package store

import (
	"database/sql"

	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/models"
)

// Events reference categories and reminders through optional foreign keys.
// A zero id on the model means "no reference" and is stored as NULL.
func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

func eventSpec() tableSpec[*models.Event] {
	return tableSpec[*models.Event]{
		table: "events",
		payloadColumns: []string{
			"category_id", "reminder_id", "title", "descr",
			"date", "start_time", "end_time", "priority", "location",
		},
		payloadValues: func(event *models.Event) []any {
			return []any{
				nullableID(event.CategoryID),
				nullableID(event.ReminderID),
				event.Title,
				event.Descr,
				event.Date,
				event.StartTime,
				event.EndTime,
				event.Priority,
				event.Location,
			}
		},
		scan: func(row rowScanner) (*models.Event, error) {
			event := &models.Event{}
			var serverID int64
			var categoryID, reminderID sql.NullInt64
			err := row.Scan(
				&serverID,
				&event.OwnerID,
				&event.LastModified,
				&event.SyncState,
				&event.Deleted,
				&categoryID,
				&reminderID,
				&event.Title,
				&event.Descr,
				&event.Date,
				&event.StartTime,
				&event.EndTime,
				&event.Priority,
				&event.Location,
			)
			if err != nil {
				return nil, err
			}
			event.ServerID = &serverID
			event.CategoryID = categoryID.Int64
			event.ReminderID = reminderID.Int64
			return event, nil
		},
	}
}

// NewEventRepository returns the SQL-backed store for event records.
func NewEventRepository(db *DB, cursors *cursorRepository, log *logger.Logger) *syncStore[*models.Event] {
	return newSyncStore(db, eventSpec(), cursors, log)
}
