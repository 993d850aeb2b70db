// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package store

import (
	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/models"
)

func reminderSpec() tableSpec[*models.Reminder] {
	return tableSpec[*models.Reminder]{
		table:          "reminders",
		payloadColumns: []string{"reminder_time", "frequency", "status", "message"},
		payloadValues: func(reminder *models.Reminder) []any {
			return []any{reminder.ReminderTime, reminder.Frequency, reminder.Status, reminder.Message}
		},
		scan: func(row rowScanner) (*models.Reminder, error) {
			reminder := &models.Reminder{}
			var serverID int64
			err := row.Scan(
				&serverID,
				&reminder.OwnerID,
				&reminder.LastModified,
				&reminder.SyncState,
				&reminder.Deleted,
				&reminder.ReminderTime,
				&reminder.Frequency,
				&reminder.Status,
				&reminder.Message,
			)
			if err != nil {
				return nil, err
			}
			reminder.ServerID = &serverID
			return reminder, nil
		},
	}
}

// NewReminderRepository returns the SQL-backed store for reminder records.
func NewReminderRepository(db *DB, cursors *cursorRepository, log *logger.Logger) *syncStore[*models.Reminder] {
	return newSyncStore(db, reminderSpec(), cursors, log)
}
