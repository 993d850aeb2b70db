// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package store

import (
	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/models"
)

func accountSpec() tableSpec[*models.Account] {
	return tableSpec[*models.Account]{
		table:          "accounts",
		payloadColumns: []string{"email", "username", "balance"},
		payloadValues: func(account *models.Account) []any {
			return []any{account.Email, account.Username, account.Balance}
		},
		scan: func(row rowScanner) (*models.Account, error) {
			account := &models.Account{}
			var serverID int64
			err := row.Scan(
				&serverID,
				&account.OwnerID,
				&account.LastModified,
				&account.SyncState,
				&account.Deleted,
				&account.Email,
				&account.Username,
				&account.Balance,
			)
			if err != nil {
				return nil, err
			}
			account.ServerID = &serverID
			return account, nil
		},
	}
}

// NewAccountRepository returns the SQL-backed store for account records.
func NewAccountRepository(db *DB, cursors *cursorRepository, log *logger.Logger) *syncStore[*models.Account] {
	return newSyncStore(db, accountSpec(), cursors, log)
}
