// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package store

import (
	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/models"
)

func categorySpec() tableSpec[*models.Category] {
	return tableSpec[*models.Category]{
		table:          "categories",
		payloadColumns: []string{"name", "description", "color", "icon"},
		payloadValues: func(category *models.Category) []any {
			return []any{category.Name, category.Description, category.Color, category.Icon}
		},
		scan: func(row rowScanner) (*models.Category, error) {
			category := &models.Category{}
			var serverID int64
			err := row.Scan(
				&serverID,
				&category.OwnerID,
				&category.LastModified,
				&category.SyncState,
				&category.Deleted,
				&category.Name,
				&category.Description,
				&category.Color,
				&category.Icon,
			)
			if err != nil {
				return nil, err
			}
			category.ServerID = &serverID
			return category, nil
		},
	}
}

// NewCategoryRepository returns the SQL-backed store for category records.
func NewCategoryRepository(db *DB, cursors *cursorRepository, log *logger.Logger) *syncStore[*models.Category] {
	return newSyncStore(db, categorySpec(), cursors, log)
}
