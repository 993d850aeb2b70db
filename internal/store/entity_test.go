// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daria Danilova

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/internal/reconcile"
	"github.com/ddanilova/organizer-sync/models"
)

func newTestAccountRepo(t *testing.T) (*entityRepository[*models.Account], sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := newEntityRepository(&DB{DB: db, logger: l}, accountSpec(), l)
	return repo, mock, db
}

func accountColumns() []string {
	return []string{"server_id", "owner_id", "last_modified", "sync_state", "is_deleted", "email", "username", "balance"}
}

func TestEntityRepositoryCreate_AssignsServerID(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	account := &models.Account{
		SyncMeta: models.SyncMeta{OwnerID: 7, LastModified: 1000, SyncState: models.StateCreateAwaitingAck},
		Email:    "a@b.c",
		Username: "alice",
		Balance:  12.5,
	}

	mock.ExpectQuery("INSERT INTO accounts").
		WithArgs(int64(7), int64(1000), models.StateCreateAwaitingAck, false, "a@b.c", "alice", 12.5).
		WillReturnRows(sqlmock.NewRows([]string{"server_id"}).AddRow(101))

	created, err := repo.Create(context.Background(), account)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created.HasServerID() || *created.ServerID != 101 {
		t.Errorf("expected server id 101, got %v", created.ServerID)
	}
}

func TestEntityRepositoryGetByServerID_NotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM accounts").
		WithArgs(int64(7), int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByServerID(context.Background(), 7, 404)
	if !errors.Is(err, reconcile.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestEntityRepositoryGetByServerID_Success(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(accountColumns()).
		AddRow(101, 7, 1000, 0, false, "a@b.c", "alice", 12.5)

	mock.ExpectQuery("SELECT .+ FROM accounts").
		WithArgs(int64(7), int64(101)).
		WillReturnRows(rows)

	account, err := repo.GetByServerID(context.Background(), 7, 101)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Email != "a@b.c" || *account.ServerID != 101 || account.SyncState != models.StateClean {
		t.Errorf("scanned account mismatch: %+v", account)
	}
}

func TestEntityRepositoryUpdateFields_ZeroRowsMeansNotFound(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	serverID := int64(101)
	account := &models.Account{
		SyncMeta: models.SyncMeta{ServerID: &serverID, OwnerID: 7, LastModified: 2000, SyncState: models.StateClean},
		Email:    "a@b.c",
		Username: "alice",
	}

	mock.ExpectExec("UPDATE accounts").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.UpdateFields(context.Background(), account)
	if !errors.Is(err, reconcile.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestEntityRepositoryUpdateFields_WithoutServerID(t *testing.T) {
	repo, _, db := newTestAccountRepo(t)
	defer db.Close()

	account := &models.Account{SyncMeta: models.SyncMeta{OwnerID: 7}}

	_, err := repo.UpdateFields(context.Background(), account)
	if !errors.Is(err, reconcile.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestEntityRepositoryDelete(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM accounts").
		WithArgs(int64(7), int64(101)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 7, 101); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("DELETE FROM accounts").
		WithArgs(int64(7), int64(101)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 7, 101)
	if !errors.Is(err, reconcile.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound on repeated delete, got %v", err)
	}
}

func TestEntityRepositoryListDirty(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows(accountColumns()).
		AddRow(101, 7, 1000, 2, false, "a@b.c", "alice", 12.5).
		AddRow(102, 7, 1100, 4, false, "d@e.f", "alice2", 0.0)

	mock.ExpectQuery("SELECT .+ FROM accounts").
		WithArgs(int64(7), 0).
		WillReturnRows(rows)

	dirty, err := repo.ListDirty(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dirty) != 2 {
		t.Fatalf("expected 2 dirty records, got %d", len(dirty))
	}
	if dirty[0].SyncState != models.StatePendingUpdate || dirty[1].SyncState != models.StateCreateAwaitingAck {
		t.Errorf("sync states not preserved: %v, %v", dirty[0].SyncState, dirty[1].SyncState)
	}
}

func TestEntityRepositorySetState(t *testing.T) {
	repo, mock, db := newTestAccountRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE accounts").
		WithArgs(models.StateClean, int64(7), int64(101)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetState(context.Background(), 7, 101, models.StateClean); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
