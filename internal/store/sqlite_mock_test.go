//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/shardnet/shard/internal/sharing"
)

// TestSQLitePutSurfacesDriverErrors exercises the storage-fault path
// using a mocked driver, so failure modes that are awkward to provoke
// against a live database are easy to trigger deterministically.
func TestSQLitePutSurfacesDriverErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	defer db.Close()

	repo := &SQLite{db: db}
	ctx := context.Background()

	mock.ExpectQuery(`SELECT x, y, size FROM shares WHERE key = \? AND owner = \?`).
		WithArgs("k", "peerA").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO shares`).
		WithArgs("k", "peerA", byte(1), []byte{1, 2}, uint16(0)).
		WillReturnError(errors.New("disk I/O error"))

	entry := Entry{Key: "k", Owner: "peerA", Share: sharing.Share{X: 1, Y: []byte{1, 2}}}

	if err := repo.Put(ctx, entry); err == nil {
		t.Fatal("expected Put to surface the simulated driver error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}
