//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the durable ShareRepository backend: one row per (key,
// owner), so a restarted provider regains its custody by re-reading the
// table and re-advertising every key it finds (see ListAll).
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) a sqlite3 database at path
// and ensures the shares table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS shares (
	key   TEXT NOT NULL,
	owner TEXT NOT NULL,
	x     INTEGER NOT NULL,
	y     BLOB NOT NULL,
	size  INTEGER NOT NULL,
	PRIMARY KEY (key, owner)
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Put(ctx context.Context, entry Entry) error {
	existing, err := s.Get(ctx, entry.Key, entry.Owner)
	if err == nil {
		if !sameShare(existing, entry) {
			return ErrShareMismatch
		}
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	const insert = `INSERT INTO shares (key, owner, x, y, size) VALUES (?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, insert,
		entry.Key, entry.Owner, entry.Share.X, entry.Share.Y, entry.Size)
	if err != nil {
		return fmt.Errorf("store: insert: %w", err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key, owner string) (Entry, error) {
	const query = `SELECT x, y, size FROM shares WHERE key = ? AND owner = ?`
	row := s.db.QueryRowContext(ctx, query, key, owner)

	entry := Entry{Key: key, Owner: owner}
	if err := row.Scan(&entry.Share.X, &entry.Share.Y, &entry.Size); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("store: scan: %w", err)
	}
	return entry, nil
}

func (s *SQLite) ListByKey(ctx context.Context, key string) ([]Entry, error) {
	const query = `SELECT owner, x, y, size FROM shares WHERE key = ?`
	rows, err := s.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		entry := Entry{Key: key}
		if err := rows.Scan(&entry.Owner, &entry.Share.X, &entry.Share.Y, &entry.Size); err != nil {
			return nil, fmt.Errorf("store: scan row: %w", err)
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (s *SQLite) ListAll(ctx context.Context) ([]Entry, error) {
	const query = `SELECT key, owner, x, y, size FROM shares`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	var result []Entry
	for rows.Next() {
		var entry Entry
		if err := rows.Scan(&entry.Key, &entry.Owner, &entry.Share.X, &entry.Share.Y, &entry.Size); err != nil {
			return nil, fmt.Errorf("store: scan row: %w", err)
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (s *SQLite) Update(ctx context.Context, entry Entry) error {
	const update = `UPDATE shares SET x = ?, y = ?, size = ? WHERE key = ? AND owner = ?`
	res, err := s.db.ExecContext(ctx, update,
		entry.Share.X, entry.Share.Y, entry.Size, entry.Key, entry.Owner)
	if err != nil {
		return fmt.Errorf("store: update: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
