//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package store defines the per-provider ShareRepository contract and
// its two implementations: an in-memory map (the default) and a
// sqlite-backed durable store keyed by (key, owner).
package store

import (
	"context"
	"errors"

	"github.com/shardnet/shard/internal/sharing"
)

// ErrNotFound is returned by Get when no entry exists for (key, owner).
var ErrNotFound = errors.New("store: entry not found")

// Entry is the per-provider record: the key it was registered under, the
// owning peer, the share itself, and the refresh polynomial degree
// budget. (Key, Owner) uniquely identifies an entry within a
// repository.
type Entry struct {
	Key   string
	Owner string // string form of a peer.ID; see internal/peerid
	Share sharing.Share
	Size  uint16
}

// Repository is the narrow interface every ShareRepository backend
// satisfies. It enforces no access control of its own — the network
// driver enforces the owner-binding rule before calling Put or Get.
type Repository interface {
	// Put inserts a new entry. Putting an entry for a (Key, Owner) pair
	// that already exists with an identical Share and Size is a no-op
	// that still reports success (idempotent re-registration); putting
	// one with a different Share or Size for the same (Key, Owner) is
	// an error.
	Put(ctx context.Context, entry Entry) error

	// Get returns the entry for (key, owner), or ErrNotFound.
	Get(ctx context.Context, key, owner string) (Entry, error)

	// ListByKey returns every entry registered under key, across all
	// owners currently held by this provider.
	ListByKey(ctx context.Context, key string) ([]Entry, error)

	// ListAll returns every entry held by this provider, for
	// re-advertisement on startup.
	ListAll(ctx context.Context) ([]Entry, error)

	// Update overwrites an existing entry's Share in place. Used by
	// refresh; the (Key, Owner) pair must already exist.
	Update(ctx context.Context, entry Entry) error
}

// ErrShareMismatch is returned by Put when a second registration for an
// existing (Key, Owner) pair carries a different Share or Size than the
// one on file — re-registration is idempotent only for identical
// entries.
var ErrShareMismatch = errors.New("store: share mismatch on re-registration")
