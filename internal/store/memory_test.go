//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/shardnet/shard/internal/sharing"
)

func TestMemoryPutThenGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	entry := Entry{
		Key:   "k",
		Owner: "peerA",
		Share: sharing.Share{X: 1, Y: []byte{1, 2, 3}},
		Size:  2,
	}
	if err := m.Put(ctx, entry); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := m.Get(ctx, "k", "peerA")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Share.X != entry.Share.X {
		t.Fatalf("got x=%d want %d", got.Share.X, entry.Share.X)
	}
}

func TestMemoryGetMissingReturnsNotFound(t *testing.T) {
	m := NewMemory()
	if _, err := m.Get(context.Background(), "k", "peerA"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryIdempotentReRegistration(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	entry := Entry{
		Key:   "k",
		Owner: "peerA",
		Share: sharing.Share{X: 1, Y: []byte{9, 9}},
		Size:  2,
	}
	if err := m.Put(ctx, entry); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	if err := m.Put(ctx, entry); err != nil {
		t.Fatalf("second identical Put should succeed, got: %v", err)
	}

	all, err := m.ListByKey(ctx, "k")
	if err != nil {
		t.Fatalf("ListByKey failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected exactly one entry after idempotent re-registration, got %d", len(all))
	}
}

func TestMemoryRejectsDifferentShareOnReRegistration(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	first := Entry{Key: "k", Owner: "peerA", Share: sharing.Share{X: 1, Y: []byte{1}}, Size: 2}
	second := Entry{Key: "k", Owner: "peerA", Share: sharing.Share{X: 1, Y: []byte{2}}, Size: 2}

	if err := m.Put(ctx, first); err != nil {
		t.Fatalf("first Put failed: %v", err)
	}
	if err := m.Put(ctx, second); !errors.Is(err, ErrShareMismatch) {
		t.Fatalf("expected ErrShareMismatch, got %v", err)
	}
}

func TestMemoryAtMostOneSharePerOwner(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Put(ctx, Entry{Key: "k", Owner: "peerA", Share: sharing.Share{X: 1, Y: []byte{1}}}); err != nil {
		t.Fatalf("Put peerA failed: %v", err)
	}
	if err := m.Put(ctx, Entry{Key: "k", Owner: "peerB", Share: sharing.Share{X: 2, Y: []byte{2}}}); err != nil {
		t.Fatalf("Put peerB failed: %v", err)
	}

	all, err := m.ListByKey(ctx, "k")
	if err != nil {
		t.Fatalf("ListByKey failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries (one per owner), got %d", len(all))
	}
}

func TestMemoryUpdateMutatesInPlace(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	entry := Entry{Key: "k", Owner: "peerA", Share: sharing.Share{X: 1, Y: []byte{1, 1}}, Size: 2}
	if err := m.Put(ctx, entry); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entry.Share.Y = []byte{9, 9}
	if err := m.Update(ctx, entry); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := m.Get(ctx, "k", "peerA")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Share.Y[0] != 9 {
		t.Fatalf("Update did not take effect, got %v", got.Share.Y)
	}
}

func TestMemoryUpdateMissingReturnsNotFound(t *testing.T) {
	m := NewMemory()
	err := m.Update(context.Background(), Entry{Key: "k", Owner: "peerA"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
