//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/shardnet/shard/internal/client"
	"github.com/shardnet/shard/internal/network"
	"github.com/shardnet/shard/internal/peerid"
	"github.com/shardnet/shard/internal/sharing"
	"github.com/shardnet/shard/internal/store"
)

func newDriver(t *testing.T, ctx context.Context, seed int64) (*network.Driver, store.Repository) {
	t.Helper()
	priv, _, err := peerid.GenerateIdentityFromSeed(seed)
	if err != nil {
		t.Fatalf("GenerateIdentityFromSeed: %v", err)
	}
	h, kad, err := network.NewHost(ctx, priv, "")
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })

	repo := store.NewMemory()
	d := network.NewDriver(h, kad, repo)
	go d.Run(ctx)
	return d, repo
}

func TestSchedulerRefreshesLocalEntryEachRound(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	driver, repo := newDriver(t, ctx, 100)
	c := client.New(driver)

	original := sharing.Share{X: 7, Y: []byte("secretz")}
	entry := store.Entry{Key: "k", Owner: "owner-1", Share: original, Size: 2}
	if err := repo.Put(ctx, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}

	sched := New(c, repo, "", 30*time.Millisecond)
	sched.runRound(ctx)

	updated, err := repo.Get(ctx, "k", "owner-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if updated.Share.X != original.X {
		t.Fatalf("expected x to stay %d, got %d", original.X, updated.Share.X)
	}
	if string(updated.Share.Y) == string(original.Y) {
		t.Fatal("expected refresh round to change the share's y bytes")
	}
}

func TestSleepJitterHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepJitter(ctx, time.Hour); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestSleepJitterReturnsImmediatelyForZeroInterval(t *testing.T) {
	if err := sleepJitter(context.Background(), 0); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
