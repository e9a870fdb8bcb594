//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package scheduler runs a provider's periodic proactive-refresh
// rounds: for each locally held share, generate zero-constant-term
// delta polynomials, send them to every co-provider discovered via
// the DHT, then apply the same coefficients to the local share.
package scheduler

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/shardnet/shard/internal/client"
	"github.com/shardnet/shard/internal/log"
	"github.com/shardnet/shard/internal/sharing"
	"github.com/shardnet/shard/internal/store"
)

// Scheduler drives periodic refresh rounds against repo via client,
// identifying itself as self so it can skip sending a round to its
// own entry.
type Scheduler struct {
	client *client.Client
	repo   store.Repository
	self   peer.ID

	interval time.Duration
}

// New builds a Scheduler that fires every interval, jittering its
// first round to avoid fleet-wide synchronization.
func New(c *client.Client, repo store.Repository, self peer.ID, interval time.Duration) *Scheduler {
	return &Scheduler{client: c, repo: repo, self: self, interval: interval}
}

// Run blocks, firing refresh rounds every interval until ctx is
// cancelled. Cancellation between rounds stops the scheduler cleanly;
// a round already in progress is allowed to finish.
func (s *Scheduler) Run(ctx context.Context) {
	if err := sleepJitter(ctx, s.interval); err != nil {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runRound(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runRound(ctx)
		}
	}
}

func (s *Scheduler) runRound(ctx context.Context) {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Audit(log.Entry{Action: log.ActionRefreshed, Ok: false, Err: err.Error()})
		return
	}

	for _, entry := range entries {
		s.refreshEntry(ctx, entry)
	}
}

func (s *Scheduler) refreshEntry(ctx context.Context, entry store.Entry) {
	coeffs, err := sharing.BuildRefreshPolynomials(int(entry.Size), len(entry.Share.Y))
	if err != nil {
		log.Audit(log.Entry{Action: log.ActionRefreshed, Key: entry.Key, Ok: false, Err: err.Error()})
		return
	}

	providers, err := s.client.GetProviders(ctx, entry.Key)
	if err != nil {
		log.Audit(log.Entry{Action: log.ActionRefreshed, Key: entry.Key, Ok: false, Err: err.Error()})
	}

	for _, p := range providers {
		if p == s.self {
			continue
		}
		if err := s.client.RefreshShare(ctx, p, entry.Key, coeffs); err != nil {
			log.Audit(log.Entry{Action: log.ActionRefreshed, Key: entry.Key, Peer: p.String(), Ok: false, Err: err.Error()})
			continue
		}
		log.Audit(log.Entry{Action: log.ActionRefreshed, Key: entry.Key, Peer: p.String(), Ok: true})
	}

	entry.Share = sharing.RefreshShare(entry.Share, coeffs)
	if err := s.repo.Update(ctx, entry); err != nil {
		log.Audit(log.Entry{Action: log.ActionRefreshed, Key: entry.Key, Peer: s.self.String(), Ok: false, Err: err.Error()})
	}
}

// sleepJitter waits a random fraction (up to one quarter) of interval
// before the first round, so many providers starting at once don't
// all fire their first refresh in lockstep.
func sleepJitter(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	maxJitter := interval / 4
	if maxJitter <= 0 {
		return nil
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(maxJitter)))
	if err != nil {
		return nil
	}

	timer := time.NewTimer(time.Duration(n.Int64()))
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
