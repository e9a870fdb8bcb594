//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package client provides the async façade used by the CLI and the
// refresh scheduler to talk to a network.Driver. Every method sends
// one command and awaits its one-shot reply; cancelling the caller's
// context discards the result but not any side effect already
// in flight on the driver side.
package client

import (
	"context"

	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/shardnet/shard/internal/network"
	"github.com/shardnet/shard/internal/retry"
	"github.com/shardnet/shard/internal/sharing"
	"github.com/shardnet/shard/internal/validation"
)

// Client wraps a network.Driver's command channel. Dial and RefreshShare
// run through retrier, since both can hit a peer that is only
// momentarily unreachable (a provider mid-restart, a DHT route not yet
// settled); RegisterShare and RequestShare are left single-shot so a
// caller waiting on their result gets an immediate answer.
type Client struct {
	driver  *network.Driver
	retrier retry.Retrier
}

// New wraps driver in a Client façade.
func New(driver *network.Driver) *Client {
	return &Client{driver: driver, retrier: retry.NewExponentialRetrier()}
}

// StartListening begins listening on addr (empty uses an OS-assigned
// loopback port).
func (c *Client) StartListening(ctx context.Context, addr string) error {
	if err := validation.CheckContext(ctx); err != nil {
		return err
	}
	reply := make(chan error, 1)
	c.driver.Submit(network.StartListeningCmd{Addr: addr, Reply: reply})
	return await(ctx, reply)
}

// Dial connects to the peer at addr, retrying transient failures with
// backoff.
func (c *Client) Dial(ctx context.Context, addr string) error {
	if err := validation.CheckContext(ctx); err != nil {
		return err
	}
	return c.retrier.RetryWithBackoff(ctx, func() error {
		reply := make(chan error, 1)
		c.driver.Submit(network.DialCmd{Addr: addr, Reply: reply})
		return await(ctx, reply)
	})
}

// StartProviding advertises custody of key on the DHT.
func (c *Client) StartProviding(ctx context.Context, key string) error {
	if err := validation.CheckContext(ctx); err != nil {
		return err
	}
	reply := make(chan error, 1)
	c.driver.Submit(network.StartProvidingCmd{Key: key, Reply: reply})
	return await(ctx, reply)
}

// GetProviders resolves the DHT-advertised provider set for key.
func (c *Client) GetProviders(ctx context.Context, key string) ([]peer.ID, error) {
	if err := validation.CheckContext(ctx); err != nil {
		return nil, err
	}
	reply := make(chan network.GetProvidersResult, 1)
	c.driver.Submit(network.GetProvidersCmd{Key: key, Reply: reply})
	select {
	case res := <-reply:
		return res.Providers, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// RegisterShare delivers share to peerID for storage under key,
// binding ownership to this client's identity.
func (c *Client) RegisterShare(ctx context.Context, peerID peer.ID, key string, share sharing.Share, size uint16) error {
	if err := validation.CheckContext(ctx); err != nil {
		return err
	}
	reply := make(chan error, 1)
	c.driver.Submit(network.RegisterShareCmd{Peer: peerID, Key: key, Share: share, Size: size, Reply: reply})
	return await(ctx, reply)
}

// RequestShare asks peerID for the share it holds under key. Found is
// false both when no such key exists and when this client is not the
// recorded owner; the two cases are indistinguishable to the caller.
func (c *Client) RequestShare(ctx context.Context, peerID peer.ID, key string) (sharing.Share, bool, error) {
	if err := validation.CheckContext(ctx); err != nil {
		return sharing.Share{}, false, err
	}
	reply := make(chan network.RequestShareResult, 1)
	c.driver.Submit(network.RequestShareCmd{Peer: peerID, Key: key, Reply: reply})
	select {
	case res := <-reply:
		return res.Share, res.Found, res.Err
	case <-ctx.Done():
		return sharing.Share{}, false, ctx.Err()
	}
}

// RefreshShare sends a round's delta polynomials to peerID for key,
// retrying transient failures with backoff.
func (c *Client) RefreshShare(ctx context.Context, peerID peer.ID, key string, polyCoefficients [][]byte) error {
	if err := validation.CheckContext(ctx); err != nil {
		return err
	}
	return c.retrier.RetryWithBackoff(ctx, func() error {
		reply := make(chan error, 1)
		c.driver.Submit(network.RefreshShareCmd{Peer: peerID, Key: key, PolyCoefficients: polyCoefficients, Reply: reply})
		return await(ctx, reply)
	})
}

func await(ctx context.Context, reply chan error) error {
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
