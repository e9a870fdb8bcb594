//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package network implements the substrate-facing half of a provider:
// a libp2p host and Kademlia DHT, the wire protocol handler for
// RegisterShare/GetShare/RefreshShare, and a single-writer event loop
// (Driver) that is the only goroutine allowed to mutate the share
// repository or the swarm. Callers reach the driver through
// internal/client, never directly.
package network
