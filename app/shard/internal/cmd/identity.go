//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/shardnet/shard/internal/config"
	"github.com/shardnet/shard/internal/peerid"
)

// identityFor returns a deterministic identity when deterministic is
// true, else a freshly generated random one.
func identityFor(seed int64, deterministic bool) (crypto.PrivKey, peer.ID, error) {
	if deterministic {
		return peerid.GenerateIdentityFromSeed(seed)
	}
	return peerid.GenerateIdentity()
}

// clientIdentity resolves the identity a split/combine/ls/refresh
// invocation runs as. An explicit seed takes priority (useful in tests
// and scripted scenarios); otherwise it loads the operator's persisted
// identity key, generating and saving one on first use, so the same
// operator's split and later combine/refresh run as the same PeerId —
// GetShare and RefreshShare are owner-gated on the sender's PeerId, so
// a fresh random identity every invocation could never retrieve a
// share it had registered under a previous one.
func clientIdentity(seed int64, deterministic bool) (crypto.PrivKey, peer.ID, error) {
	if deterministic {
		return identityFor(seed, true)
	}
	path, err := config.IdentityKeyPath()
	if err != nil {
		return nil, "", fmt.Errorf("resolve identity key path: %w", err)
	}
	return peerid.LoadOrGenerate(path)
}

