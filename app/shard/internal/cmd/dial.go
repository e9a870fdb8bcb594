//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"

	"github.com/shardnet/shard/internal/client"
)

// dialProvider connects to a provider given its full multiaddress
// (including a /p2p/<id> suffix) and returns its peer id.
func dialProvider(ctx context.Context, c *client.Client, addr string) (peer.ID, error) {
	maddr, err := multiaddr.NewMultiaddr(addr)
	if err != nil {
		return "", fmt.Errorf("parse provider address %q: %w", addr, err)
	}
	info, err := peer.AddrInfoFromP2pAddr(maddr)
	if err != nil {
		return "", fmt.Errorf("resolve provider address %q: %w", addr, err)
	}
	if err := c.Dial(ctx, addr); err != nil {
		return "", err
	}
	return info.ID, nil
}
