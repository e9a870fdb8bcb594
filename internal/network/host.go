//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package network

import (
	"context"
	"fmt"

	"github.com/libp2p/go-libp2p"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"
)

// ProtocolID identifies the share-custody request/response protocol on
// the libp2p stream multiplexer.
const ProtocolID = "/shard/1.0.0"

// NewHost constructs the libp2p host and the Kademlia DHT used for
// content routing. listenAddr may be empty, in which case the host
// listens on an OS-assigned loopback port (used by tests).
func NewHost(ctx context.Context, priv crypto.PrivKey, listenAddr string) (host.Host, *dht.IpfsDHT, error) {
	opts := []libp2p.Option{libp2p.Identity(priv)}
	if listenAddr != "" {
		addr, err := multiaddr.NewMultiaddr(listenAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("network: parse listen address %q: %w", listenAddr, err)
		}
		opts = append(opts, libp2p.ListenAddrs(addr))
	} else {
		opts = append(opts, libp2p.ListenAddrStrings("/ip4/127.0.0.1/tcp/0"))
	}

	h, err := libp2p.New(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("network: create host: %w", err)
	}

	kad, err := dht.New(ctx, h, dht.Mode(dht.ModeServer))
	if err != nil {
		_ = h.Close()
		return nil, nil, fmt.Errorf("network: create dht: %w", err)
	}

	return h, kad, nil
}

// Bootstrap connects to the given bootstrapper multiaddress, if any,
// and starts the DHT's routing table refresh. An empty addr skips
// dialing and bootstraps the DHT as the first node of its own network.
func Bootstrap(ctx context.Context, h host.Host, kad *dht.IpfsDHT, addr string) error {
	if addr != "" {
		info, err := peerAddrInfo(addr)
		if err != nil {
			return err
		}
		if err := h.Connect(ctx, *info); err != nil {
			return fmt.Errorf("network: dial bootstrapper %s: %w", addr, err)
		}
	}
	return kad.Bootstrap(ctx)
}

func peerAddrInfo(addr string) (*peer.AddrInfo, error) {
	maddr, err := multiaddr.NewMultiaddr(addr)
	if err != nil {
		return nil, fmt.Errorf("network: parse bootstrapper address %q: %w", addr, err)
	}
	info, err := peer.AddrInfoFromP2pAddr(maddr)
	if err != nil {
		return nil, fmt.Errorf("network: resolve bootstrapper address %q: %w", addr, err)
	}
	return info, nil
}
