//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package network

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/ipfs/go-cid"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/network"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"
	"github.com/multiformats/go-multihash"

	"github.com/shardnet/shard/internal/entity/v1/reqres"
	"github.com/shardnet/shard/internal/log"
	"github.com/shardnet/shard/internal/sharing"
	"github.com/shardnet/shard/internal/store"
)

// Driver is the single goroutine allowed to mutate the share
// repository or the swarm. Every other goroutine (Client API callers,
// the inbound stream handler, the refresh scheduler) communicates with
// it exclusively through the command channel.
type Driver struct {
	host host.Host
	kad  *dht.IpfsDHT
	repo store.Repository

	commands chan command
	inbound  chan *inboundRequestCmd

	bootstrapped   chan struct{}
	pendingProvide []pendingProvide
}

type pendingProvide struct {
	key   string
	reply chan error
}

// NewDriver wires a libp2p host, its DHT, and a repository into a
// driver. Callers still must call Run to start the event loop and
// SetStreamHandler is invoked internally to route inbound requests.
func NewDriver(h host.Host, kad *dht.IpfsDHT, repo store.Repository) *Driver {
	d := &Driver{
		host:         h,
		kad:          kad,
		repo:         repo,
		commands:     make(chan command, 64),
		inbound:      make(chan *inboundRequestCmd, 64),
		bootstrapped: make(chan struct{}),
	}
	h.SetStreamHandler(ProtocolID, d.acceptStream)
	h.Network().Notify(&network.NotifyBundle{
		ConnectedF: func(network.Network, network.Conn) {
			d.Submit(connectedCmd{})
		},
	})
	return d
}

// Submit enqueues a command for the event loop. It never blocks the
// caller past the channel's buffer; callers awaiting a result read
// from the command's own reply channel.
func (d *Driver) Submit(cmd command) {
	d.commands <- cmd
}

// Run processes commands and inbound requests in arrival order until
// ctx is cancelled. On cancellation, queued commands and deferred
// StartProviding calls are answered with ctx's error and the loop
// returns; inbound requests still queued are not answered. The loop
// does not watch the host: closing the host alone does not stop it.
func (d *Driver) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.drain(ctx.Err())
			return
		case cmd := <-d.commands:
			d.handleCommand(ctx, cmd)
		case req := <-d.inbound:
			d.handleInboundCmd(ctx, req)
		}
	}
}

func (d *Driver) drain(cause error) {
	for _, p := range d.pendingProvide {
		p.reply <- cause
	}
	d.pendingProvide = nil
	for {
		select {
		case cmd := <-d.commands:
			failCommand(cmd, cause)
		default:
			return
		}
	}
}

func failCommand(cmd command, cause error) {
	switch c := cmd.(type) {
	case StartListeningCmd:
		c.Reply <- cause
	case DialCmd:
		c.Reply <- cause
	case GetProvidersCmd:
		c.Reply <- GetProvidersResult{Err: cause}
	case StartProvidingCmd:
		c.Reply <- cause
	case RequestShareCmd:
		c.Reply <- RequestShareResult{Err: cause}
	case RegisterShareCmd:
		c.Reply <- cause
	case RefreshShareCmd:
		c.Reply <- cause
	}
}

func (d *Driver) handleCommand(ctx context.Context, cmd command) {
	switch c := cmd.(type) {
	case StartListeningCmd:
		c.Reply <- d.startListening(c.Addr)
	case DialCmd:
		c.Reply <- d.dial(ctx, c.Addr)
	case GetProvidersCmd:
		c.Reply <- d.getProviders(ctx, c.Key)
	case StartProvidingCmd:
		d.startProviding(ctx, c.Key, c.Reply)
	case RequestShareCmd:
		c.Reply <- d.requestShare(ctx, c.Peer, c.Key)
	case RegisterShareCmd:
		c.Reply <- d.registerShare(ctx, c.Peer, c.Key, c.Share, c.Size)
	case RefreshShareCmd:
		c.Reply <- d.refreshShare(ctx, c.Peer, c.Key, c.PolyCoefficients)
	case connectedCmd:
		d.markBootstrapped()
	}
}

func (d *Driver) startListening(addr string) error {
	if addr == "" {
		return nil
	}
	maddr, err := multiaddr.NewMultiaddr(addr)
	if err != nil {
		return fmt.Errorf("network: parse listen address %q: %w", addr, err)
	}
	return d.host.Network().Listen(maddr)
}

// dial connects to addr. A peer already present in the peerstore with
// a live connection resolves immediately without redialing.
func (d *Driver) dial(ctx context.Context, addr string) error {
	info, err := peerAddrInfo(addr)
	if err != nil {
		return err
	}
	if d.host.Network().Connectedness(info.ID) == network.Connected {
		d.markBootstrapped()
		return nil
	}
	if err := d.host.Connect(ctx, *info); err != nil {
		log.Audit(log.Entry{Action: log.ActionDialFailed, Peer: info.ID.String(), Ok: false, Err: err.Error()})
		return err
	}
	d.markBootstrapped()
	return nil
}

func (d *Driver) markBootstrapped() {
	select {
	case <-d.bootstrapped:
		return
	default:
		close(d.bootstrapped)
	}
	for _, p := range d.pendingProvide {
		p.reply <- d.startProvidingNow(context.Background(), p.key)
	}
	d.pendingProvide = nil
}

func (d *Driver) getProviders(ctx context.Context, key string) GetProvidersResult {
	c, err := routingKey(key)
	if err != nil {
		return GetProvidersResult{Err: err}
	}

	out := make(chan GetProvidersResult, 1)
	go func() {
		providers := d.kad.FindProvidersAsync(ctx, c, 0)
		var ids []peer.ID
		for p := range providers {
			ids = append(ids, p.ID)
		}
		out <- GetProvidersResult{Providers: ids}
	}()
	select {
	case res := <-out:
		return res
	case <-ctx.Done():
		return GetProvidersResult{Err: ctx.Err()}
	}
}

// startProviding advertises custody of key once the DHT has a route
// out. If no connection has been seen yet, the advertisement is
// deferred until the first one, whether a successful Dial or an
// inbound connection, per the event-loop ordering rule.
func (d *Driver) startProviding(ctx context.Context, key string, reply chan error) {
	select {
	case <-d.bootstrapped:
		reply <- d.startProvidingNow(ctx, key)
	default:
		d.pendingProvide = append(d.pendingProvide, pendingProvide{key: key, reply: reply})
	}
}

func (d *Driver) startProvidingNow(ctx context.Context, key string) error {
	c, err := routingKey(key)
	if err != nil {
		return err
	}
	if err := d.kad.Provide(ctx, c, true); err != nil {
		return fmt.Errorf("network: provide %q: %w", key, err)
	}
	return nil
}

func (d *Driver) requestShare(ctx context.Context, p peer.ID, key string) RequestShareResult {
	s, err := d.host.NewStream(ctx, p, ProtocolID)
	if err != nil {
		return RequestShareResult{Err: fmt.Errorf("network: open stream to %s: %w", p, err)}
	}
	defer s.Close()

	rw := bufio.NewReadWriter(bufio.NewReader(s), bufio.NewWriter(s))
	if err := writeEnvelope(rw.Writer, reqres.KindGetShare, reqres.GetShareRequest{Key: key}); err != nil {
		return RequestShareResult{Err: err}
	}

	env, err := readEnvelope(rw.Reader)
	if err != nil {
		return RequestShareResult{Err: err}
	}
	var resp reqres.GetShareResponse
	if err := json.Unmarshal(env.Body, &resp); err != nil {
		return RequestShareResult{Err: fmt.Errorf("network: decode get_share response: %w", err)}
	}
	if resp.Share == nil {
		return RequestShareResult{Found: false}
	}
	return RequestShareResult{Found: true, Share: sharing.Share{X: resp.Share.X, Y: resp.Share.Y}}
}

func (d *Driver) registerShare(ctx context.Context, p peer.ID, key string, share sharing.Share, size uint16) error {
	s, err := d.host.NewStream(ctx, p, ProtocolID)
	if err != nil {
		return fmt.Errorf("network: open stream to %s: %w", p, err)
	}
	defer s.Close()

	rw := bufio.NewReadWriter(bufio.NewReader(s), bufio.NewWriter(s))
	req := reqres.RegisterShareRequest{
		Key:   key,
		Share: reqres.WireShare{X: share.X, Y: share.Y},
		Size:  size,
	}
	if err := writeEnvelope(rw.Writer, reqres.KindRegisterShare, req); err != nil {
		return err
	}

	env, err := readEnvelope(rw.Reader)
	if err != nil {
		return err
	}
	var resp reqres.RegisterShareResponse
	if err := json.Unmarshal(env.Body, &resp); err != nil {
		return fmt.Errorf("network: decode register_share response: %w", err)
	}
	if !resp.Ok {
		return fmt.Errorf("network: register_share rejected: %s", resp.Error)
	}
	log.Audit(log.Entry{Action: log.ActionSent, Key: key, Peer: p.String(), Ok: true})
	return nil
}

func (d *Driver) refreshShare(ctx context.Context, p peer.ID, key string, coeffs [][]byte) error {
	s, err := d.host.NewStream(ctx, p, ProtocolID)
	if err != nil {
		return fmt.Errorf("network: open stream to %s: %w", p, err)
	}
	defer s.Close()

	rw := bufio.NewReadWriter(bufio.NewReader(s), bufio.NewWriter(s))
	req := reqres.RefreshShareRequest{Key: key, PolyCoefficients: coeffs}
	if err := writeEnvelope(rw.Writer, reqres.KindRefreshShare, req); err != nil {
		return err
	}

	env, err := readEnvelope(rw.Reader)
	if err != nil {
		return err
	}
	var resp reqres.RefreshShareResponse
	if err := json.Unmarshal(env.Body, &resp); err != nil {
		return fmt.Errorf("network: decode refresh_share response: %w", err)
	}
	if !resp.Ok {
		return fmt.Errorf("network: refresh_share rejected: %s", resp.Error)
	}
	return nil
}

// acceptStream runs in its own goroutine per inbound stream (libp2p's
// calling convention). It only decodes the envelope and hands the
// request to the event loop; the repository itself is touched solely
// from handleInboundCmd.
func (d *Driver) acceptStream(s network.Stream) {
	defer s.Close()

	rw := bufio.NewReadWriter(bufio.NewReader(s), bufio.NewWriter(s))
	env, err := readEnvelope(rw.Reader)
	if err != nil {
		return
	}

	reply := make(chan inboundResponse, 1)
	req := &inboundRequestCmd{
		sender:  s.Conn().RemotePeer(),
		kind:    string(env.Kind),
		body:    env.Body,
		respond: reply,
	}

	d.inbound <- req
	res := <-reply
	if res.err != nil {
		return
	}
	_ = writeFramed(rw.Writer, res.body)
}

func (d *Driver) handleInboundCmd(ctx context.Context, req *inboundRequestCmd) {
	kind, respBody := handleInbound(ctx, d.repo, req.sender, reqres.Kind(req.kind), req.body)
	raw, err := encodeInboundResponse(kind, respBody)
	req.respond <- inboundResponse{body: raw, err: err}

	if kind == reqres.KindRegisterShare {
		if resp, ok := respBody.(reqres.RegisterShareResponse); ok && resp.Ok {
			var registerReq reqres.RegisterShareRequest
			if err := json.Unmarshal(req.body, &registerReq); err == nil {
				d.Submit(StartProvidingCmd{Key: registerReq.Key, Reply: make(chan error, 1)})
			}
		}
	}
}

// routingKey derives the DHT content-routing identifier for a Key: a
// CIDv1 wrapping a SHA-256 multihash of "shard:" followed by the key's
// bytes, the standard
// way content-routing participants agree on an opaque lookup id
// without exchanging the key's cleartext out of band.
func routingKey(key string) (cid.Cid, error) {
	mh, err := multihash.Sum([]byte("shard:"+key), multihash.SHA2_256, -1)
	if err != nil {
		return cid.Cid{}, fmt.Errorf("network: hash routing key: %w", err)
	}
	return cid.NewCidV1(cid.Raw, mh), nil
}
