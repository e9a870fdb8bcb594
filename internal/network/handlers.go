//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/shardnet/shard/internal/entity/v1/reqres"
	"github.com/shardnet/shard/internal/log"
	"github.com/shardnet/shard/internal/sharing"
	"github.com/shardnet/shard/internal/store"
)

// handleInbound dispatches a decoded request to the repository and
// returns the Kind and body to write back on the stream. It is called
// only from the driver's event loop, so repo access here needs no
// locking of its own.
func handleInbound(ctx context.Context, repo store.Repository, sender peer.ID, kind reqres.Kind, body []byte) (reqres.Kind, any) {
	switch kind {
	case reqres.KindRegisterShare:
		return kind, handleRegisterShare(ctx, repo, sender, body)
	case reqres.KindGetShare:
		return kind, handleGetShare(ctx, repo, sender, body)
	case reqres.KindRefreshShare:
		return kind, handleRefreshShare(ctx, repo, sender, body)
	default:
		return kind, reqres.RegisterShareResponse{Ok: false, Code: reqres.ErrProtocolFormat, Error: "unknown request kind"}
	}
}

func handleRegisterShare(ctx context.Context, repo store.Repository, sender peer.ID, body []byte) reqres.RegisterShareResponse {
	var req reqres.RegisterShareRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return reqres.RegisterShareResponse{Ok: false, Code: reqres.ErrProtocolFormat, Error: "malformed register_share request"}
	}

	owner := sender.String()
	entry := store.Entry{
		Key:   req.Key,
		Owner: owner,
		Share: sharing.Share{X: req.Share.X, Y: req.Share.Y},
		Size:  req.Size,
	}

	err := repo.Put(ctx, entry)
	switch {
	case err == nil:
		log.Audit(log.Entry{Action: log.ActionRegistered, Key: req.Key, Peer: owner, Ok: true})
		return reqres.RegisterShareResponse{Ok: true}
	case errors.Is(err, store.ErrShareMismatch):
		log.Audit(log.Entry{Action: log.ActionRegistered, Key: req.Key, Peer: owner, Ok: false, Err: err.Error()})
		return reqres.RegisterShareResponse{Ok: false, Code: reqres.ErrBadInput, Error: err.Error()}
	default:
		log.Audit(log.Entry{Action: log.ActionRegistered, Key: req.Key, Peer: owner, Ok: false, Err: err.Error()})
		return reqres.RegisterShareResponse{Ok: false, Code: reqres.ErrStorageFault, Error: "storage fault"}
	}
}

func handleGetShare(ctx context.Context, repo store.Repository, sender peer.ID, body []byte) reqres.GetShareResponse {
	var req reqres.GetShareRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return reqres.GetShareResponse{}
	}

	owner := sender.String()
	entry, err := repo.Get(ctx, req.Key, owner)
	if err != nil {
		log.Audit(log.Entry{Action: log.ActionDenied, Key: req.Key, Peer: owner, Ok: false})
		return reqres.GetShareResponse{}
	}

	log.Audit(log.Entry{Action: log.ActionServed, Key: req.Key, Peer: owner, Ok: true})
	return reqres.GetShareResponse{Share: &reqres.WireShare{X: entry.Share.X, Y: entry.Share.Y}}
}

func handleRefreshShare(ctx context.Context, repo store.Repository, sender peer.ID, body []byte) reqres.RefreshShareResponse {
	var req reqres.RefreshShareRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return reqres.RefreshShareResponse{Ok: false, Code: reqres.ErrProtocolFormat, Error: "malformed refresh_share request"}
	}

	owner := sender.String()
	entry, err := repo.Get(ctx, req.Key, owner)
	if err != nil {
		log.Audit(log.Entry{Action: log.ActionRefreshed, Key: req.Key, Peer: owner, Ok: false, Err: err.Error()})
		return reqres.RefreshShareResponse{Ok: false, Code: reqres.ErrNotFound, Error: "no such entry"}
	}

	refreshed := sharing.RefreshShare(entry.Share, req.PolyCoefficients)
	entry.Share = refreshed
	if err := repo.Update(ctx, entry); err != nil {
		log.Audit(log.Entry{Action: log.ActionRefreshed, Key: req.Key, Peer: owner, Ok: false, Err: err.Error()})
		return reqres.RefreshShareResponse{Ok: false, Code: reqres.ErrStorageFault, Error: "storage fault"}
	}

	log.Audit(log.Entry{Action: log.ActionRefreshed, Key: req.Key, Peer: owner, Ok: true})
	return reqres.RefreshShareResponse{Ok: true}
}

// encodeInboundResponse marshals a handler's response body behind the
// same framing writeEnvelope/readEnvelope use, without requiring a
// live stream (the event loop hands the bytes back to the stream
// goroutine to write).
func encodeInboundResponse(kind reqres.Kind, body any) ([]byte, error) {
	raw, err := reqres.EncodeEnvelope(kind, body)
	if err != nil {
		return nil, fmt.Errorf("network: encode response: %w", err)
	}
	return raw, nil
}
