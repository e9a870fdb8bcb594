//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package reqres defines the wire taxonomy for the share-custody
// protocol: RegisterShare, GetShare, and RefreshShare requests and their
// responses. Every variant is a tagged, self-describing JSON record;
// serialization is deterministic field-for-field since encoding/json
// marshals struct fields in declaration order.
package reqres

// Kind tags a wire envelope with the request variant it carries, so a
// handler on the receiving end can dispatch without sniffing payload
// shape. An envelope whose Kind none of the handlers recognize is
// rejected with a protocol-format error.
type Kind string

const (
	KindRegisterShare Kind = "register_share"
	KindGetShare      Kind = "get_share"
	KindRefreshShare  Kind = "refresh_share"
)

// Envelope is the outermost framing every request carries over the
// substrate's request/response stream: a Kind discriminator plus the
// raw JSON body of the specific request type.
type Envelope struct {
	Kind Kind   `json:"kind"`
	Body []byte `json:"body"`
}

// WireShare is the on-wire representation of a sharing.Share: the
// evaluation point byte and the share's byte vector.
type WireShare struct {
	X byte   `json:"x"`
	Y []byte `json:"y"`
}

// RegisterShareRequest asks the receiving provider to store a share
// under Key, binding ownership to the request's sender peer id. Size is
// the polynomial degree budget later refresh rounds will use.
type RegisterShareRequest struct {
	Key   string    `json:"key"`
	Share WireShare `json:"share"`
	Size  uint16    `json:"size"`
}

// RegisterShareResponse reports whether the registration succeeded. A
// second identical RegisterShareRequest is idempotent and also reports
// Ok=true.
type RegisterShareResponse struct {
	Ok    bool      `json:"ok"`
	Code  ErrorCode `json:"code,omitempty"`
	Error string    `json:"error,omitempty"`
}

// GetShareRequest asks the receiving provider for the share it holds
// under Key.
type GetShareRequest struct {
	Key string `json:"key"`
}

// GetShareResponse carries the requested share when the caller is the
// owner. Share is nil (omitted) for a non-owner caller or a missing
// key; the two cases are indistinguishable to the requester.
type GetShareResponse struct {
	Share *WireShare `json:"share,omitempty"`
}

// RefreshShareRequest delivers a round's zero-constant-term delta
// polynomials (one row per byte of the recipient's share) for the
// recipient to XOR into its locally held share for Key.
type RefreshShareRequest struct {
	Key              string   `json:"key"`
	PolyCoefficients [][]byte `json:"poly_coefficients"`
}

// RefreshShareResponse reports whether the refresh was applied.
type RefreshShareResponse struct {
	Ok    bool      `json:"ok"`
	Code  ErrorCode `json:"code,omitempty"`
	Error string    `json:"error,omitempty"`
}
