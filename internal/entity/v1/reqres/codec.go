//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package reqres

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownKind is returned by DecodeEnvelope when an Envelope's Kind does not
// match any registered request variant.
var ErrUnknownKind = errors.New("reqres: unknown envelope kind")

// EncodeEnvelope wraps a typed request body in a tagged Envelope and
// marshals it to bytes ready to write to a protocol stream.
func EncodeEnvelope(kind Kind, body any) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("reqres: marshal body: %w", err)
	}
	return json.Marshal(Envelope{Kind: kind, Body: raw})
}

// DecodeEnvelope unmarshals the outer Envelope from the wire, leaving
// the caller to unmarshal Body once the Kind has been dispatched on.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("reqres: unmarshal envelope: %w", err)
	}
	switch env.Kind {
	case KindRegisterShare, KindGetShare, KindRefreshShare:
		return env, nil
	default:
		return Envelope{}, ErrUnknownKind
	}
}
