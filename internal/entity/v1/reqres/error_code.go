//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package reqres

// ErrorCode is a stable, wire-safe error tag distinct from the Go error
// string it is paired with in a response's Error field.
type ErrorCode string

const (
	ErrBadInput       ErrorCode = "bad_request"
	ErrStorageFault   ErrorCode = "storage_fault"
	ErrNotFound       ErrorCode = "not_found"
	ErrProtocolFormat ErrorCode = "protocol_format"
)
