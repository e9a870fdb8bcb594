//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package validation

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrNilContext indicates a caller passed a nil context.Context
	// into an operation that requires one.
	ErrNilContext = errors.New("validation: context must not be nil")

	// ErrEmptyKey indicates an operation was given an empty key name.
	ErrEmptyKey = errors.New("validation: key must not be empty")

	// ErrInvalidKey indicates a key is not valid UTF-8.
	ErrInvalidKey = errors.New("validation: key must be valid UTF-8")
)

// CheckContext returns ErrNilContext if ctx is nil. Every operation on
// internal/client.Client calls this first, since every one of its
// methods either dials a peer or touches a repository through the
// network driver.
func CheckContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// Key validates a share key name: non-empty, valid UTF-8, and
// otherwise unrestricted. A key carries no semantics beyond equality,
// so sqlite and the DHT both take it as an opaque byte string rather
// than a format the caller must satisfy.
func Key(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if !utf8.ValidString(key) {
		return ErrInvalidKey
	}
	return nil
}

// ThresholdAndShares validates a split request's threshold and share
// count before any polynomial is generated.
func ThresholdAndShares(threshold, shares int) error {
	if threshold < 2 {
		return fmt.Errorf("validation: threshold must be at least 2, got %d", threshold)
	}
	if shares < threshold {
		return fmt.Errorf("validation: shares (%d) must be at least threshold (%d)", shares, threshold)
	}
	if shares > 255 {
		return fmt.Errorf("validation: shares must not exceed 255, got %d", shares)
	}
	return nil
}

// Secret validates a secret payload is non-empty before splitting.
func Secret(secret []byte) error {
	if len(secret) == 0 {
		return errors.New("validation: secret must not be empty")
	}
	return nil
}
