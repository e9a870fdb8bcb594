//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package sharing

import "errors"

var (
	// ErrInvalidThreshold is returned when threshold < 2, threshold > shares,
	// or shares > 255.
	ErrInvalidThreshold = errors.New("sharing: invalid threshold")

	// ErrEmptySecret is returned when Split is called with a zero-length
	// secret.
	ErrEmptySecret = errors.New("sharing: secret must not be empty")

	// ErrDuplicateXValue is returned by Combine when two shares carry the
	// same evaluation point.
	ErrDuplicateXValue = errors.New("sharing: duplicate share x-value")

	// ErrMismatchedShareLengths is returned by Combine when shares do not
	// all carry the same y-length.
	ErrMismatchedShareLengths = errors.New("sharing: mismatched share lengths")

	// ErrThresholdNotMet is returned by CombineStrict when fewer than the
	// caller-supplied threshold of shares is provided.
	ErrThresholdNotMet = errors.New("sharing: threshold not met")
)
