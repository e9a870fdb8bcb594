//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package sharing implements Shamir secret sharing over GF(2^8): split a
// byte secret into N shares, combine T of them back into the secret, and
// build/apply the zero-constant-term delta polynomials used for
// proactive share refresh.
package sharing

import (
	"crypto/rand"

	"github.com/shardnet/shard/internal/gf256"
)

// maxShares is the largest number of shares GF(2^8) can support: the
// evaluation points are drawn from {1, ..., 255}.
const maxShares = 255

// minThreshold is the smallest threshold for which Shamir sharing is
// meaningful (below 2, a single share would reconstruct the secret).
const minThreshold = 2

// Share is an (x, y[]) pair: x is the nonzero evaluation point assigned
// to one recipient, and y[i] is the evaluation, at x, of the polynomial
// encoding the i-th byte of the secret.
type Share struct {
	X byte
	Y []byte
}

// Clone returns a deep copy of the share so callers can mutate the
// result of RefreshShare without aliasing the input.
func (s Share) Clone() Share {
	y := make([]byte, len(s.Y))
	copy(y, s.Y)
	return Share{X: s.X, Y: y}
}

// Split produces shares shares of secret, any threshold of which
// determine secret under Combine. It fails if threshold is out of range,
// shares exceeds the field's capacity, or secret is empty.
func Split(secret []byte, threshold, shares int) ([]Share, error) {
	if threshold < minThreshold || threshold > shares || shares > maxShares {
		return nil, ErrInvalidThreshold
	}
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	xs, err := randomDistinctCoordinates(shares)
	if err != nil {
		return nil, err
	}

	result := make([]Share, shares)
	for i, x := range xs {
		result[i] = Share{X: x, Y: make([]byte, len(secret))}
	}

	coefficients := make([]byte, threshold)
	for byteIdx, b := range secret {
		if err := randomFill(coefficients[1:]); err != nil {
			return nil, err
		}
		coefficients[0] = b
		for i, x := range xs {
			result[i].Y[byteIdx] = gf256.EvalPolynomial(coefficients, x)
		}
	}

	return result, nil
}

// Combine reconstructs the secret from shares by Lagrange interpolation
// at x = 0. The caller is responsible for supplying exactly threshold
// shares; combining with fewer yields a well-formed but incorrect byte
// string. Duplicate x-values and mismatched share lengths are rejected.
func Combine(shares []Share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, ErrThresholdNotMet
	}

	shareLen := len(shares[0].Y)
	seen := make(map[byte]struct{}, len(shares))
	for _, s := range shares {
		if len(s.Y) != shareLen {
			return nil, ErrMismatchedShareLengths
		}
		if _, dup := seen[s.X]; dup {
			return nil, ErrDuplicateXValue
		}
		seen[s.X] = struct{}{}
	}

	xs := make([]byte, len(shares))
	for i, s := range shares {
		xs[i] = s.X
	}

	secret := make([]byte, shareLen)
	for byteIdx := range secret {
		ys := make([]byte, len(shares))
		for i, s := range shares {
			ys[i] = s.Y[byteIdx]
		}
		secret[byteIdx] = interpolateAtZero(xs, ys)
	}

	return secret, nil
}

// CombineStrict behaves like Combine but additionally requires at least
// threshold shares, returning ErrThresholdNotMet otherwise.
func CombineStrict(shares []Share, threshold int) ([]byte, error) {
	if len(shares) < threshold {
		return nil, ErrThresholdNotMet
	}
	return Combine(shares)
}

// BuildRefreshPolynomials returns byteLen rows of size+1 coefficients
// each, one polynomial per byte position, with every polynomial's
// constant term forced to zero and the other coefficients random.
// Applying the same returned polynomials to every share of a set (see
// RefreshShare) does not change what that share set reconstructs to at
// x=0; shares refreshed with different polynomials, or left
// unrefreshed, no longer reconstruct the original secret together.
func BuildRefreshPolynomials(size, byteLen int) ([][]byte, error) {
	polynomials := make([][]byte, byteLen)
	for i := range polynomials {
		poly := make([]byte, size+1)
		if err := randomFill(poly[1:]); err != nil {
			return nil, err
		}
		polynomials[i] = poly
	}
	return polynomials, nil
}

// RefreshShare evaluates each per-byte polynomial at share.X and XORs the
// result into the corresponding byte of a copy of share, returning the
// refreshed share. polynomials must have one row per byte of share.Y.
func RefreshShare(share Share, polynomials [][]byte) Share {
	refreshed := share.Clone()
	for i, poly := range polynomials {
		delta := gf256.EvalPolynomial(poly, share.X)
		refreshed.Y[i] = gf256.Add(refreshed.Y[i], delta)
	}
	return refreshed
}

// interpolateAtZero evaluates, at z=0, the unique polynomial of degree
// len(xs)-1 passing through (xs[i], ys[i]) for all i, using Lagrange's
// method in GF(2^8).
func interpolateAtZero(xs, ys []byte) byte {
	var result byte
	for i := range xs {
		var basis byte = 1
		for j := range xs {
			if i == j {
				continue
			}
			// At z=0 the numerator (z - xs[j]) becomes just xs[j],
			// since subtraction is XOR-addition in GF(2^8).
			numerator := xs[j]
			denominator := gf256.Add(xs[i], xs[j])
			basis = gf256.Mul(basis, gf256.Div(numerator, denominator))
		}
		result = gf256.Add(result, gf256.Mul(basis, ys[i]))
	}
	return result
}

// randomFill fills buf with cryptographically secure random bytes,
// uniform over GF(2^8).
func randomFill(buf []byte) error {
	_, err := rand.Read(buf)
	return err
}

// randomDistinctCoordinates draws n distinct nonzero evaluation points
// from {1, ..., 255} via a Fisher-Yates shuffle seeded by crypto/rand.
func randomDistinctCoordinates(n int) ([]byte, error) {
	pool := make([]byte, maxShares)
	for i := range pool {
		pool[i] = byte(i + 1)
	}

	for i := len(pool) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return nil, err
		}
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:n], nil
}

// randomIndex returns a cryptographically secure random integer in
// [0, n) without modulo bias, via rejection sampling on a single byte
// when n <= 256 (always true for our callers).
func randomIndex(n int) (int, error) {
	limit := 256 - (256 % n)
	for {
		var b [1]byte
		if _, err := rand.Read(b[:]); err != nil {
			return 0, err
		}
		if int(b[0]) < limit {
			return int(b[0]) % n, nil
		}
	}
}
