//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package sharing

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shardnet/shard/internal/gf256"
)

func TestSplitCombineRoundTrip(t *testing.T) {
	secret := []byte("butterbeer")
	shares, err := Split(secret, 3, 5)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(shares) != 5 {
		t.Fatalf("expected 5 shares, got %d", len(shares))
	}

	subsets := [][]int{{0, 1, 2}, {1, 2, 3}, {0, 2, 4}, {2, 3, 4}}
	for _, idxs := range subsets {
		subset := make([]Share, len(idxs))
		for i, idx := range idxs {
			subset[i] = shares[idx]
		}
		recovered, err := Combine(subset)
		if err != nil {
			t.Fatalf("Combine failed for %v: %v", idxs, err)
		}
		if !bytes.Equal(recovered, secret) {
			t.Fatalf("Combine(%v) = %q, want %q", idxs, recovered, secret)
		}
	}
}

func TestCombineStrictRejectsBelowThreshold(t *testing.T) {
	secret := []byte("butterbeer")
	shares, err := Split(secret, 3, 5)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if _, err := CombineStrict(shares[:2], 3); !errors.Is(err, ErrThresholdNotMet) {
		t.Fatalf("expected ErrThresholdNotMet, got %v", err)
	}
}

func TestSplitRejectsThresholdBelowTwo(t *testing.T) {
	if _, err := Split([]byte("x"), 1, 5); !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}
}

func TestSplitRejectsTooManyShares(t *testing.T) {
	if _, err := Split([]byte("x"), 2, 256); !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}
}

func TestSplitRejectsThresholdAboveShares(t *testing.T) {
	if _, err := Split([]byte("x"), 4, 3); !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}
}

func TestSplitRejectsEmptySecret(t *testing.T) {
	if _, err := Split(nil, 2, 3); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestCombineRejectsDuplicateXValues(t *testing.T) {
	shares := []Share{
		{X: 1, Y: []byte{10}},
		{X: 1, Y: []byte{20}},
	}
	if _, err := Combine(shares); !errors.Is(err, ErrDuplicateXValue) {
		t.Fatalf("expected ErrDuplicateXValue, got %v", err)
	}
}

func TestCombineRejectsMismatchedLengths(t *testing.T) {
	shares := []Share{
		{X: 1, Y: []byte{10, 20}},
		{X: 2, Y: []byte{10}},
	}
	if _, err := Combine(shares); !errors.Is(err, ErrMismatchedShareLengths) {
		t.Fatalf("expected ErrMismatchedShareLengths, got %v", err)
	}
}

func TestSharesHaveDistinctXValues(t *testing.T) {
	shares, err := Split([]byte("s"), 2, 200)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	seen := make(map[byte]bool)
	for _, s := range shares {
		if seen[s.X] {
			t.Fatalf("duplicate x-value %d", s.X)
		}
		seen[s.X] = true
		if s.X == 0 {
			t.Fatal("x-value must be nonzero")
		}
	}
}

func TestRefreshPreservesSecretUnderFullParticipation(t *testing.T) {
	secret := []byte("butterbeer")
	shares, err := Split(secret, 3, 5)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	originalY := append([]byte(nil), shares[0].Y...)

	// Run several refresh rounds across all providers; each round applies
	// one set of coefficients to every share, as a scheduler round does.
	for round := 0; round < 10; round++ {
		polys, err := BuildRefreshPolynomials(2, len(secret))
		if err != nil {
			t.Fatalf("BuildRefreshPolynomials failed: %v", err)
		}
		for i, s := range shares {
			shares[i] = RefreshShare(s, polys)
		}
	}

	// The on-wire bytes should have changed.
	if bytes.Equal(shares[0].Y, originalY) {
		t.Fatal("refreshed share is suspiciously identical to its original split")
	}

	recovered, err := Combine(shares[:3])
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if !bytes.Equal(recovered, secret) {
		t.Fatalf("Combine after refresh = %q, want %q", recovered, secret)
	}
}

func TestRefreshPreservesSecretUnderPartialParticipation(t *testing.T) {
	secret := []byte("butterbeer")
	shares, err := Split(secret, 3, 5)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	// Only 2 of 5 providers are reachable and refresh; the rest are left
	// untouched (3 of 5 unreachable).
	refreshed := make([]Share, len(shares))
	copy(refreshed, shares)
	for _, i := range []int{0, 1} {
		polys, err := BuildRefreshPolynomials(2, len(shares[i].Y))
		if err != nil {
			t.Fatalf("BuildRefreshPolynomials failed: %v", err)
		}
		refreshed[i] = RefreshShare(shares[i], polys)
	}

	// Combine one refreshed share with two untouched shares.
	subset := []Share{refreshed[0], refreshed[2], refreshed[3]}
	recovered, err := Combine(subset)
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if !bytes.Equal(recovered, secret) {
		t.Fatalf("Combine after partial refresh = %q, want %q", recovered, secret)
	}
}

func TestRefreshRequiresSameCoefficientsForLocalApply(t *testing.T) {
	// The scheduler contract (spec 4.7 step 4) is that the SAME
	// coefficients sent to peers are applied locally. Demonstrate that
	// applying mismatched coefficients corrupts the secret: this is a
	// negative test documenting why callers must not regenerate.
	secret := []byte("k")
	shares, err := Split(secret, 2, 3)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	sentPolys, err := BuildRefreshPolynomials(1, 1)
	if err != nil {
		t.Fatalf("BuildRefreshPolynomials failed: %v", err)
	}
	appliedPolys, err := BuildRefreshPolynomials(1, 1)
	if err != nil {
		t.Fatalf("BuildRefreshPolynomials failed: %v", err)
	}

	// peer 0 applies the coefficients that were actually sent.
	refreshed0 := RefreshShare(shares[0], sentPolys)
	// peer 1 (bug scenario) applies freshly regenerated coefficients
	// instead of the ones notionally sent.
	refreshed1 := RefreshShare(shares[1], appliedPolys)

	recovered, err := Combine([]Share{refreshed0, refreshed1})
	if err != nil {
		t.Fatalf("Combine failed: %v", err)
	}
	if bytes.Equal(recovered, secret) {
		t.Fatal("expected mismatched coefficients to corrupt the secret")
	}
}

func TestSecrecyBoundaryBelowThresholdIsUnderdetermined(t *testing.T) {
	// With threshold-1 shares, there is no equation pinning the constant
	// term: for every candidate secret byte there exists a polynomial
	// through the known points plus (0, candidate). We check this
	// structurally by confirming that two different candidate constant
	// terms both admit a consistent polynomial through the T-1 points.
	xs := []byte{1, 2}
	ys := []byte{50, 90} // two known (x,y) points, T-1 = 2 for T = 3

	for _, candidate := range []byte{0, 255, 17} {
		// Build a degree-2 polynomial through (0,candidate), (1,ys[0]),
		// (2,ys[1]) by direct Lagrange interpolation over 3 points, then
		// confirm it reproduces the known points.
		allX := []byte{0, xs[0], xs[1]}
		allY := []byte{candidate, ys[0], ys[1]}
		for i, x := range allX {
			got := lagrangeAt(allX, allY, x)
			if got != allY[i] {
				t.Fatalf("candidate %d: interpolation inconsistent at x=%d: got %d want %d",
					candidate, x, got, allY[i])
			}
		}
	}
}

// lagrangeAt evaluates the interpolating polynomial through (xs[i],ys[i])
// at point z, for use by the secrecy-boundary structural test above.
func lagrangeAt(xs, ys []byte, z byte) byte {
	var result byte
	for i := range xs {
		var basis byte = 1
		for j := range xs {
			if i == j {
				continue
			}
			numerator := gf256.Add(z, xs[j])
			denominator := gf256.Add(xs[i], xs[j])
			basis = gf256.Mul(basis, gf256.Div(numerator, denominator))
		}
		result = gf256.Add(result, gf256.Mul(basis, ys[i]))
	}
	return result
}
