//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package validation

import (
	"context"
	"errors"
	"testing"
)

func TestCheckContextRejectsNil(t *testing.T) {
	if err := CheckContext(nil); !errors.Is(err, ErrNilContext) {
		t.Fatalf("expected ErrNilContext, got %v", err)
	}
	if err := CheckContext(context.Background()); err != nil {
		t.Fatalf("expected nil error for valid context, got %v", err)
	}
}

func TestKeyRejectsEmpty(t *testing.T) {
	if err := Key(""); !errors.Is(err, ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestKeyRejectsInvalidUTF8(t *testing.T) {
	if err := Key(string([]byte{0xff, 0xfe})); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestKeyAcceptsUnrestrictedUTF8(t *testing.T) {
	for _, key := range []string{
		"db-password.prod_1",
		"db password/prod",
		"secret:naïve-café",
		"пароль",
		"🔑",
	} {
		if err := Key(key); err != nil {
			t.Fatalf("expected %q to pass, got %v", key, err)
		}
	}
}

func TestThresholdAndSharesValidation(t *testing.T) {
	cases := []struct {
		threshold, shares int
		wantErr           bool
	}{
		{1, 5, true},
		{3, 2, true},
		{2, 256, true},
		{3, 5, false},
		{2, 2, false},
	}
	for _, c := range cases {
		err := ThresholdAndShares(c.threshold, c.shares)
		if c.wantErr && err == nil {
			t.Errorf("threshold=%d shares=%d: expected error, got nil", c.threshold, c.shares)
		}
		if !c.wantErr && err != nil {
			t.Errorf("threshold=%d shares=%d: unexpected error %v", c.threshold, c.shares, err)
		}
	}
}

func TestSecretRejectsEmpty(t *testing.T) {
	if err := Secret(nil); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if err := Secret([]byte("shh")); err != nil {
		t.Fatalf("unexpected error for non-empty secret: %v", err)
	}
}
