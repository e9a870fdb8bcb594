//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package peerid derives and manipulates the network's PeerId type,
// realized as a libp2p peer.ID: an opaque, bitwise-comparable
// identifier derived from a peer's public key.
package peerid

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/peer"
)

// GenerateIdentity returns a fresh Ed25519 private key and its derived
// peer.ID, read from crypto/rand.
func GenerateIdentity() (crypto.PrivKey, peer.ID, error) {
	return identityFrom(rand.Reader)
}

// GenerateIdentityFromSeed deterministically derives an Ed25519 private
// key (and therefore a stable peer.ID) from an integer seed, so a
// provider started twice with the same --secret-key-seed rejoins the
// network under the same identity instead of minting a new one.
func GenerateIdentityFromSeed(seed int64) (crypto.PrivKey, peer.ID, error) {
	return identityFrom(newSeededReader(seed))
}

func identityFrom(src io.Reader) (crypto.PrivKey, peer.ID, error) {
	priv, _, err := crypto.GenerateEd25519Key(src)
	if err != nil {
		return nil, "", fmt.Errorf("peerid: generate key: %w", err)
	}
	id, err := peer.IDFromPrivateKey(priv)
	if err != nil {
		return nil, "", fmt.Errorf("peerid: derive peer id: %w", err)
	}
	return priv, id, nil
}

// LoadOrGenerate reads a marshaled private key from path and derives
// its peer.ID. If path does not exist, a fresh random identity is
// generated and persisted there (owner-only permissions) so the next
// call from the same path returns the same identity. This is how a
// client-role CLI invocation (split/combine/refresh) keeps a stable
// PeerId across separate processes without requiring an explicit
// --secret-key-seed.
func LoadOrGenerate(path string) (crypto.PrivKey, peer.ID, error) {
	if raw, err := os.ReadFile(path); err == nil {
		priv, err := crypto.UnmarshalPrivateKey(raw)
		if err != nil {
			return nil, "", fmt.Errorf("peerid: unmarshal identity at %s: %w", path, err)
		}
		id, err := peer.IDFromPrivateKey(priv)
		if err != nil {
			return nil, "", fmt.Errorf("peerid: derive peer id: %w", err)
		}
		return priv, id, nil
	}

	priv, id, err := GenerateIdentity()
	if err != nil {
		return nil, "", err
	}

	raw, err := crypto.MarshalPrivateKey(priv)
	if err != nil {
		return nil, "", fmt.Errorf("peerid: marshal identity: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, "", fmt.Errorf("peerid: create identity dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return nil, "", fmt.Errorf("peerid: persist identity to %s: %w", path, err)
	}
	return priv, id, nil
}

// seededReader produces a deterministic byte stream from a seed by
// repeatedly hashing forward.
type seededReader struct {
	state [32]byte
	pos   int
}

func newSeededReader(seed int64) *seededReader {
	var buf [8]byte
	for i := range buf {
		buf[i] = byte(seed >> (8 * i))
	}
	return &seededReader{state: sha256.Sum256(buf[:])}
}

func (r *seededReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if r.pos >= len(r.state) {
			r.state = sha256.Sum256(r.state[:])
			r.pos = 0
		}
		copied := copy(p[n:], r.state[r.pos:])
		n += copied
		r.pos += copied
	}
	return n, nil
}

// Equal reports whether two PeerIds are the same identity. peer.ID is
// already a string-backed type so equality is just byte-for-byte
// comparison, but this wrapper documents the invariant for callers
// reasoning about the ownership rule.
func Equal(a, b peer.ID) bool {
	return a == b
}
