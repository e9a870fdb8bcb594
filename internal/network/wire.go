//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package network

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/shardnet/shard/internal/entity/v1/reqres"
)

const maxFrameSize = 1 << 20 // 1 MiB, comfortably above any share payload

// writeEnvelope length-prefixes and writes a single envelope to w, then
// flushes if w is a *bufio.Writer.
func writeEnvelope(w io.Writer, kind reqres.Kind, body any) error {
	raw, err := reqres.EncodeEnvelope(kind, body)
	if err != nil {
		return err
	}
	return writeFramed(w, raw)
}

// writeFramed length-prefixes and writes an already-encoded envelope.
func writeFramed(w io.Writer, raw []byte) error {
	if len(raw) > maxFrameSize {
		return fmt.Errorf("network: envelope too large (%d bytes)", len(raw))
	}

	var lenPrefix [4]byte
	binary.BigEndian.PutUint32(lenPrefix[:], uint32(len(raw)))
	if _, err := w.Write(lenPrefix[:]); err != nil {
		return fmt.Errorf("network: write frame length: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("network: write frame body: %w", err)
	}
	if bw, ok := w.(*bufio.Writer); ok {
		return bw.Flush()
	}
	return nil
}

// readEnvelope reads one length-prefixed envelope from r.
func readEnvelope(r io.Reader) (reqres.Envelope, error) {
	var lenPrefix [4]byte
	if _, err := io.ReadFull(r, lenPrefix[:]); err != nil {
		return reqres.Envelope{}, fmt.Errorf("network: read frame length: %w", err)
	}
	size := binary.BigEndian.Uint32(lenPrefix[:])
	if size > maxFrameSize {
		return reqres.Envelope{}, fmt.Errorf("network: frame too large (%d bytes)", size)
	}

	raw := make([]byte, size)
	if _, err := io.ReadFull(r, raw); err != nil {
		return reqres.Envelope{}, fmt.Errorf("network: read frame body: %w", err)
	}
	return reqres.DecodeEnvelope(raw)
}
