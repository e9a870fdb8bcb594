//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package network

import (
	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/shardnet/shard/internal/sharing"
)

// command is the interface every outbound request to the driver's
// event loop satisfies. Each carries its own reply mechanism so the
// loop never blocks waiting for a caller to collect its result.
type command interface {
	isCommand()
}

// StartListeningCmd asks the driver to begin listening on Addr (empty
// uses the loopback, OS-assigned-port default).
type StartListeningCmd struct {
	Addr  string
	Reply chan error
}

func (StartListeningCmd) isCommand() {}

// DialCmd asks the driver to connect to a peer at Addr. A second Dial
// to an already-connected peer resolves immediately.
type DialCmd struct {
	Addr  string
	Reply chan error
}

func (DialCmd) isCommand() {}

// GetProvidersCmd resolves the DHT-advertised provider set for Key.
type GetProvidersCmd struct {
	Key   string
	Reply chan GetProvidersResult
}

func (GetProvidersCmd) isCommand() {}

// GetProvidersResult is the outcome of a GetProvidersCmd.
type GetProvidersResult struct {
	Providers []peer.ID
	Err       error
}

// StartProvidingCmd advertises custody of Key on the DHT. If the DHT
// has not finished bootstrapping, the driver defers the advertisement
// until the first connection is established.
type StartProvidingCmd struct {
	Key   string
	Reply chan error
}

func (StartProvidingCmd) isCommand() {}

// RequestShareCmd asks a remote provider for the share it holds under
// Key; only succeeds if this driver's identity is the recorded owner.
type RequestShareCmd struct {
	Peer  peer.ID
	Key   string
	Reply chan RequestShareResult
}

func (RequestShareCmd) isCommand() {}

// RequestShareResult is the outcome of a RequestShareCmd.
type RequestShareResult struct {
	Share sharing.Share
	Found bool
	Err   error
}

// RegisterShareCmd delivers Share to a remote provider for storage
// under Key, binding ownership to this driver's identity.
type RegisterShareCmd struct {
	Peer  peer.ID
	Key   string
	Share sharing.Share
	Size  uint16
	Reply chan error
}

func (RegisterShareCmd) isCommand() {}

// RefreshShareCmd delivers a round's delta polynomials to a remote
// provider, asking it to apply them to the share it holds for Key
// under this driver's identity.
type RefreshShareCmd struct {
	Peer             peer.ID
	Key              string
	PolyCoefficients [][]byte
	Reply            chan error
}

func (RefreshShareCmd) isCommand() {}

// connectedCmd notifies the loop that a swarm connection (inbound or
// outbound) was established, unblocking any StartProviding calls
// deferred while the DHT had no route out.
type connectedCmd struct{}

func (connectedCmd) isCommand() {}

// inboundRequestCmd is how the stream handler goroutine hands a
// decoded request over to the single-writer loop for processing
// against the repository. respond is called by the loop with the
// encoded response bytes (or an error, in which case the stream is
// closed without a response).
type inboundRequestCmd struct {
	sender  peer.ID
	kind    string
	body    []byte
	respond chan<- inboundResponse
}

func (inboundRequestCmd) isCommand() {}

type inboundResponse struct {
	body []byte
	err  error
}
