//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package log provides the provider's structured logger and its
// per-event audit trail (registered / served / refreshed / sent /
// dial-failed), so operators can reconstruct what a provider did
// without instrumenting the network driver itself.
package log
