//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package validation checks the preconditions of a split or combine
// operation (threshold, share count, key format) before any network
// or cryptographic work begins, so a malformed CLI invocation fails
// fast with a clear error instead of a confusing downstream one.
package validation
