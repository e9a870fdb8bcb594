//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package out provides the provider startup banner, printed once by
// the provide command after its host is up, so operators can see at a
// glance which binary, version, peer id and log level they're running.
// The other subcommands print no banner.
package out

import (
	"fmt"
	"os"

	"github.com/shardnet/shard/internal/env"
)

const bannerEnabledVar = "SHARD_BANNER_ENABLED"

// PrintBanner writes the application banner to standard output,
// including the component name, version, peer id and log level. The
// banner is skipped unless SHARD_BANNER_ENABLED is set to "true".
func PrintBanner(appName, appVersion, peerID string) {
	if os.Getenv(bannerEnabledVar) != "true" {
		return
	}

	fmt.Printf(
		`
   \\ shard: decentralized threshold-secret custody network
 \\\\\ Copyright 2026-present shard contributors.
\\\\\\\ SPDX-License-Identifier: Apache-2.0
`+"\n%s v%s | peer %s | log level: %s\n\n",
		appName, appVersion, peerID, env.LogLevel(),
	)
}
