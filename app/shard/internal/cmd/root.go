//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package cmd wires the shard binary's cobra command tree: provide,
// split, combine, ls, and refresh.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shardnet/shard/app"
)

const appName = "shard"

// rootCmd is the entry point for all subcommands. It performs no
// action of its own.
var rootCmd = &cobra.Command{
	Use:   appName,
	Short: appName + " - decentralized threshold-secret custody",
	Long: appName + " v" + app.Version + `
split a secret into threshold shares, register them with remote
providers, and reconstruct it later from any threshold of them.`,
}

// Initialize registers every subcommand on the root command.
func Initialize() {
	rootCmd.AddCommand(NewProvideCommand())
	rootCmd.AddCommand(NewSplitCommand())
	rootCmd.AddCommand(NewCombineCommand())
	rootCmd.AddCommand(NewLsCommand())
	rootCmd.AddCommand(NewRefreshCommand())
}

// Execute runs the root command, parsing os.Args. The context passed
// to every subcommand's RunE is cancelled on SIGINT/SIGTERM so a
// long-running provide command shuts down cleanly.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}
