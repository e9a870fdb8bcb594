//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shardnet/shard/internal/env"
	"github.com/shardnet/shard/internal/validation"
)

// NewLsCommand returns the "ls" subcommand: it lists the providers
// currently advertising custody of a key on the DHT.
func NewLsCommand() *cobra.Command {
	var key string
	var secretKeySeed int64

	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List providers advertising a key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.Key(key); err != nil {
				return err
			}

			ctx := cmd.Context()
			seed, deterministic := env.KeySeed()
			if secretKeySeed != 0 {
				seed, deterministic = secretKeySeed, true
			}
			c, cleanup, err := newCLIClient(ctx, seed, deterministic)
			if err != nil {
				return fmt.Errorf("ls: %w", err)
			}
			defer cleanup()

			providers, err := c.GetProviders(ctx, key)
			if err != nil {
				return fmt.Errorf("ls: %w", err)
			}

			if len(providers) == 0 {
				fmt.Println("no providers found")
				return nil
			}
			for _, p := range providers {
				fmt.Println(p.String())
			}
			return nil
		},
	}

	lsCmd.Flags().StringVar(&key, "key", "", "key to look up")
	lsCmd.Flags().Int64Var(&secretKeySeed, "secret-key-seed", 0, "deterministic seed for this invocation's identity")
	_ = lsCmd.MarkFlagRequired("key")

	return lsCmd
}
