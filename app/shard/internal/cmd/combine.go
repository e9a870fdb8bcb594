//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shardnet/shard/internal/env"
	"github.com/shardnet/shard/internal/sharing"
	"github.com/shardnet/shard/internal/validation"
)

// NewCombineCommand returns the "combine" subcommand: it discovers
// providers for a key via the DHT, fetches up to threshold shares,
// and reconstructs the secret.
func NewCombineCommand() *cobra.Command {
	var key string
	var threshold int
	var secretKeySeed int64

	combineCmd := &cobra.Command{
		Use:   "combine",
		Short: "Reconstruct a secret from its registered shares",
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
				return fmt.Errorf("combine: %w", err)
			}
			defer cleanup()

			providers, err := c.GetProviders(ctx, key)
			if err != nil {
				return fmt.Errorf("combine: discover providers: %w", err)
			}
			if threshold > 0 && len(providers) < threshold {
				return fmt.Errorf("combine: found %d providers, need at least %d", len(providers), threshold)
			}

			var collected []sharing.Share
			for _, p := range providers {
				share, found, err := c.RequestShare(ctx, p, key)
				if err != nil || !found {
					continue
				}
				collected = append(collected, share)
				if threshold > 0 && len(collected) >= threshold {
					break
				}
			}

			var secret []byte
			if threshold > 0 {
				secret, err = sharing.CombineStrict(collected, threshold)
			} else {
				secret, err = sharing.Combine(collected)
			}
			if err != nil {
				return fmt.Errorf("combine: %w", err)
			}

			fmt.Println(string(secret))
			return nil
		},
	}

	combineCmd.Flags().StringVar(&key, "key", "", "key to reconstruct")
	combineCmd.Flags().IntVar(&threshold, "threshold", 0, "required share count (0 uses every share found)")
	combineCmd.Flags().Int64Var(&secretKeySeed, "secret-key-seed", 0, "deterministic seed matching the split invocation's identity")
	_ = combineCmd.MarkFlagRequired("key")

	return combineCmd
}
