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

// NewRefreshCommand returns the "refresh" subcommand: an interactive
// variant of the provider-side refresh round, driven by the CLI
// instead of the periodic scheduler. It discovers every provider of
// key and sends each the same round of zero-constant-term delta
// polynomials.
func NewRefreshCommand() *cobra.Command {
	var key string
	var threshold int
	var size int
	var secretKeySeed int64

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Trigger a refresh round for every provider of a key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.Key(key); err != nil {
				return err
			}
			if size < 0 {
				return fmt.Errorf("refresh: size must be nonnegative, got %d", size)
			}

			ctx := cmd.Context()
			seed, deterministic := env.KeySeed()
			if secretKeySeed != 0 {
				seed, deterministic = secretKeySeed, true
			}
			c, cleanup, err := newCLIClient(ctx, seed, deterministic)
			if err != nil {
				return fmt.Errorf("refresh: %w", err)
			}
			defer cleanup()

			providers, err := c.GetProviders(ctx, key)
			if err != nil {
				return fmt.Errorf("refresh: discover providers: %w", err)
			}
			if threshold > 0 && len(providers) < threshold {
				return fmt.Errorf("refresh: found %d providers, need at least %d", len(providers), threshold)
			}

			var sampleShare sharing.Share
			var sampleFound bool
			for _, p := range providers {
				share, found, err := c.RequestShare(ctx, p, key)
				if err == nil && found {
					sampleShare, sampleFound = share, true
					break
				}
			}
			if !sampleFound {
				return fmt.Errorf("refresh: could not determine share byte length for %q", key)
			}

			coeffs, err := sharing.BuildRefreshPolynomials(size, len(sampleShare.Y))
			if err != nil {
				return fmt.Errorf("refresh: %w", err)
			}

			failures := 0
			for _, p := range providers {
				if err := c.RefreshShare(ctx, p, key, coeffs); err != nil {
					failures++
					continue
				}
			}

			fmt.Printf("refreshed %d/%d providers\n", len(providers)-failures, len(providers))
			return nil
		},
	}

	refreshCmd.Flags().StringVar(&key, "key", "", "key to refresh")
	refreshCmd.Flags().IntVar(&threshold, "threshold", 0, "minimum provider count required before refreshing")
	refreshCmd.Flags().IntVar(&size, "size", 1, "degree of the refresh polynomial")
	refreshCmd.Flags().Int64Var(&secretKeySeed, "secret-key-seed", 0, "deterministic seed matching the split invocation's identity")
	_ = refreshCmd.MarkFlagRequired("key")

	return refreshCmd
}
