//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shardnet/shard/internal/client"
	"github.com/shardnet/shard/internal/env"
	"github.com/shardnet/shard/internal/network"
	"github.com/shardnet/shard/internal/sharing"
	"github.com/shardnet/shard/internal/store"
	"github.com/shardnet/shard/internal/validation"
)

// NewSplitCommand returns the "split" subcommand: it splits a secret
// into N shares and registers each with a distinct provider address.
func NewSplitCommand() *cobra.Command {
	var threshold int
	var shares int
	var secret string
	var key string
	var providers []string
	var secretKeySeed int64

	splitCmd := &cobra.Command{
		Use:   "split",
		Short: "Split a secret and register shares with providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.Key(key); err != nil {
				return err
			}
			if err := validation.ThresholdAndShares(threshold, shares); err != nil {
				return err
			}
			if secret == "" {
				read, err := readSecretFromTerminal()
				if err != nil {
					return fmt.Errorf("split: %w", err)
				}
				secret = read
			}
			if err := validation.Secret([]byte(secret)); err != nil {
				return err
			}
			if len(providers) != shares {
				return fmt.Errorf("split: need exactly %d --provider addresses, got %d", shares, len(providers))
			}

			parts, err := sharing.Split([]byte(secret), threshold, shares)
			if err != nil {
				return fmt.Errorf("split: %w", err)
			}

			ctx := cmd.Context()
			seed, deterministic := env.KeySeed()
			if secretKeySeed != 0 {
				seed, deterministic = secretKeySeed, true
			}
			c, cleanup, err := newCLIClient(ctx, seed, deterministic)
			if err != nil {
				return fmt.Errorf("split: %w", err)
			}
			defer cleanup()

			for i, addr := range providers {
				peerID, err := dialProvider(ctx, c, addr)
				if err != nil {
					return fmt.Errorf("split: dial provider %d (%s): %w", i, addr, err)
				}
				size := uint16(threshold - 1)
				if err := c.RegisterShare(ctx, peerID, key, parts[i], size); err != nil {
					return fmt.Errorf("split: register share with provider %d (%s): %w", i, addr, err)
				}
			}

			fmt.Println("OK")
			return nil
		},
	}

	splitCmd.Flags().IntVar(&threshold, "threshold", 0, "minimum shares required to reconstruct")
	splitCmd.Flags().IntVar(&shares, "shares", 0, "total shares to produce")
	splitCmd.Flags().StringVar(&secret, "secret", "", "secret to split (prompted securely if omitted)")
	splitCmd.Flags().StringVar(&key, "key", "", "name under which to register the shares")
	splitCmd.Flags().StringArrayVar(&providers, "provider", nil, "provider multiaddress (repeat once per share)")
	splitCmd.Flags().Int64Var(&secretKeySeed, "secret-key-seed", 0, "deterministic seed for this invocation's identity (same operator must reuse it for a later combine/refresh)")
	_ = splitCmd.MarkFlagRequired("threshold")
	_ = splitCmd.MarkFlagRequired("shares")
	_ = splitCmd.MarkFlagRequired("key")

	return splitCmd
}

func readSecretFromTerminal() (string, error) {
	fmt.Print("Secret: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return string(raw), nil
}

// newCLIClient builds a short-lived host/driver/client for a single
// split/combine/ls/refresh invocation. The repository behind it is
// always in-memory (a client-role invocation never custodies a share
// itself), but the identity is not ephemeral: unless seed is given, it
// resolves to the operator's persisted identity key so later
// invocations present the same PeerId to a provider.
func newCLIClient(ctx context.Context, seed int64, deterministic bool) (*client.Client, func(), error) {
	priv, _, err := clientIdentity(seed, deterministic)
	if err != nil {
		return nil, nil, err
	}
	h, kad, err := network.NewHost(ctx, priv, "")
	if err != nil {
		return nil, nil, err
	}
	driver := network.NewDriver(h, kad, store.NewMemory())
	go driver.Run(ctx)
	return client.New(driver), func() { _ = h.Close() }, nil
}
