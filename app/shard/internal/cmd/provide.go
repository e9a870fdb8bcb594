//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shardnet/shard/app"
	"github.com/shardnet/shard/internal/client"
	"github.com/shardnet/shard/internal/config"
	"github.com/shardnet/shard/internal/env"
	"github.com/shardnet/shard/internal/log"
	"github.com/shardnet/shard/internal/network"
	"github.com/shardnet/shard/internal/out"
	"github.com/shardnet/shard/internal/scheduler"
	"github.com/shardnet/shard/internal/store"
)

// NewProvideCommand returns the "provide" subcommand, which runs the
// current process as a long-lived provider: it listens for inbound
// RegisterShare/GetShare/RefreshShare requests, stores entries in a
// durable sqlite repository when a db path is configured (in memory
// otherwise), and runs the periodic refresh scheduler.
func NewProvideCommand() *cobra.Command {
	var dbPath string
	var refreshInterval time.Duration
	var listenAddress string
	var secretKeySeed int64
	var configPath string

	provideCmd := &cobra.Command{
		Use:   "provide",
		Short: "Run as a share-custody provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := config.LoadProvider(configPath)
			if dbPath == "" {
				dbPath = cfg.DBPath
			}
			if listenAddress == "" {
				listenAddress = cfg.ListenAddress
			}
			if refreshInterval == 0 && cfg.RefreshInterval != 0 {
				refreshInterval = time.Duration(cfg.RefreshInterval)
			}
			if refreshInterval == 0 {
				refreshInterval = time.Hour
			}

			seed, ok := env.KeySeed()
			if secretKeySeed != 0 {
				seed, ok = secretKeySeed, true
			}

			priv, _, err := identityFor(seed, ok)
			if err != nil {
				return fmt.Errorf("provide: %w", err)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var repo store.Repository
			if dbPath != "" {
				sqlite, err := store.OpenSQLite(ctx, dbPath)
				if err != nil {
					return fmt.Errorf("provide: open repository: %w", err)
				}
				repo = sqlite
			} else {
				repo = store.NewMemory()
			}

			h, kad, err := network.NewHost(ctx, priv, listenAddress)
			if err != nil {
				return fmt.Errorf("provide: %w", err)
			}
			defer h.Close()

			driver := network.NewDriver(h, kad, repo)
			go driver.Run(ctx)

			out.PrintBanner(appName, app.Version, h.ID().String())

			if cfg.Bootstrapper != "" {
				if err := network.Bootstrap(ctx, h, kad, cfg.Bootstrapper); err != nil {
					log.Log().Warn("bootstrap failed", "err", err.Error())
				}
			}

			if err := readvertise(ctx, client.New(driver), repo); err != nil {
				log.Log().Warn("readvertisement failed", "err", err.Error())
			}

			sched := scheduler.New(client.New(driver), repo, h.ID(), refreshInterval)
			go sched.Run(ctx)

			<-ctx.Done()
			return nil
		},
	}

	provideCmd.Flags().StringVar(&dbPath, "db-path", "", "sqlite file backing the durable repository (memory if unset)")
	provideCmd.Flags().DurationVar(&refreshInterval, "refresh-interval", 0, "how often to run a refresh round")
	provideCmd.Flags().StringVar(&listenAddress, "listen-address", "", "multiaddress to listen on")
	provideCmd.Flags().Int64Var(&secretKeySeed, "secret-key-seed", 0, "deterministic seed for this provider's identity")
	provideCmd.Flags().StringVar(&configPath, "config", "", "path to the TOML configuration file")

	return provideCmd
}

func readvertise(ctx context.Context, c *client.Client, repo store.Repository) error {
	entries, err := repo.ListAll(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := c.StartProviding(ctx, entry.Key); err != nil {
			log.Log().Warn("readvertise key failed", "key", entry.Key, "err", err.Error())
		}
	}
	return nil
}

