//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package config loads the provider's TOML configuration file and
// resolves the on-disk locations (config file, data directory) a
// provider uses, the same directory-resolution-chain shape used
// throughout the project: a custom override, then a per-user home
// directory, then a /tmp fallback.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/shardnet/shard/internal/env"
)

const hiddenFolderName = ".shard"
const dataFolderName = "data"
const configFileName = "config.toml"
const identityFileName = "identity.key"

// Provider holds a provider's configuration, whether read from a TOML
// file or supplied entirely via CLI flags.
type Provider struct {
	// Bootstrapper is a multiaddress dialed on startup before DHT
	// bootstrap proceeds, e.g. "/ip4/10.0.0.1/tcp/4001/p2p/Qm...".
	Bootstrapper string `toml:"bootstrapper"`

	// ListenAddress is the multiaddress the provider's libp2p host
	// listens on.
	ListenAddress string `toml:"listen_address"`

	// DBPath is the sqlite file backing the durable ShareRepository.
	DBPath string `toml:"db_path"`

	// RefreshInterval is how often the RefreshScheduler fires.
	RefreshInterval Duration `toml:"refresh_interval"`
}

// Duration wraps time.Duration so it can be parsed from a TOML string
// like "1h" instead of a raw integer nanosecond count.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler so go-toml/v2 can
// decode a duration string directly into a Duration field.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// LoadProvider reads and parses a provider's TOML configuration file.
// If path is empty, it is resolved via ResolveConfigPath.
func LoadProvider(path string) (Provider, error) {
	if path == "" {
		var err error
		path, err = ResolveConfigPath()
		if err != nil {
			return Provider{}, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Provider{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Provider
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Provider{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// ResolveConfigPath returns the config file path to use, in priority
// order: SHARD_CONFIG_PATH, then ~/.shard/config.toml, then
// /tmp/.shard-$USER/config.toml.
func ResolveConfigPath() (string, error) {
	if custom := env.ConfigPath(); custom != "" {
		return custom, nil
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, hiddenFolderName, configFileName), nil
	}

	user := os.Getenv("USER")
	if user == "" {
		user = "shard"
	}
	return filepath.Join("/tmp", fmt.Sprintf(".shard-%s", user), configFileName), nil
}

// DataDir returns the directory a provider should store its durable
// repository and peer identity key in, creating it with owner-only
// permissions if absent.
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "/tmp"
	}

	dir := filepath.Join(homeDir, hiddenFolderName, dataFolderName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("config: create data dir: %w", err)
	}
	return dir, nil
}

// IdentityKeyPath returns the path of the persisted peer identity key
// file inside DataDir, the file internal/peerid.LoadOrGenerate reads
// from (or creates) so a client-role CLI invocation reuses the same
// PeerId across separate processes.
func IdentityKeyPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identityFileName), nil
}
