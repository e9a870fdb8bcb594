//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

// Package env provides utilities for reading environment variable
// configuration specific to the shard network.
package env

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LogLevel returns the logging level for the provider and CLI.
//
// It reads from the SHARD_LOG_LEVEL environment variable and converts
// it to the corresponding slog.Level value. Valid values
// (case-insensitive) are "DEBUG", "INFO", "WARN", "ERROR". If the
// environment variable is not set or contains an invalid value, it
// returns the default level slog.LevelWarn.
func LogLevel() slog.Level {
	level := strings.ToUpper(os.Getenv("SHARD_LOG_LEVEL"))

	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// KeySeed reads SHARD_KEY_SEED, an integer seed used to derive a
// deterministic peer identity so a provider rejoins the network under
// the same PeerId across restarts. ok is false when the variable is
// unset or not a valid integer, in which case the caller should
// generate a random identity instead.
func KeySeed() (seed int64, ok bool) {
	raw, present := os.LookupEnv("SHARD_KEY_SEED")
	if !present {
		return 0, false
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// ConfigPath reads SHARD_CONFIG_PATH, an optional override for the
// provider's TOML configuration file location.
func ConfigPath() string {
	return os.Getenv("SHARD_CONFIG_PATH")
}
