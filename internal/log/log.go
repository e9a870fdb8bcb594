//    \\ shard: decentralized threshold-secret custody network
//  \\\\\ Copyright 2026-present shard contributors.
// \\\\\\\ SPDX-License-Identifier: Apache-2.0

package log

import (
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shardnet/shard/internal/env"
)

var logger *slog.Logger
var loggerMutex sync.Mutex

// Log returns a thread-safe singleton instance of slog.Logger configured
// for JSON output. If the logger hasn't been initialized, it creates a
// new instance with the log level specified by the environment.
// Subsequent calls return the same logger instance.
func Log() *slog.Logger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if logger != nil {
		return logger
	}

	opts := &slog.HandlerOptions{
		Level: env.LogLevel(),
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)

	logger = slog.New(handler)
	return logger
}

// Action names one of the per-event lines a provider emits while
// running the network driver and refresh scheduler.
type Action string

const (
	ActionRegistered Action = "registered"
	ActionServed     Action = "served"
	ActionRefreshed  Action = "refreshed"
	ActionSent       Action = "sent"
	ActionDialFailed Action = "dial-failed"
	ActionDenied     Action = "denied"
)

// Entry is a single provider-side audit line: what happened, to which
// key, involving which peer, and whether it succeeded.
type Entry struct {
	ID        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Key       string    `json:"key,omitempty"`
	Peer      string    `json:"peer,omitempty"`
	Ok        bool      `json:"ok"`
	Err       string    `json:"err,omitempty"`
}

// Audit logs an Entry as JSON to the standard log output. Every entry
// gets a unique ID so a downstream collector can correlate this line
// with others describing the same event. If JSON marshaling fails, it
// logs an error through the structured logger but continues execution.
func Audit(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	body, err := json.Marshal(entry)
	if err != nil {
		Log().Error("audit", "msg", "failed to marshal audit entry", "err", err.Error())
		return
	}
	log.Println(string(body))
}
