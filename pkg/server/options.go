package server

import (
	"log/slog"
	"time"

	"github.com/rap-protocol/rap-go/pkg/log"
)

// Defaults.
const (
	DefaultMaxMessageSize = 512
	DefaultReceiveTimeout = 250 * time.Millisecond
	DefaultName           = "rap-server"
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithMaxMessageSize sets the codec's maximum message size. It must match
// the clients'.
func WithMaxMessageSize(n int) Option {
	return func(a *Adapter) { a.maxMessageSize = n }
}

// WithLogger reports commands, responses and errors to a protocol logger.
func WithLogger(l log.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithSlog sets the operational logger. Defaults to slog.Default().
func WithSlog(l *slog.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.slog = l
		}
	}
}

// WithReceiveTimeout sets how often Serve wakes up to check its context
// while idle.
func WithReceiveTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.receiveTimeout = d
		}
	}
}

// WithName sets the adapter name used in logs.
func WithName(name string) Option {
	return func(a *Adapter) {
		if name != "" {
			a.name = name
		}
	}
}
