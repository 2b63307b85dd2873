package client

import (
	"log/slog"
	"time"

	"github.com/rap-protocol/rap-go/pkg/log"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// Defaults.
const (
	DefaultTimeout        = 5 * time.Second
	DefaultMaxMessageSize = 512
	DefaultName           = "rap"
)

// InterruptHandler receives unsolicited Interrupt responses. It runs on the
// receive goroutine and must not block.
type InterruptHandler func(status wire.Status)

// Option configures a Target.
type Option func(*Target)

// WithTimeout sets how long a non-posted call waits for its response.
// Zero waits until the context ends.
func WithTimeout(d time.Duration) Option {
	return func(t *Target) {
		if d >= 0 {
			t.timeout = d
		}
	}
}

// WithMaxMessageSize sets the codec's maximum message size. It must match
// the server's.
func WithMaxMessageSize(n int) Option {
	return func(t *Target) { t.maxMessageSize = n }
}

// WithName sets the target name used in logs and traces.
func WithName(name string) Option {
	return func(t *Target) {
		if name != "" {
			t.name = name
		}
	}
}

// WithLogger reports commands, responses and errors to a protocol logger.
func WithLogger(l log.Logger) Option {
	return func(t *Target) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithSlog sets the operational logger. Defaults to slog.Default().
func WithSlog(l *slog.Logger) Option {
	return func(t *Target) {
		if l != nil {
			t.slog = l
		}
	}
}

// WithInterruptHandler sets the handler for Interrupt responses.
func WithInterruptHandler(h InterruptHandler) Option {
	return func(t *Target) { t.onInterrupt = h }
}
