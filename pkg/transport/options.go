package transport

import (
	"time"

	"github.com/google/uuid"

	"github.com/rap-protocol/rap-go/pkg/log"
)

// DefaultMaxMessageSize is the default maximum message size (64 KB).
const DefaultMaxMessageSize = 65536

type options struct {
	maxMessageSize int
	logger         log.Logger
	role           log.Role
	id             string
}

func buildOptions(opts []Option) options {
	o := options{maxMessageSize: DefaultMaxMessageSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	return o
}

// Option configures a transport.
type Option func(*options)

// WithMaxMessageSize sets the largest message Send accepts and Receive
// delivers.
func WithMaxMessageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMessageSize = n
		}
	}
}

// WithLogger reports every frame sent and received to l.
func WithLogger(l log.Logger, role log.Role) Option {
	return func(o *options) {
		o.logger = l
		o.role = role
	}
}

// WithID overrides the generated connection id.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// frameLog reports frames of one transport to a protocol logger.
type frameLog struct {
	logger log.Logger
	role   log.Role
	id     string
	remote func() string
}

func (f *frameLog) log(dir log.Direction, data []byte, overhead int) {
	if !log.Enabled(f.logger) {
		return
	}
	var remote string
	if f.remote != nil {
		remote = f.remote()
	}
	f.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: f.id,
		Direction:    dir,
		Layer:        log.LayerTransport,
		Category:     log.CategoryMessage,
		LocalRole:    f.role,
		RemoteAddr:   remote,
		Frame:        log.NewFrameEvent(data, overhead),
	})
}

// timer returns a channel that fires after d, or nil (never) for d <= 0.
func timer(d time.Duration) (<-chan time.Time, func()) {
	if d <= 0 {
		return nil, func() {}
	}
	t := time.NewTimer(d)
	return t.C, func() { t.Stop() }
}
