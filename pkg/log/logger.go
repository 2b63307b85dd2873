package log

// Logger receives protocol events from transports, clients and servers.
//
// Log is called on the hot path of every message, possibly from several
// goroutines at once. Implementations must be safe for concurrent use and
// should not block.
type Logger interface {
	Log(event Event)
}

// NoopLogger discards every event. The zero value is ready to use.
type NoopLogger struct{}

// Log implements Logger.
func (NoopLogger) Log(Event) {}

// Enabled reports whether l records anything, so callers can skip building
// events nobody will see.
func Enabled(l Logger) bool {
	switch l.(type) {
	case nil, NoopLogger, *NoopLogger:
		return false
	}
	return true
}

var _ Logger = NoopLogger{}
