package log

// MultiLogger fans each event out to several loggers in order, for example
// a FileLogger for later analysis plus a SlogAdapter for the console.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines loggers. Disabled loggers (nil or NoopLogger) are
// dropped. With nothing left the result is a NoopLogger, and a single
// remaining logger is returned as is.
func NewMultiLogger(loggers ...Logger) Logger {
	var active []Logger
	for _, l := range loggers {
		if Enabled(l) {
			active = append(active, l)
		}
	}
	switch len(active) {
	case 0:
		return NoopLogger{}
	case 1:
		return active[0]
	}
	return &MultiLogger{loggers: active}
}

// Len returns the number of combined loggers.
func (m *MultiLogger) Len() int { return len(m.loggers) }

// Log implements Logger.
func (m *MultiLogger) Log(event Event) {
	for _, l := range m.loggers {
		l.Log(event)
	}
}

var _ Logger = (*MultiLogger)(nil)
