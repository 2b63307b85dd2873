package trace

import "sync"

// Source identifies the target an event came from.
type Source struct {
	// Domain is the kind of target, e.g. "rap".
	Domain string

	// Instance is the target's configured name.
	Instance string
}

func (s Source) String() string {
	return s.Domain + "[" + s.Instance + "]"
}

// Observer receives trace events.
type Observer interface {
	// SeqStart marks the start of a named sequence of steps.
	SeqStart(src Source, msg string)

	// Step marks one step of the current sequence.
	Step(src Source, msg string)

	// OpStart is called before an operation is issued. op describes it,
	// e.g. "write 0x10 <- 0xAA".
	OpStart(src Source, op string)

	// OpValues reports the values an operation wrote or read.
	OpValues(src Source, values string)

	// OpEnd is called after an operation succeeded.
	OpEnd(src Source)

	// OpError is called after an operation failed.
	OpError(src Source, msg string)
}

// Multi fans each event out to every observer, in order.
type Multi struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewMulti creates a Multi forwarding to observers. Nil entries are skipped.
func NewMulti(observers ...Observer) *Multi {
	m := &Multi{}
	for _, o := range observers {
		m.Add(o)
	}
	return m
}

// Add appends an observer.
func (m *Multi) Add(o Observer) {
	if o == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, o)
}

// Len returns the number of observers.
func (m *Multi) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.observers)
}

func (m *Multi) each(fn func(Observer)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.observers {
		fn(o)
	}
}

func (m *Multi) SeqStart(src Source, msg string) { m.each(func(o Observer) { o.SeqStart(src, msg) }) }
func (m *Multi) Step(src Source, msg string)     { m.each(func(o Observer) { o.Step(src, msg) }) }
func (m *Multi) OpStart(src Source, op string)   { m.each(func(o Observer) { o.OpStart(src, op) }) }
func (m *Multi) OpValues(src Source, v string)   { m.each(func(o Observer) { o.OpValues(src, v) }) }
func (m *Multi) OpEnd(src Source)                { m.each(func(o Observer) { o.OpEnd(src) }) }
func (m *Multi) OpError(src Source, msg string)  { m.each(func(o Observer) { o.OpError(src, msg) }) }

// Nop ignores every event.
type Nop struct{}

func (Nop) SeqStart(Source, string) {}
func (Nop) Step(Source, string)     {}
func (Nop) OpStart(Source, string)  {}
func (Nop) OpValues(Source, string) {}
func (Nop) OpEnd(Source)            {}
func (Nop) OpError(Source, string)  {}

var (
	_ Observer = (*Multi)(nil)
	_ Observer = Nop{}
)
