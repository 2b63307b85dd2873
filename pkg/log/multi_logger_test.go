package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder keeps the events it receives.
type recorder struct {
	events []Event
}

func (r *recorder) Log(event Event) {
	r.events = append(r.events, event)
}

func TestMultiLoggerFansOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	l := NewMultiLogger(a, nil, b, NoopLogger{})

	m, ok := l.(*MultiLogger)
	require.True(t, ok)
	assert.Equal(t, 2, m.Len())

	l.Log(Event{ConnectionID: "conn-1", Layer: LayerTransport})
	l.Log(Event{ConnectionID: "conn-2", Layer: LayerWire})

	for _, r := range []*recorder{a, b} {
		require.Len(t, r.events, 2)
		assert.Equal(t, "conn-1", r.events[0].ConnectionID)
		assert.Equal(t, "conn-2", r.events[1].ConnectionID)
	}
}

func TestMultiLoggerCollapses(t *testing.T) {
	assert.Equal(t, NoopLogger{}, NewMultiLogger())
	assert.Equal(t, NoopLogger{}, NewMultiLogger(nil, NoopLogger{}))

	only := &recorder{}
	assert.Same(t, only, NewMultiLogger(NoopLogger{}, only))
}
