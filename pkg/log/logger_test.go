package log

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rap-protocol/rap-go/pkg/wire"
)

func TestNoopLoggerAcceptsEveryPayload(t *testing.T) {
	var logger NoopLogger
	base := Event{Timestamp: time.Now(), ConnectionID: "c", Layer: LayerWire}

	for _, e := range []Event{
		base,
		{Frame: &FrameEvent{Size: 8, Data: []byte{1, 2, 3}}},
		{Message: CommandMessage(&wire.ReadSingleCommand{Addr: 0x10})},
		{StateChange: &StateChangeEvent{Entity: StateEntityClient, NewState: "closed"}},
		{Error: &ErrorEventData{Message: "bad crc"}},
	} {
		logger.Log(e)
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		name   string
		logger Logger
		want   bool
	}{
		{"nil", nil, false},
		{"noop value", NoopLogger{}, false},
		{"noop pointer", &NoopLogger{}, false},
		{"recorder", &recorder{}, true},
		{"slog", NewSlogAdapter(nil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Enabled(tt.logger))
		})
	}
}
