package register

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

func targets(cfg *config.Configuration) map[string]Target {
	return map[string]Target{
		"simple":   NewSimpleTarget("simple", cfg),
		"advanced": NewAdvancedTarget("advanced", cfg),
	}
}

func TestWriteReadIdentity(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()

	for name, tgt := range targets(cfg) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, tgt.Write(ctx, 0x12, 0xAB))
			got, err := tgt.Read(ctx, 0x12)
			require.NoError(t, err)
			assert.Equal(t, uint64(0xAB), got)

			got, err = tgt.Read(ctx, 0x13)
			require.NoError(t, err)
			assert.Zero(t, got, "unwritten register")
		})
	}
}

func TestDataMasking(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()

	for name, tgt := range targets(cfg) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, tgt.Write(ctx, 1, 0x1FF))
			got, err := tgt.Read(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, uint64(0xFF), got)
		})
	}
}

func TestReadModifyWrite(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()

	tests := []struct {
		initial, data, mask, want uint64
	}{
		{0xFF, 0xAA, 0x0F, 0xFA},
		{0x00, 0xFF, 0xF0, 0xF0},
		{0x5A, 0x00, 0x00, 0x5A},
		{0x5A, 0xA5, 0xFF, 0xA5},
	}

	for name, tgt := range targets(cfg) {
		for _, tt := range tests {
			t.Run(fmt.Sprintf("%s/%02x_%02x_%02x", name, tt.initial, tt.data, tt.mask), func(t *testing.T) {
				require.NoError(t, tgt.Write(ctx, 7, tt.initial))
				require.NoError(t, tgt.ReadModifyWrite(ctx, 7, tt.data, tt.mask))
				got, err := tgt.Read(ctx, 7)
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	}
}

func TestSequentialIdentity(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()
	data := []uint64{1, 2, 3, 4, 5, 6, 7, 8}

	for name, tgt := range targets(cfg) {
		for _, inc := range []uint64{0, 1, 3, 17} {
			t.Run(fmt.Sprintf("%s/inc=%d", name, inc), func(t *testing.T) {
				require.NoError(t, tgt.SeqWrite(ctx, 0x40, data, inc))
				out := make([]uint64, len(data))
				require.NoError(t, tgt.SeqRead(ctx, 0x40, out, inc))
				assert.Equal(t, data, out)
			})
		}
	}
}

func TestSequentialWrapsAddress(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()
	tgt := NewSimpleTarget("wrap", cfg)

	require.NoError(t, tgt.SeqWrite(ctx, 0xFE, []uint64{1, 2, 3}, 1))
	got, err := tgt.Read(ctx, 0x00)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got)
}

func TestFifoIdentity(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()

	for name, tgt := range targets(cfg) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, tgt.FifoWrite(ctx, 9, []uint64{10, 20, 30}))
			got, err := tgt.Read(ctx, 9)
			require.NoError(t, err)
			assert.Equal(t, uint64(30), got)

			out := make([]uint64, 3)
			require.NoError(t, tgt.FifoRead(ctx, 9, out))
			assert.Equal(t, []uint64{10, 20, 30}, out)
		})
	}
}

func TestSimpleFifoDrainsToCurrentValue(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()
	tgt := NewSimpleTarget("fifo", cfg)

	require.NoError(t, tgt.FifoWrite(ctx, 3, []uint64{1, 2}))
	out := make([]uint64, 4)
	require.NoError(t, tgt.FifoRead(ctx, 3, out))
	assert.Equal(t, []uint64{1, 2, 2, 2}, out)
	assert.Equal(t, uint64(2), tgt.Peek(3))
}

func TestCompIdentity(t *testing.T) {
	cfg := config.MustProfile("a24d32l2c2")
	ctx := context.Background()
	pairs := []wire.AddrData{{Addr: 0x100, Data: 1}, {Addr: 0x2000, Data: 2}, {Addr: 0x7, Data: 3}}

	for name, tgt := range targets(cfg) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, tgt.CompWrite(ctx, pairs))
			addrs := []uint64{0x7, 0x100, 0x2000}
			out := make([]uint64, len(addrs))
			require.NoError(t, tgt.CompRead(ctx, addrs, out))
			assert.Equal(t, []uint64{3, 1, 2}, out)
		})
	}
}

func TestSimpleReset(t *testing.T) {
	cfg := config.MustProfile("small")
	ctx := context.Background()
	tgt := NewSimpleTarget("reset", cfg)

	require.NoError(t, tgt.Write(ctx, 1, 1))
	require.NoError(t, tgt.Write(ctx, 2, 2))
	assert.Equal(t, 2, tgt.Len())
	tgt.Reset()
	assert.Equal(t, 0, tgt.Len())
}

func TestCancelledContext(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, tgt := range targets(cfg) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, tgt.Write(ctx, 1, 1), context.Canceled)
			_, err := tgt.Read(ctx, 1)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestAdvancedWindow(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()
	tgt := NewAdvancedTarget("window", cfg, WithWindow(0x10, 0x10))

	require.NoError(t, tgt.Write(ctx, 0x10, 1))
	require.NoError(t, tgt.Write(ctx, 0x1F, 1))

	err := tgt.Write(ctx, 0x20, 1)
	assert.Equal(t, wire.StatusInvalidAddress, StatusOf(err))

	// A sequence crossing the window edge is rejected as a whole.
	err = tgt.SeqWrite(ctx, 0x1E, []uint64{7, 8, 9}, 1)
	assert.Equal(t, wire.StatusInvalidAddress, StatusOf(err))
	got, err := tgt.Read(ctx, 0x1E)
	require.NoError(t, err)
	assert.Zero(t, got)
	assert.Equal(t, uint64(2), tgt.Stats().Rejected)
}

func TestAdvancedReadOnly(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()
	tgt := NewAdvancedTarget("ro", cfg, WithReadOnly(0xF0, 0xFF))

	err := tgt.Write(ctx, 0xF5, 1)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, wire.StatusReadOnly, se.Status)
	assert.Equal(t, uint64(0xF5), se.Addr)

	err = tgt.CompWrite(ctx, []wire.AddrData{{Addr: 1, Data: 1}, {Addr: 0xF0, Data: 1}})
	assert.Equal(t, wire.StatusReadOnly, StatusOf(err))
	got, _ := tgt.Read(ctx, 1)
	assert.Zero(t, got, "comp write applied partially")

	_, err = tgt.Read(ctx, 0xF5)
	assert.NoError(t, err)
}

func TestAdvancedInjectedFault(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()
	tgt := NewAdvancedTarget("fault", cfg)

	tgt.InjectFault(0x33, wire.StatusBusy)
	_, err := tgt.Read(ctx, 0x33)
	assert.Equal(t, wire.StatusBusy, StatusOf(err))

	out := make([]uint64, 2)
	err = tgt.CompRead(ctx, []uint64{0x32, 0x33}, out)
	assert.Equal(t, wire.StatusBusy, StatusOf(err))

	tgt.ClearFault(0x33)
	_, err = tgt.Read(ctx, 0x33)
	assert.NoError(t, err)

	tgt.InjectFault(1, wire.StatusFault)
	tgt.InjectFault(2, wire.StatusFault)
	tgt.ClearFaults()
	assert.NoError(t, tgt.Write(ctx, 1, 1))
	assert.NoError(t, tgt.Write(ctx, 2, 2))
}

func TestAdvancedFifoBounds(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	ctx := context.Background()
	tgt := NewAdvancedTarget("fifo", cfg, WithFifoDepth(4))

	require.NoError(t, tgt.FifoWrite(ctx, 5, []uint64{1, 2, 3}))
	err := tgt.FifoWrite(ctx, 5, []uint64{4, 5})
	assert.Equal(t, wire.StatusBusy, StatusOf(err))
	assert.Equal(t, 3, tgt.FifoLen(5))

	err = tgt.FifoRead(ctx, 5, make([]uint64, 4))
	assert.Equal(t, wire.StatusInvalidLength, StatusOf(err))
	assert.Equal(t, 3, tgt.FifoLen(5), "failed read must not drain")

	out := make([]uint64, 3)
	require.NoError(t, tgt.FifoRead(ctx, 5, out))
	assert.Equal(t, []uint64{1, 2, 3}, out)
	assert.Zero(t, tgt.FifoLen(5))
}

func TestAdvancedLatencyHonoursContext(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	tgt := NewAdvancedTarget("slow", cfg, WithLatency(time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := tgt.Read(ctx, 1)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, wire.StatusTimeout, StatusOf(err))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want wire.Status
	}{
		{"nil", nil, wire.StatusSuccess},
		{"status error", NewStatusError(wire.StatusReadOnly, 1, ""), wire.StatusReadOnly},
		{"wrapped", fmt.Errorf("store: %w", NewStatusError(wire.StatusBusy, 1, "x")), wire.StatusBusy},
		{"deadline", context.DeadlineExceeded, wire.StatusTimeout},
		{"other", errors.New("boom"), wire.StatusFault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestStatusErrorMessage(t *testing.T) {
	assert.Equal(t, "READ_ONLY at 0x10", NewStatusError(wire.StatusReadOnly, 0x10, "").Error())
	assert.Equal(t, "BUSY at 0x2: fifo full", NewStatusError(wire.StatusBusy, 2, "fifo full").Error())
}
