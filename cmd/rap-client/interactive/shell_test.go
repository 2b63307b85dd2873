package interactive

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rap-protocol/rap-go/pkg/client"
	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/register"
	"github.com/rap-protocol/rap-go/pkg/server"
	"github.com/rap-protocol/rap-go/pkg/transport"
)

func newShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	cfg := config.MustNew(config.Params{
		AddressBits: 8, AddressBytes: 1,
		DataBits: 8, DataBytes: 1,
		LengthBytes: 1, CrcBytes: 1,
		Features: config.FeatureAll,
	})

	local, peer := transport.NewPairedIPC(64)
	a, err := server.New(cfg, local, register.NewSimpleTarget("regs", cfg),
		server.WithReceiveTimeout(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Serve(ctx)
	}()

	tgt, err := client.New(cfg, peer, client.WithTimeout(time.Second))
	require.NoError(t, err)
	t.Cleanup(func() {
		tgt.Close()
		cancel()
		<-done
		local.Close()
	})

	var out bytes.Buffer
	return New(client.NewFluent(tgt), &out), &out
}

func TestExec(t *testing.T) {
	sh, out := newShell(t)
	ctx := context.Background()

	// Steps share one register file and run in order.
	steps := []struct {
		line string
		want string
	}{
		{"", ""},
		{"write 0x10 0x5a", "OK\n"},
		{"read 0x10", "  0x10: 0x5a\n"},
		{"rmw 0x10 0x0f 0x0f", "OK\n"},
		{"r 16", "  0x10: 0x5f\n"},
		{"expect 0x10 0x5f", "OK\n"},
		{"seqwrite 0x20 1 1 2 3", "OK (3 values)\n"},
		{"seqread 0x20 3", "  0x20: 0x01\n  0x21: 0x02\n  0x22: 0x03\n"},
		{"seqread 0x20 2 2", "  0x20: 0x01\n  0x22: 0x03\n"},
		{"compwrite 0x30=7 0x40=8", "OK (2 pairs)\n"},
		{"compread 0x30 0x40", "  0x30: 0x07\n  0x40: 0x08\n"},
		{"fifowrite 0x50 1,2", "OK (2 values)\n"},
		{"fiforead 0x50 3", "  0x50: [0x01 0x02 0x02]\n"},
		{"posted on", "Posted writes: on\n"},
		{"w 0x60 0x11", "OK\n"},
		{"read 0x60", "  0x60: 0x11\n"},
	}

	for _, s := range steps {
		out.Reset()
		require.NoError(t, sh.Exec(ctx, s.line), s.line)
		assert.Equal(t, s.want, out.String(), s.line)
	}
}

func TestExecErrors(t *testing.T) {
	sh, _ := newShell(t)
	ctx := context.Background()

	tests := []struct {
		line    string
		wantErr string
	}{
		{"bogus", "unknown command: bogus"},
		{"read", "usage: read ADDR"},
		{"write 0x10", "usage: write ADDR VALUE"},
		{"read zz", `invalid number "zz"`},
		{"compwrite 0x30", `invalid pair "0x30"`},
		{"posted maybe", "usage: posted on|off"},
		{"expect 0x70 0x01", "mismatch"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := sh.Exec(ctx, tt.line)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.ErrorIs(t, sh.Exec(ctx, "expect 0x70 0x01"), client.ErrMismatch)
	assert.ErrorIs(t, sh.Exec(ctx, "exit"), ErrExit)
}

func TestExecLimits(t *testing.T) {
	sh, out := newShell(t)

	require.NoError(t, sh.Exec(context.Background(), "limits"))
	assert.Contains(t, out.String(), "Max message size:  512\n")
	assert.Contains(t, out.String(), "Seq read count:")

	out.Reset()
	require.NoError(t, sh.Exec(context.Background(), "help"))
	assert.Contains(t, out.String(), "compwrite ADDR=VALUE...")
}
