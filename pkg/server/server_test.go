package server

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/log"
	"github.com/rap-protocol/rap-go/pkg/register"
	"github.com/rap-protocol/rap-go/pkg/register/mocks"
	"github.com/rap-protocol/rap-go/pkg/serdes"
	"github.com/rap-protocol/rap-go/pkg/transport"
	tmocks "github.com/rap-protocol/rap-go/pkg/transport/mocks"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

const testMax = 32

func allFeatures() *config.Configuration {
	return config.MustNew(config.Params{
		AddressBits: 8, AddressBytes: 1,
		DataBits: 8, DataBytes: 1,
		LengthBytes: 1, CrcBytes: 1,
		Features: config.FeatureAll,
	})
}

type capturingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (l *capturingLogger) Log(e log.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *capturingLogger) messages() []*log.MessageEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*log.MessageEvent
	for _, e := range l.events {
		if e.Message != nil {
			out = append(out, e.Message)
		}
	}
	return out
}

func idleTransport() transport.Transport {
	end, _ := transport.NewPairedIPC(1)
	return end
}

// harness runs an Adapter on one end of an IPC pair and talks to it from
// the other.
type harness struct {
	t       *testing.T
	adapter *Adapter
	peer    *transport.IPC
	sd      *serdes.Serdes
	done    chan error
}

func newHarness(t *testing.T, cfg *config.Configuration, store register.Target, opts ...Option) *harness {
	t.Helper()
	local, peer := transport.NewPairedIPC(16)

	opts = append([]Option{WithMaxMessageSize(testMax), WithReceiveTimeout(10 * time.Millisecond)}, opts...)
	a, err := New(cfg, local, store, opts...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	h := &harness{t: t, adapter: a, peer: peer, sd: serdes.MustNew(cfg, testMax), done: make(chan error, 1)}
	go func() { h.done <- a.Serve(ctx) }()

	t.Cleanup(func() {
		cancel()
		<-h.done
		local.Close()
		peer.Close()
	})
	return h
}

func (h *harness) send(cmd wire.Command) {
	h.t.Helper()
	data, err := h.sd.EncodeCommand(cmd)
	require.NoError(h.t, err)
	require.NoError(h.t, h.peer.Send(data))
}

func (h *harness) receive() wire.Response {
	h.t.Helper()
	data, err := h.peer.Receive(time.Second)
	require.NoError(h.t, err)
	resp, err := h.sd.DecodeResponse(data)
	require.NoError(h.t, err)
	return resp
}

func (h *harness) roundTrip(cmd wire.Command) wire.Response {
	h.t.Helper()
	h.send(cmd)
	return h.receive()
}

// waitAcks waits until n Acks were counted. Counters are updated after the
// response is on the wire.
func (h *harness) waitAcks(n uint64) Stats {
	h.t.Helper()
	require.Eventually(h.t, func() bool { return h.adapter.Stats().Acks == n }, time.Second, time.Millisecond)
	return h.adapter.Stats()
}

func TestServeAnswersCommands(t *testing.T) {
	cfg := allFeatures()
	h := newHarness(t, cfg, register.NewSimpleTarget("regs", cfg))

	resp := h.roundTrip(&wire.WriteSingleCommand{Txn: 1, Addr: 0x10, Data: 0xA5})
	assert.Equal(t, &wire.WriteSingleAckResponse{Txn: 1}, resp)

	resp = h.roundTrip(&wire.ReadSingleCommand{Txn: 2, Addr: 0x10})
	assert.Equal(t, &wire.ReadSingleAckResponse{Txn: 2, Data: 0xA5}, resp)

	resp = h.roundTrip(&wire.ReadModifyWriteCommand{Txn: 3, Addr: 0x10, Data: 0x0F, Mask: 0x0F})
	assert.Equal(t, &wire.ReadModifyWriteAckResponse{Txn: 3}, resp)
	resp = h.roundTrip(&wire.ReadSingleCommand{Txn: 4, Addr: 0x10})
	assert.Equal(t, &wire.ReadSingleAckResponse{Txn: 4, Data: 0xAF}, resp)

	resp = h.roundTrip(&wire.WriteSeqCommand{Txn: 5, Addr: 0x20, Increment: 2, Data: []uint64{1, 2, 3}})
	assert.Equal(t, &wire.WriteSeqAckResponse{Txn: 5}, resp)
	resp = h.roundTrip(&wire.ReadSeqCommand{Txn: 6, Addr: 0x20, Increment: 2, Count: 3})
	assert.Equal(t, &wire.ReadSeqAckResponse{Txn: 6, Data: []uint64{1, 2, 3}}, resp)

	resp = h.roundTrip(&wire.WriteCompCommand{Txn: 7, AddrData: []wire.AddrData{{Addr: 0x30, Data: 9}, {Addr: 0x05, Data: 8}}})
	assert.Equal(t, &wire.WriteCompAckResponse{Txn: 7}, resp)
	resp = h.roundTrip(&wire.ReadCompCommand{Txn: 8, Addresses: []uint64{0x05, 0x30, 0x10}})
	assert.Equal(t, &wire.ReadCompAckResponse{Txn: 8, Data: []uint64{8, 9, 0xAF}}, resp)

	stats := h.waitAcks(8)
	assert.Equal(t, uint64(8), stats.Received)
	assert.Zero(t, stats.Naks)
}

func TestServeFifoAccess(t *testing.T) {
	cfg := allFeatures()
	store := register.NewAdvancedTarget("regs", cfg, register.WithFifoDepth(4))
	h := newHarness(t, cfg, store)

	resp := h.roundTrip(&wire.WriteSeqCommand{Txn: 1, Addr: 0x40, Data: []uint64{7, 8, 9}})
	assert.Equal(t, &wire.WriteSeqAckResponse{Txn: 1}, resp)
	assert.Equal(t, 3, store.FifoLen(0x40))

	resp = h.roundTrip(&wire.ReadSeqCommand{Txn: 2, Addr: 0x40, Count: 3})
	assert.Equal(t, &wire.ReadSeqAckResponse{Txn: 2, Data: []uint64{7, 8, 9}}, resp)

	resp = h.roundTrip(&wire.WriteSeqCommand{Txn: 3, Addr: 0x40, Data: []uint64{1, 2, 3, 4, 5}})
	assert.Equal(t, wire.NewNak(&wire.WriteSeqCommand{Txn: 3}, wire.StatusBusy), resp)
}

func TestServeSurvivesUndecodableMessages(t *testing.T) {
	cfg := allFeatures()
	h := newHarness(t, cfg, register.NewSimpleTarget("regs", cfg))

	good, err := h.sd.EncodeCommand(&wire.ReadSingleCommand{Txn: 1, Addr: 3})
	require.NoError(t, err)
	badCrc := append([]byte(nil), good...)
	badCrc[len(badCrc)-1] ^= 0xFF

	require.NoError(t, h.peer.Send([]byte{0xEE, 0x00, 0x00}))
	require.NoError(t, h.peer.Send(badCrc))
	require.NoError(t, h.peer.Send(good))

	resp := h.receive()
	assert.Equal(t, &wire.ReadSingleAckResponse{Txn: 1, Data: 0}, resp)

	stats := h.waitAcks(1)
	assert.Equal(t, uint64(3), stats.Received)
	assert.Equal(t, uint64(2), stats.DecodeErrors)
}

func TestServeSkipsOversizedDatagram(t *testing.T) {
	cfg := allFeatures()
	local, err := transport.ListenUDP("127.0.0.1:0", transport.WithMaxMessageSize(testMax))
	require.NoError(t, err)

	a, err := New(cfg, local, register.NewSimpleTarget("regs", cfg),
		WithMaxMessageSize(testMax), WithReceiveTimeout(10*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()
	defer func() {
		cancel()
		<-done
		local.Close()
	}()

	peer, err := net.DialUDP("udp", nil, local.LocalAddr().(*net.UDPAddr))
	require.NoError(t, err)
	defer peer.Close()

	_, err = peer.Write(make([]byte, testMax+1))
	require.NoError(t, err)

	sd := serdes.MustNew(cfg, testMax)
	good, err := sd.EncodeCommand(&wire.ReadSingleCommand{Txn: 4, Addr: 2})
	require.NoError(t, err)
	_, err = peer.Write(good)
	require.NoError(t, err)

	require.NoError(t, peer.SetReadDeadline(time.Now().Add(time.Second)))
	buf := make([]byte, 64)
	n, err := peer.Read(buf)
	require.NoError(t, err)
	resp, err := sd.DecodeResponse(buf[:n])
	require.NoError(t, err)
	assert.Equal(t, &wire.ReadSingleAckResponse{Txn: 4, Data: 0}, resp)

	require.Eventually(t, func() bool { return a.Stats().Acks == 1 }, time.Second, time.Millisecond)
	stats := a.Stats()
	assert.Equal(t, uint64(2), stats.Received)
	assert.Equal(t, uint64(1), stats.DecodeErrors)
	assert.Empty(t, done, "Serve must keep running")
}

func TestServePostedCommandsGetNoResponse(t *testing.T) {
	cfg := allFeatures()
	store := register.NewSimpleTarget("regs", cfg)
	h := newHarness(t, cfg, store)

	h.send(&wire.WriteSingleCommand{Txn: 1, Posted: true, Addr: 0x11, Data: 0x22})
	h.send(&wire.WriteSeqCommand{Txn: 2, Posted: true, Addr: 0x12, Increment: 1, Data: []uint64{0x33}})

	// The first response on the wire must answer the read.
	resp := h.roundTrip(&wire.ReadSingleCommand{Txn: 3, Addr: 0x11})
	assert.Equal(t, &wire.ReadSingleAckResponse{Txn: 3, Data: 0x22}, resp)
	assert.Equal(t, uint64(0x33), store.Peek(0x12))

	stats := h.waitAcks(1)
	assert.Equal(t, uint64(2), stats.Posted)
}

func TestServeLogsMessages(t *testing.T) {
	cfg := allFeatures()
	logger := &capturingLogger{}
	h := newHarness(t, cfg, register.NewSimpleTarget("regs", cfg), WithLogger(logger), WithName("bench"))

	h.roundTrip(&wire.ReadSingleCommand{Txn: 9, Addr: 1})

	require.Eventually(t, func() bool { return len(logger.messages()) == 2 }, time.Second, 5*time.Millisecond)
	msgs := logger.messages()
	assert.Equal(t, wire.OpReadSingle, msgs[0].Opcode)
	assert.Equal(t, wire.OpReadSingleAck, msgs[1].Opcode)
	assert.Equal(t, uint8(9), msgs[1].TxnID)
	assert.NotNil(t, msgs[1].ProcessingTime)
	assert.Equal(t, "bench", h.adapter.Name())
}

func TestHandleCommandStoreErrors(t *testing.T) {
	cfg := allFeatures()

	tests := []struct {
		name string
		err  error
		want wire.Status
	}{
		{"status error", register.NewStatusError(wire.StatusReadOnly, 4, ""), wire.StatusReadOnly},
		{"wrapped status error", errors.Join(errors.New("ctx"), register.NewStatusError(wire.StatusInvalidAddress, 4, "")), wire.StatusInvalidAddress},
		{"deadline", context.DeadlineExceeded, wire.StatusTimeout},
		{"plain error", errors.New("disk on fire"), wire.StatusFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockTarget(t)
			store.EXPECT().Write(mock.Anything, uint64(4), uint64(1)).Return(tt.err)

			a, err := New(cfg, idleTransport(), store)
			require.NoError(t, err)

			cmd := &wire.WriteSingleCommand{Txn: 42, Addr: 4, Data: 1}
			resp := a.HandleCommand(context.Background(), cmd)
			assert.Equal(t, &wire.NakResponse{Command: wire.OpWriteSingle, Txn: 42, Status: tt.want}, resp)
		})
	}
}

func TestHandleCommandRejectsOversizedReads(t *testing.T) {
	cfg := config.MustProfile("a8d8l1c1")
	store := mocks.NewMockTarget(t)

	a, err := New(cfg, idleTransport(), store, WithMaxMessageSize(testMax))
	require.NoError(t, err)
	require.Equal(t, 26, a.Serdes().MaxSeqReadCount())
	require.Equal(t, 14, a.Serdes().MaxCompReadCount())

	ctx := context.Background()
	resp := a.HandleCommand(ctx, &wire.ReadSeqCommand{Txn: 1, Addr: 0, Count: 27})
	assert.Equal(t, &wire.NakResponse{Command: wire.OpReadSeq, Txn: 1, Status: wire.StatusInvalidLength}, resp)

	// FIFO reads must not drain anything when the answer cannot be sent.
	resp = a.HandleCommand(ctx, &wire.ReadSeqCommand{Txn: 2, Addr: 0, Increment: 0, Count: 200})
	assert.Equal(t, &wire.NakResponse{Command: wire.OpReadSeq, Txn: 2, Status: wire.StatusInvalidLength}, resp)

	resp = a.HandleCommand(ctx, &wire.ReadCompCommand{Txn: 3, Addresses: make([]uint64, 15)})
	assert.Equal(t, &wire.NakResponse{Command: wire.OpReadComp, Txn: 3, Status: wire.StatusInvalidLength}, resp)
}

func TestHandleCommandRoutesZeroIncrementToFifo(t *testing.T) {
	cfg := allFeatures()
	store := mocks.NewMockTarget(t)
	ctx := context.Background()

	store.EXPECT().FifoRead(mock.Anything, uint64(5), mock.Anything).
		RunAndReturn(func(_ context.Context, _ uint64, out []uint64) error {
			for i := range out {
				out[i] = 0x100 + uint64(i) // masked to the data width
			}
			return nil
		})
	store.EXPECT().SeqRead(mock.Anything, uint64(5), mock.Anything, uint64(1)).Return(nil)
	store.EXPECT().FifoWrite(mock.Anything, uint64(6), []uint64{1, 2}).Return(nil)
	store.EXPECT().SeqWrite(mock.Anything, uint64(6), []uint64{1, 2}, uint64(3)).Return(nil)

	a, err := New(cfg, idleTransport(), store)
	require.NoError(t, err)

	resp := a.HandleCommand(ctx, &wire.ReadSeqCommand{Txn: 1, Addr: 5, Count: 2})
	assert.Equal(t, &wire.ReadSeqAckResponse{Txn: 1, Data: []uint64{0x00, 0x01}}, resp)

	resp = a.HandleCommand(ctx, &wire.ReadSeqCommand{Txn: 2, Addr: 5, Increment: 1, Count: 2})
	assert.Equal(t, &wire.ReadSeqAckResponse{Txn: 2, Data: []uint64{0, 0}}, resp)

	resp = a.HandleCommand(ctx, &wire.WriteSeqCommand{Txn: 3, Addr: 6, Data: []uint64{1, 2}})
	assert.Equal(t, &wire.WriteSeqAckResponse{Txn: 3}, resp)

	resp = a.HandleCommand(ctx, &wire.WriteSeqCommand{Txn: 4, Addr: 6, Increment: 3, Data: []uint64{1, 2}})
	assert.Equal(t, &wire.WriteSeqAckResponse{Txn: 4}, resp)
}

func TestSendInterrupt(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		cfg := config.MustProfile("a8d8l1c1")
		a, err := New(cfg, idleTransport(), register.NewSimpleTarget("regs", cfg))
		require.NoError(t, err)
		assert.ErrorIs(t, a.SendInterrupt(wire.StatusBusy), serdes.ErrFeatureDisabled)
	})

	t.Run("enabled", func(t *testing.T) {
		cfg := allFeatures()
		h := newHarness(t, cfg, register.NewSimpleTarget("regs", cfg))

		require.NoError(t, h.adapter.SendInterrupt(wire.StatusBusy))
		assert.Equal(t, &wire.InterruptResponse{Status: wire.StatusBusy}, h.receive())
		assert.Equal(t, uint64(1), h.adapter.Stats().Interrupts)
	})
}

func TestServeReturns(t *testing.T) {
	cfg := allFeatures()
	store := register.NewSimpleTarget("regs", cfg)

	t.Run("context cancelled", func(t *testing.T) {
		local, _ := transport.NewPairedIPC(1)
		a, err := New(cfg, local, store, WithReceiveTimeout(5*time.Millisecond))
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, a.Serve(ctx), context.DeadlineExceeded)
	})

	t.Run("closed locally", func(t *testing.T) {
		local, _ := transport.NewPairedIPC(1)
		a, err := New(cfg, local, store)
		require.NoError(t, err)
		local.Close()
		assert.NoError(t, a.Serve(context.Background()))
	})

	t.Run("peer gone", func(t *testing.T) {
		local, peer := transport.NewPairedIPC(1)
		a, err := New(cfg, local, store)
		require.NoError(t, err)
		peer.Close()
		assert.ErrorIs(t, a.Serve(context.Background()), transport.ErrConnectionLost)
	})
}

func TestServeCountsSendErrors(t *testing.T) {
	cfg := allFeatures()
	sd := serdes.MustNew(cfg, DefaultMaxMessageSize)
	data, err := sd.EncodeCommand(&wire.ReadSingleCommand{Txn: 1, Addr: 2})
	require.NoError(t, err)

	tr := tmocks.NewMockTransport(t)
	tr.EXPECT().Receive(mock.Anything).Return(data, nil).Once()
	tr.EXPECT().Receive(mock.Anything).Return(nil, transport.ErrClosed).Once()
	tr.EXPECT().Send(mock.Anything).Return(errors.New("link down")).Once()

	a, err := New(cfg, tr, register.NewSimpleTarget("regs", cfg))
	require.NoError(t, err)
	require.NoError(t, a.Serve(context.Background()))

	stats := a.Stats()
	assert.Equal(t, uint64(1), stats.Received)
	assert.Equal(t, uint64(1), stats.SendErrors)
	assert.Zero(t, stats.Acks)
}

func TestServeListener(t *testing.T) {
	cfg := allFeatures()
	store := register.NewSimpleTarget("regs", cfg)

	ln, err := transport.Listen("127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ServeListener(ctx, ln, cfg, store, WithMaxMessageSize(testMax), WithReceiveTimeout(10*time.Millisecond))
	}()

	sd := serdes.MustNew(cfg, testMax)
	for i := uint8(1); i <= 2; i++ {
		conn, err := transport.Dial(ctx, ln.Addr().String())
		require.NoError(t, err)

		data, err := sd.EncodeCommand(&wire.WriteSingleCommand{Txn: i, Addr: uint64(i), Data: uint64(i) * 3})
		require.NoError(t, err)
		require.NoError(t, conn.Send(data))

		reply, err := conn.Receive(time.Second)
		require.NoError(t, err)
		resp, err := sd.DecodeResponse(reply)
		require.NoError(t, err)
		assert.Equal(t, &wire.WriteSingleAckResponse{Txn: i}, resp)
		conn.Close()
	}
	assert.Equal(t, uint64(3), store.Peek(1))
	assert.Equal(t, uint64(6), store.Peek(2))

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("ServeListener did not return")
	}
}
