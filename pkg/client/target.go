package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/log"
	"github.com/rap-protocol/rap-go/pkg/serdes"
	"github.com/rap-protocol/rap-go/pkg/transport"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// Target issues RAP commands over a transport.
type Target struct {
	name           string
	cfg            *config.Configuration
	sd             *serdes.Serdes
	tr             transport.Transport
	timeout        time.Duration
	maxMessageSize int
	logger         log.Logger
	slog           *slog.Logger
	onInterrupt    InterruptHandler
	connID         string
	remote         string

	sendMu sync.Mutex

	mu      sync.Mutex
	pending map[uint8]chan wire.Response
	nextTxn uint8
	closed  bool
	cause   error

	done chan struct{}
}

// New creates a Target and starts its receive goroutine. The Target owns tr
// and closes it on Close.
func New(cfg *config.Configuration, tr transport.Transport, opts ...Option) (*Target, error) {
	t := &Target{
		name:           DefaultName,
		cfg:            cfg,
		tr:             tr,
		timeout:        DefaultTimeout,
		maxMessageSize: DefaultMaxMessageSize,
		logger:         log.NoopLogger{},
		slog:           slog.Default(),
		pending:        make(map[uint8]chan wire.Response),
		done:           make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}

	sd, err := serdes.New(cfg, t.maxMessageSize)
	if err != nil {
		return nil, err
	}
	t.sd = sd

	if d, ok := tr.(transport.Describer); ok {
		t.connID = d.ID()
		t.remote = d.RemoteAddr()
	}

	t.logState("", "open", "")
	go t.receiveLoop()
	return t, nil
}

// Name returns the target name.
func (t *Target) Name() string { return t.name }

// Config returns the bound configuration.
func (t *Target) Config() *config.Configuration { return t.cfg }

// Serdes returns the codec, e.g. to query maximum element counts.
func (t *Target) Serdes() *serdes.Serdes { return t.sd }

// Pending returns the number of calls awaiting a response.
func (t *Target) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// Done is closed once the receive goroutine has exited.
func (t *Target) Done() <-chan struct{} { return t.done }

// Close fails every pending call with ErrClientClosed, closes the transport
// and waits for the receive goroutine to exit.
func (t *Target) Close() error {
	t.shutdown(ErrClientClosed)
	err := t.tr.Close()
	<-t.done
	if errors.Is(err, transport.ErrClosed) {
		err = nil
	}
	return err
}

// shutdown marks the target closed and releases every pending call.
func (t *Target) shutdown(cause error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.cause = cause
	pending := t.pending
	t.pending = make(map[uint8]chan wire.Response)
	t.mu.Unlock()

	for _, ch := range pending {
		close(ch)
	}
	t.logState("open", "closed", cause.Error())
}

func (t *Target) closedErr() error {
	if t.cause == nil || errors.Is(t.cause, ErrClientClosed) {
		return ErrClientClosed
	}
	return fmt.Errorf("%w: %w", ErrClientClosed, t.cause)
}

// reserve allocates a transaction id. Ids advance monotonically and wrap,
// skipping ids still pending. When wait is set the id stays reserved until
// release.
func (t *Target) reserve(wait bool) (uint8, chan wire.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, nil, t.closedErr()
	}
	for range 256 {
		id := t.nextTxn
		t.nextTxn++
		if _, busy := t.pending[id]; busy {
			continue
		}
		if !wait {
			return id, nil, nil
		}
		ch := make(chan wire.Response, 1)
		t.pending[id] = ch
		return id, ch, nil
	}
	return 0, nil, ErrNoTransactionID
}

func (t *Target) release(id uint8, ch chan wire.Response) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur, ok := t.pending[id]; ok && cur == ch {
		delete(t.pending, id)
	}
}

// deliver routes resp to its waiting call. It reports false when no call
// waits for the transaction id.
func (t *Target) deliver(resp wire.Response) bool {
	t.mu.Lock()
	ch, ok := t.pending[resp.TxnID()]
	if ok {
		delete(t.pending, resp.TxnID())
	}
	t.mu.Unlock()

	if !ok {
		return false
	}
	ch <- resp
	return true
}

// roundTrip sends cmd and, unless it is posted, waits for its response.
// Naks are returned as *NakError.
func (t *Target) roundTrip(ctx context.Context, cmd wire.Command) (wire.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := t.sd.EncodedCommandSize(cmd); err != nil {
		return nil, err
	}

	posted := cmd.IsPosted()
	id, ch, err := t.reserve(!posted)
	if err != nil {
		return nil, err
	}
	cmd = cmd.WithTxnID(id)

	data, err := t.sd.EncodeCommand(cmd)
	if err != nil {
		t.release(id, ch)
		return nil, err
	}

	start := time.Now()
	t.sendMu.Lock()
	err = t.tr.Send(data)
	t.sendMu.Unlock()
	if err != nil {
		t.release(id, ch)
		t.logError("send", err)
		return nil, fmt.Errorf("send %s: %w", cmd.Opcode(), err)
	}
	t.logMessage(log.DirectionOut, log.CommandMessage(cmd))

	if posted {
		return nil, nil
	}

	var expired <-chan time.Time
	if t.timeout > 0 {
		timer := time.NewTimer(t.timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			t.mu.Lock()
			err := t.closedErr()
			t.mu.Unlock()
			return nil, err
		}
		m := log.ResponseMessage(resp)
		elapsed := time.Since(start)
		m.ProcessingTime = &elapsed
		t.logMessage(log.DirectionIn, m)
		return t.check(cmd, resp)

	case <-expired:
		t.release(id, ch)
		return nil, fmt.Errorf("%w: %s txn %d after %s", ErrTimeout, cmd.Opcode(), id, t.timeout)

	case <-ctx.Done():
		t.release(id, ch)
		return nil, ctx.Err()
	}
}

func (t *Target) check(cmd wire.Command, resp wire.Response) (wire.Response, error) {
	if !wire.Answers(resp, cmd.Opcode()) {
		return nil, fmt.Errorf("%w: %s answering %s", ErrUnexpectedResponse, resp.Opcode(), cmd.Opcode())
	}
	if nak, ok := resp.(*wire.NakResponse); ok {
		return nil, &NakError{Op: cmd.Opcode(), Status: nak.Status}
	}
	return resp, nil
}

// receiveLoop decodes every incoming message and routes it. It exits when
// the transport is closed or lost.
func (t *Target) receiveLoop() {
	defer close(t.done)

	for {
		data, err := t.tr.Receive(0)
		if err != nil {
			if errors.Is(err, transport.ErrTimeout) {
				continue
			}
			if errors.Is(err, transport.ErrMessageTooLarge) {
				t.slog.Debug("rap client: dropping oversized response", "target", t.name, "error", err)
				t.logError("receive", err)
				continue
			}
			if errors.Is(err, transport.ErrClosed) {
				t.shutdown(ErrClientClosed)
			} else {
				t.slog.Warn("rap client: receive failed", "target", t.name, "error", err)
				t.logError("receive", err)
				t.shutdown(err)
			}
			return
		}

		resp, err := t.sd.DecodeResponse(data)
		if err != nil {
			t.slog.Debug("rap client: dropping undecodable response", "target", t.name, "size", len(data), "error", err)
			t.logError("decode response", err)
			continue
		}

		if irq, ok := resp.(*wire.InterruptResponse); ok {
			t.logMessage(log.DirectionIn, log.ResponseMessage(resp))
			if t.onInterrupt != nil {
				t.onInterrupt(irq.Status)
			}
			continue
		}

		if !t.deliver(resp) {
			t.slog.Debug("rap client: dropping response for unknown transaction",
				"target", t.name, "opcode", resp.Opcode().String(), "txn", resp.TxnID())
			t.logMessage(log.DirectionIn, log.ResponseMessage(resp))
			t.logError("correlate response", fmt.Errorf("%w: txn %d", ErrUnexpectedResponse, resp.TxnID()))
		}
	}
}

func (t *Target) event(dir log.Direction, layer log.Layer, cat log.Category) log.Event {
	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: t.connID,
		Direction:    dir,
		Layer:        layer,
		Category:     cat,
		LocalRole:    log.RoleClient,
		RemoteAddr:   t.remote,
		Endpoint:     t.name,
	}
}

func (t *Target) logMessage(dir log.Direction, m *log.MessageEvent) {
	if !log.Enabled(t.logger) {
		return
	}
	e := t.event(dir, log.LayerWire, log.CategoryMessage)
	e.Message = m
	t.logger.Log(e)
}

func (t *Target) logError(context string, err error) {
	e := t.event(log.DirectionIn, log.LayerWire, log.CategoryError)
	e.Error = &log.ErrorEventData{Layer: log.LayerWire, Message: err.Error(), Context: context}
	t.logger.Log(e)
}

func (t *Target) logState(from, to, reason string) {
	e := t.event(log.DirectionOut, log.LayerService, log.CategoryState)
	e.StateChange = &log.StateChangeEvent{
		Entity:   log.StateEntityClient,
		OldState: from,
		NewState: to,
		Reason:   reason,
	}
	t.logger.Log(e)
}
