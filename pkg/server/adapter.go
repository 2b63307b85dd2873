package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/log"
	"github.com/rap-protocol/rap-go/pkg/register"
	"github.com/rap-protocol/rap-go/pkg/serdes"
	"github.com/rap-protocol/rap-go/pkg/transport"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// Stats counts what an Adapter has processed.
type Stats struct {
	Received     uint64
	DecodeErrors uint64
	Acks         uint64
	Naks         uint64
	Posted       uint64
	SendErrors   uint64
	Interrupts   uint64
}

type counters struct {
	received     atomic.Uint64
	decodeErrors atomic.Uint64
	acks         atomic.Uint64
	naks         atomic.Uint64
	posted       atomic.Uint64
	sendErrors   atomic.Uint64
	interrupts   atomic.Uint64
}

// Adapter serves RAP commands from one transport into a register store.
type Adapter struct {
	name           string
	cfg            *config.Configuration
	sd             *serdes.Serdes
	tr             transport.Transport
	store          register.Target
	maxMessageSize int
	receiveTimeout time.Duration
	logger         log.Logger
	slog           *slog.Logger
	connID         string
	remote         string

	sendMu sync.Mutex
	stats  counters
}

// New creates an Adapter. The caller keeps ownership of tr and store.
func New(cfg *config.Configuration, tr transport.Transport, store register.Target, opts ...Option) (*Adapter, error) {
	a := &Adapter{
		name:           DefaultName,
		cfg:            cfg,
		tr:             tr,
		store:          store,
		maxMessageSize: DefaultMaxMessageSize,
		receiveTimeout: DefaultReceiveTimeout,
		logger:         log.NoopLogger{},
		slog:           slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	sd, err := serdes.New(cfg, a.maxMessageSize)
	if err != nil {
		return nil, err
	}
	a.sd = sd

	if d, ok := tr.(transport.Describer); ok {
		a.connID = d.ID()
		a.remote = d.RemoteAddr()
	}
	return a, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string { return a.name }

// Serdes returns the codec.
func (a *Adapter) Serdes() *serdes.Serdes { return a.sd }

// Stats returns a snapshot of the counters.
func (a *Adapter) Stats() Stats {
	return Stats{
		Received:     a.stats.received.Load(),
		DecodeErrors: a.stats.decodeErrors.Load(),
		Acks:         a.stats.acks.Load(),
		Naks:         a.stats.naks.Load(),
		Posted:       a.stats.posted.Load(),
		SendErrors:   a.stats.sendErrors.Load(),
		Interrupts:   a.stats.interrupts.Load(),
	}
}

// Serve processes messages until ctx is done or the transport fails. It
// returns ctx.Err() on cancellation, nil when the transport was closed
// locally, and the transport error otherwise. Oversized frames are counted
// as decode errors and skipped.
func (a *Adapter) Serve(ctx context.Context) error {
	a.logState("", "serving", "")
	a.slog.Info("rap server: serving", "name", a.name, "config", a.cfg.String(), "max_message_size", a.maxMessageSize)

	for {
		if err := ctx.Err(); err != nil {
			a.logState("serving", "stopped", err.Error())
			return err
		}

		data, err := a.tr.Receive(a.receiveTimeout)
		if err != nil {
			switch {
			case errors.Is(err, transport.ErrTimeout):
				continue
			case errors.Is(err, transport.ErrClosed):
				a.logState("serving", "stopped", "transport closed")
				return nil
			case errors.Is(err, transport.ErrMessageTooLarge):
				// The transport already consumed the frame.
				a.stats.received.Add(1)
				a.stats.decodeErrors.Add(1)
				a.slog.Warn("rap server: dropping oversized message", "name", a.name, "error", err)
				a.logError("receive", err)
				continue
			default:
				a.slog.Warn("rap server: receive failed", "name", a.name, "error", err)
				a.logError("receive", err)
				a.logState("serving", "stopped", err.Error())
				return err
			}
		}

		a.stats.received.Add(1)
		a.handleMessage(ctx, data)
	}
}

// handleMessage decodes, dispatches and answers one message.
func (a *Adapter) handleMessage(ctx context.Context, data []byte) {
	start := time.Now()

	cmd, err := a.sd.DecodeCommand(data)
	if err != nil {
		a.stats.decodeErrors.Add(1)
		a.slog.Warn("rap server: dropping undecodable message", "name", a.name, "size", len(data), "error", err)
		a.logError("decode command", err)
		return
	}
	a.logMessage(log.DirectionIn, log.CommandMessage(cmd))

	resp := a.HandleCommand(ctx, cmd)

	if cmd.IsPosted() {
		a.stats.posted.Add(1)
		if nak, ok := resp.(*wire.NakResponse); ok {
			a.slog.Debug("rap server: posted command failed", "name", a.name,
				"opcode", cmd.Opcode().String(), "txn", cmd.TxnID(), "status", nak.Status.String())
		}
		return
	}

	if err := a.send(resp); err != nil {
		a.stats.sendErrors.Add(1)
		a.slog.Warn("rap server: send failed", "name", a.name, "opcode", resp.Opcode().String(), "error", err)
		a.logError("send response", err)
		return
	}

	if resp.Opcode().IsNak() {
		a.stats.naks.Add(1)
	} else {
		a.stats.acks.Add(1)
	}
	m := log.ResponseMessage(resp)
	elapsed := time.Since(start)
	m.ProcessingTime = &elapsed
	a.logMessage(log.DirectionOut, m)
}

// send encodes and transmits resp. A response that cannot be encoded is
// replaced by a Nak carrying StatusInternal.
func (a *Adapter) send(resp wire.Response) error {
	data, err := a.sd.EncodeResponse(resp)
	if err != nil {
		a.logError("encode response", err)
		nak := &wire.NakResponse{Command: resp.Opcode().Command(), Txn: resp.TxnID(), Status: wire.StatusInternal}
		if data, err = a.sd.EncodeResponse(nak); err != nil {
			return err
		}
	}

	a.sendMu.Lock()
	defer a.sendMu.Unlock()
	return a.tr.Send(data)
}

// SendInterrupt emits an unsolicited Interrupt carrying status.
func (a *Adapter) SendInterrupt(status wire.Status) error {
	if !a.cfg.Interrupt() {
		return fmt.Errorf("%w: interrupt", serdes.ErrFeatureDisabled)
	}
	irq := &wire.InterruptResponse{Status: status}
	data, err := a.sd.EncodeResponse(irq)
	if err != nil {
		return err
	}

	a.sendMu.Lock()
	err = a.tr.Send(data)
	a.sendMu.Unlock()
	if err != nil {
		a.stats.sendErrors.Add(1)
		return err
	}
	a.stats.interrupts.Add(1)
	a.logMessage(log.DirectionOut, log.ResponseMessage(irq))
	return nil
}

func (a *Adapter) event(dir log.Direction, layer log.Layer, cat log.Category) log.Event {
	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: a.connID,
		Direction:    dir,
		Layer:        layer,
		Category:     cat,
		LocalRole:    log.RoleServer,
		RemoteAddr:   a.remote,
		Endpoint:     a.name,
	}
}

func (a *Adapter) logMessage(dir log.Direction, m *log.MessageEvent) {
	if !log.Enabled(a.logger) {
		return
	}
	e := a.event(dir, log.LayerWire, log.CategoryMessage)
	e.Message = m
	a.logger.Log(e)
}

func (a *Adapter) logError(context string, err error) {
	e := a.event(log.DirectionIn, log.LayerWire, log.CategoryError)
	e.Error = &log.ErrorEventData{Layer: log.LayerWire, Message: err.Error(), Context: context}
	a.logger.Log(e)
}

func (a *Adapter) logState(from, to, reason string) {
	e := a.event(log.DirectionOut, log.LayerService, log.CategoryState)
	e.StateChange = &log.StateChangeEvent{
		Entity:   log.StateEntityAdapter,
		OldState: from,
		NewState: to,
		Reason:   reason,
	}
	a.logger.Log(e)
}
