package server

import (
	"context"

	"github.com/rap-protocol/rap-go/pkg/register"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// HandleCommand executes cmd against the store and returns its Ack, or a Nak
// when the store fails or the answer would not fit in a message. The
// returned response is built for posted commands too; Serve discards it.
func (a *Adapter) HandleCommand(ctx context.Context, cmd wire.Command) wire.Response {
	if status := a.checkReadCount(cmd); status != wire.StatusSuccess {
		return wire.NewNak(cmd, status)
	}

	resp, err := a.dispatch(ctx, cmd)
	if err != nil {
		status := register.StatusOf(err)
		a.slog.Debug("rap server: store rejected command", "name", a.name,
			"opcode", cmd.Opcode().String(), "txn", cmd.TxnID(), "status", status.String(), "error", err)
		return wire.NewNak(cmd, status)
	}
	return resp
}

// checkReadCount rejects reads whose Ack could not be encoded before the
// store is touched, since FIFO reads are destructive.
func (a *Adapter) checkReadCount(cmd wire.Command) wire.Status {
	switch c := cmd.(type) {
	case *wire.ReadSeqCommand:
		if c.Count > uint64(a.sd.MaxSeqReadCount()) {
			return wire.StatusInvalidLength
		}
	case *wire.ReadCompCommand:
		if len(c.Addresses) > a.sd.MaxCompReadCount() {
			return wire.StatusInvalidLength
		}
	}
	return wire.StatusSuccess
}

func (a *Adapter) dispatch(ctx context.Context, cmd wire.Command) (wire.Response, error) {
	txn := cmd.TxnID()

	switch c := cmd.(type) {
	case *wire.ReadSingleCommand:
		v, err := a.store.Read(ctx, c.Addr)
		if err != nil {
			return nil, err
		}
		return &wire.ReadSingleAckResponse{Txn: txn, Data: v & a.cfg.DataMask()}, nil

	case *wire.WriteSingleCommand:
		if err := a.store.Write(ctx, c.Addr, c.Data); err != nil {
			return nil, err
		}
		return &wire.WriteSingleAckResponse{Txn: txn}, nil

	case *wire.ReadSeqCommand:
		out := make([]uint64, c.Count)
		var err error
		if c.Increment == 0 {
			err = a.store.FifoRead(ctx, c.Addr, out)
		} else {
			err = a.store.SeqRead(ctx, c.Addr, out, c.Increment)
		}
		if err != nil {
			return nil, err
		}
		return &wire.ReadSeqAckResponse{Txn: txn, Data: a.mask(out)}, nil

	case *wire.WriteSeqCommand:
		var err error
		if c.Increment == 0 {
			err = a.store.FifoWrite(ctx, c.Addr, c.Data)
		} else {
			err = a.store.SeqWrite(ctx, c.Addr, c.Data, c.Increment)
		}
		if err != nil {
			return nil, err
		}
		return &wire.WriteSeqAckResponse{Txn: txn}, nil

	case *wire.ReadCompCommand:
		out := make([]uint64, len(c.Addresses))
		if err := a.store.CompRead(ctx, c.Addresses, out); err != nil {
			return nil, err
		}
		return &wire.ReadCompAckResponse{Txn: txn, Data: a.mask(out)}, nil

	case *wire.WriteCompCommand:
		if err := a.store.CompWrite(ctx, c.AddrData); err != nil {
			return nil, err
		}
		return &wire.WriteCompAckResponse{Txn: txn}, nil

	case *wire.ReadModifyWriteCommand:
		if err := a.store.ReadModifyWrite(ctx, c.Addr, c.Data, c.Mask); err != nil {
			return nil, err
		}
		return &wire.ReadModifyWriteAckResponse{Txn: txn}, nil

	default:
		return nil, register.NewStatusError(wire.StatusUnsupported, 0, cmd.Opcode().String())
	}
}

// mask clears bits a store returned beyond the data width.
func (a *Adapter) mask(vs []uint64) []uint64 {
	m := a.cfg.DataMask()
	for i := range vs {
		vs[i] &= m
	}
	return vs
}
