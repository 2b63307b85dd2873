package client

import (
	"context"
	"errors"

	"github.com/rap-protocol/rap-go/pkg/register"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// Registers returns a view of t as a register.Target. Writes are issued
// non-posted so every store error reaches the caller. A server can use the
// view as its store to forward commands to another server.
func (t *Target) Registers() register.Target {
	return registerView{t: t}
}

type registerView struct {
	t *Target
}

func (v registerView) Write(ctx context.Context, addr, data uint64) error {
	return forwarded(addr, v.t.Write(ctx, addr, data, false))
}

func (v registerView) Read(ctx context.Context, addr uint64) (uint64, error) {
	d, err := v.t.Read(ctx, addr)
	return d, forwarded(addr, err)
}

func (v registerView) ReadModifyWrite(ctx context.Context, addr, data, mask uint64) error {
	return forwarded(addr, v.t.ReadModifyWrite(ctx, addr, data, mask, false))
}

func (v registerView) SeqWrite(ctx context.Context, addr uint64, data []uint64, increment uint64) error {
	return forwarded(addr, v.t.SeqWrite(ctx, addr, data, increment, false))
}

func (v registerView) SeqRead(ctx context.Context, addr uint64, out []uint64, increment uint64) error {
	return forwarded(addr, v.t.SeqRead(ctx, addr, out, increment))
}

func (v registerView) FifoWrite(ctx context.Context, addr uint64, data []uint64) error {
	return forwarded(addr, v.t.FifoWrite(ctx, addr, data, false))
}

func (v registerView) FifoRead(ctx context.Context, addr uint64, out []uint64) error {
	return forwarded(addr, v.t.FifoRead(ctx, addr, out))
}

func (v registerView) CompWrite(ctx context.Context, pairs []wire.AddrData) error {
	var first uint64
	if len(pairs) > 0 {
		first = pairs[0].Addr
	}
	return forwarded(first, v.t.CompWrite(ctx, pairs, false))
}

func (v registerView) CompRead(ctx context.Context, addrs []uint64, out []uint64) error {
	var first uint64
	if len(addrs) > 0 {
		first = addrs[0]
	}
	return forwarded(first, v.t.CompRead(ctx, addrs, out))
}

// forwarded turns a remote Nak into a *register.StatusError carrying the
// same status.
func forwarded(addr uint64, err error) error {
	var nak *NakError
	if errors.As(err, &nak) {
		return register.NewStatusError(nak.Status, addr, "forwarded "+nak.Op.String())
	}
	return err
}

var _ register.Target = registerView{}
