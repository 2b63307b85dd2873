package client

import (
	"context"
	"fmt"

	"github.com/rap-protocol/rap-go/pkg/serdes"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// Write stores data at addr. A posted write returns once the command is
// sent.
func (t *Target) Write(ctx context.Context, addr, data uint64, posted bool) error {
	_, err := t.roundTrip(ctx, &wire.WriteSingleCommand{Posted: posted, Addr: addr, Data: data})
	return err
}

// Read returns the value at addr.
func (t *Target) Read(ctx context.Context, addr uint64) (uint64, error) {
	resp, err := t.roundTrip(ctx, &wire.ReadSingleCommand{Addr: addr})
	if err != nil {
		return 0, err
	}
	return resp.(*wire.ReadSingleAckResponse).Data, nil
}

// ReadModifyWrite replaces the bits of addr selected by mask with those of
// data. Requires the ReadModifyWrite feature.
func (t *Target) ReadModifyWrite(ctx context.Context, addr, data, mask uint64, posted bool) error {
	if !t.cfg.ReadModifyWrite() {
		return fmt.Errorf("%w: read-modify-write", ErrFeatureDisabled)
	}
	_, err := t.roundTrip(ctx, &wire.ReadModifyWriteCommand{Posted: posted, Addr: addr, Data: data, Mask: mask})
	return err
}

// SeqWrite writes data[i] to addr + i*increment. The increment selects the
// governing feature: 0 needs Fifo, one data word needs Sequential, any other
// stride needs Increment.
func (t *Target) SeqWrite(ctx context.Context, addr uint64, data []uint64, increment uint64, posted bool) error {
	if err := serdes.CheckSeqIncrement(t.cfg, increment); err != nil {
		return err
	}
	_, err := t.roundTrip(ctx, &wire.WriteSeqCommand{Posted: posted, Addr: addr, Increment: increment, Data: data})
	return err
}

// SeqRead fills out[i] from addr + i*increment. Feature rules are those of
// SeqWrite.
func (t *Target) SeqRead(ctx context.Context, addr uint64, out []uint64, increment uint64) error {
	if err := serdes.CheckSeqIncrement(t.cfg, increment); err != nil {
		return err
	}
	return t.readSeq(ctx, addr, out, increment)
}

// FifoWrite pushes data to the FIFO at addr. It is SeqWrite with increment
// 0 and follows the same feature rules.
func (t *Target) FifoWrite(ctx context.Context, addr uint64, data []uint64, posted bool) error {
	if err := serdes.CheckSeqIncrement(t.cfg, 0); err != nil {
		return err
	}
	_, err := t.roundTrip(ctx, &wire.WriteSeqCommand{Posted: posted, Addr: addr, Data: data})
	return err
}

// FifoRead pops len(out) values from the FIFO at addr, like SeqRead with
// increment 0.
func (t *Target) FifoRead(ctx context.Context, addr uint64, out []uint64) error {
	if err := serdes.CheckSeqIncrement(t.cfg, 0); err != nil {
		return err
	}
	return t.readSeq(ctx, addr, out, 0)
}

func (t *Target) readSeq(ctx context.Context, addr uint64, out []uint64, increment uint64) error {
	resp, err := t.roundTrip(ctx, &wire.ReadSeqCommand{Addr: addr, Increment: increment, Count: uint64(len(out))})
	if err != nil {
		return err
	}
	return fill(out, resp.(*wire.ReadSeqAckResponse).Data)
}

// CompWrite writes each address/data pair. Requires the Compressed feature.
func (t *Target) CompWrite(ctx context.Context, pairs []wire.AddrData, posted bool) error {
	if !t.cfg.Compressed() {
		return fmt.Errorf("%w: compressed", ErrFeatureDisabled)
	}
	_, err := t.roundTrip(ctx, &wire.WriteCompCommand{Posted: posted, AddrData: pairs})
	return err
}

// CompRead fills out[i] from addrs[i]. Requires the Compressed feature.
func (t *Target) CompRead(ctx context.Context, addrs []uint64, out []uint64) error {
	if !t.cfg.Compressed() {
		return fmt.Errorf("%w: compressed", ErrFeatureDisabled)
	}
	if len(out) != len(addrs) {
		return fmt.Errorf("%w: %d addresses, %d outputs", ErrInvalidArgument, len(addrs), len(out))
	}
	resp, err := t.roundTrip(ctx, &wire.ReadCompCommand{Addresses: addrs})
	if err != nil {
		return err
	}
	return fill(out, resp.(*wire.ReadCompAckResponse).Data)
}

func fill(out, data []uint64) error {
	if len(data) != len(out) {
		return fmt.Errorf("%w: %d values for %d requested", ErrUnexpectedResponse, len(data), len(out))
	}
	copy(out, data)
	return nil
}
