package serdes

import (
	"fmt"

	"github.com/rap-protocol/rap-go/pkg/wire"
)

// decoder reads big-endian fields from a message whose length has already
// been validated against its layout.
type decoder struct {
	buf []byte
	off int
}

func (d *decoder) getByte() byte {
	b := d.buf[d.off]
	d.off++
	return b
}

func (d *decoder) getUint(width int) uint64 {
	var v uint64
	for _, b := range d.buf[d.off : d.off+width] {
		v = v<<8 | uint64(b)
	}
	d.off += width
	return v
}

// frame validates everything that does not depend on the message body and
// returns a decoder positioned after the transaction id.
func (s *Serdes) frame(data []byte, known func(wire.Opcode) bool) (wire.Opcode, *decoder, error) {
	if len(data) > s.maxMessageSize {
		return 0, nil, fmt.Errorf("%w: %d bytes, limit %d", ErrMessageTooLarge, len(data), s.maxMessageSize)
	}
	c := s.layout.crc
	if len(data) < headerBytes+c {
		return 0, nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}

	body := data[:len(data)-c]
	want := Checksum(c, body)
	var got uint64
	for _, b := range data[len(data)-c:] {
		got = got<<8 | uint64(b)
	}
	if got != want {
		return 0, nil, fmt.Errorf("%w: got 0x%0*x, want 0x%0*x", ErrBadCrc, 2*c, got, 2*c, want)
	}

	op := wire.Opcode(data[0])
	if !known(op) {
		return 0, nil, fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, uint8(op))
	}
	if !op.Enabled(s.cfg) {
		return 0, nil, fmt.Errorf("%w: %s", ErrFeatureDisabled, op)
	}

	expected := uint64(s.layout.fixed[op])
	if s.layout.variable(op) {
		off := s.layout.countOffset[op]
		if len(data) < off+s.layout.length+c {
			return 0, nil, fmt.Errorf("%w: %s needs at least %d bytes, got %d",
				ErrTruncated, op, off+s.layout.length+c, len(data))
		}
		count := (&decoder{buf: data, off: off}).getUint(s.layout.length)
		expected = s.layout.size(op, count)
	}
	if uint64(len(data)) != expected {
		return 0, nil, fmt.Errorf("%w: %s is %d bytes, expected %d", ErrTruncated, op, len(data), expected)
	}

	return op, &decoder{buf: body, off: headerBytes}, nil
}

// DecodeCommand parses a command message. On error no value is returned.
// Failures wrap ErrMessageTooLarge, ErrTruncated, ErrBadCrc,
// ErrUnknownOpcode or ErrFeatureDisabled, checked in that order.
func (s *Serdes) DecodeCommand(data []byte) (wire.Command, error) {
	op, d, err := s.frame(data, wire.Opcode.IsCommand)
	if err != nil {
		return nil, err
	}

	a, dw, am, dm := s.layout.addr, s.layout.data, s.cfg.AddressMask(), s.cfg.DataMask()
	txn := data[1]

	var cmd wire.Command
	switch op {
	case wire.OpReadSingle:
		cmd = &wire.ReadSingleCommand{Txn: txn, Addr: d.getUint(a) & am}
	case wire.OpWriteSingle:
		posted := d.getByte()&flagPosted != 0
		cmd = &wire.WriteSingleCommand{
			Txn:    txn,
			Posted: posted,
			Addr:   d.getUint(a) & am,
			Data:   d.getUint(dw) & dm,
		}
	case wire.OpReadSeq:
		c := &wire.ReadSeqCommand{Txn: txn}
		c.Addr = d.getUint(a) & am
		c.Increment = d.getUint(a) & am
		c.Count = d.getUint(s.layout.length)
		if err := checkSeqIncrement(s.cfg, c.Increment); err != nil {
			return nil, err
		}
		cmd = c
	case wire.OpWriteSeq:
		c := &wire.WriteSeqCommand{Txn: txn}
		c.Posted = d.getByte()&flagPosted != 0
		c.Addr = d.getUint(a) & am
		c.Increment = d.getUint(a) & am
		if err := checkSeqIncrement(s.cfg, c.Increment); err != nil {
			return nil, err
		}
		n := d.getUint(s.layout.length)
		c.Data = make([]uint64, n)
		for i := range c.Data {
			c.Data[i] = d.getUint(dw) & dm
		}
		cmd = c
	case wire.OpReadComp:
		n := d.getUint(s.layout.length)
		addrs := make([]uint64, n)
		for i := range addrs {
			addrs[i] = d.getUint(a) & am
		}
		cmd = &wire.ReadCompCommand{Txn: txn, Addresses: addrs}
	case wire.OpWriteComp:
		posted := d.getByte()&flagPosted != 0
		n := d.getUint(s.layout.length)
		pairs := make([]wire.AddrData, n)
		for i := range pairs {
			pairs[i].Addr = d.getUint(a) & am
			pairs[i].Data = d.getUint(dw) & dm
		}
		cmd = &wire.WriteCompCommand{Txn: txn, Posted: posted, AddrData: pairs}
	case wire.OpReadModifyWrite:
		c := &wire.ReadModifyWriteCommand{Txn: txn}
		c.Posted = d.getByte()&flagPosted != 0
		c.Addr = d.getUint(a) & am
		c.Data = d.getUint(dw) & dm
		c.Mask = d.getUint(dw) & dm
		cmd = c
	}
	return cmd, nil
}

// DecodeResponse parses a response message. Errors are those of
// DecodeCommand.
func (s *Serdes) DecodeResponse(data []byte) (wire.Response, error) {
	op, d, err := s.frame(data, wire.Opcode.IsResponse)
	if err != nil {
		return nil, err
	}

	dw, dm := s.layout.data, s.cfg.DataMask()
	txn := data[1]

	readData := func() []uint64 {
		vs := make([]uint64, d.getUint(s.layout.length))
		for i := range vs {
			vs[i] = d.getUint(dw) & dm
		}
		return vs
	}

	switch {
	case op == wire.OpInterrupt:
		return &wire.InterruptResponse{Txn: txn, Status: wire.Status(d.getByte())}, nil
	case op.IsNak():
		return &wire.NakResponse{Command: op.Command(), Txn: txn, Status: wire.Status(d.getByte())}, nil
	}

	switch op {
	case wire.OpReadSingleAck:
		return &wire.ReadSingleAckResponse{Txn: txn, Data: d.getUint(dw) & dm}, nil
	case wire.OpWriteSingleAck:
		return &wire.WriteSingleAckResponse{Txn: txn}, nil
	case wire.OpReadSeqAck:
		return &wire.ReadSeqAckResponse{Txn: txn, Data: readData()}, nil
	case wire.OpWriteSeqAck:
		return &wire.WriteSeqAckResponse{Txn: txn}, nil
	case wire.OpReadCompAck:
		return &wire.ReadCompAckResponse{Txn: txn, Data: readData()}, nil
	case wire.OpWriteCompAck:
		return &wire.WriteCompAckResponse{Txn: txn}, nil
	default:
		return &wire.ReadModifyWriteAckResponse{Txn: txn}, nil
	}
}
