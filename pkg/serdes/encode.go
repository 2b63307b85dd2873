package serdes

import (
	"fmt"

	"github.com/rap-protocol/rap-go/pkg/wire"
)

// encoder appends big-endian fields to a buffer sized up front.
type encoder struct {
	buf []byte
}

func newEncoder(size int) *encoder {
	return &encoder{buf: make([]byte, 0, size)}
}

func (e *encoder) putByte(b byte) {
	e.buf = append(e.buf, b)
}

func (e *encoder) putUint(v uint64, width int) {
	for i := width - 1; i >= 0; i-- {
		e.buf = append(e.buf, byte(v>>(8*uint(i))))
	}
}

// finish appends the CRC trailer over everything written so far.
func (e *encoder) finish(crcWidth int) []byte {
	e.putUint(Checksum(crcWidth, e.buf), crcWidth)
	return e.buf
}

func postedFlags(posted bool) byte {
	if posted {
		return flagPosted
	}
	return 0
}

// EncodeCommand serializes cmd. On error nothing is returned.
func (s *Serdes) EncodeCommand(cmd wire.Command) ([]byte, error) {
	size, err := s.EncodedCommandSize(cmd)
	if err != nil {
		return nil, err
	}
	if err := s.checkCommandValues(cmd); err != nil {
		return nil, err
	}

	a, d := s.layout.addr, s.layout.data
	e := newEncoder(size)
	e.putByte(byte(cmd.Opcode()))
	e.putByte(cmd.TxnID())

	switch c := cmd.(type) {
	case *wire.ReadSingleCommand:
		e.putUint(c.Addr, a)
	case *wire.WriteSingleCommand:
		e.putByte(postedFlags(c.Posted))
		e.putUint(c.Addr, a)
		e.putUint(c.Data, d)
	case *wire.ReadSeqCommand:
		e.putUint(c.Addr, a)
		e.putUint(c.Increment, a)
		e.putUint(c.Count, s.layout.length)
	case *wire.WriteSeqCommand:
		e.putByte(postedFlags(c.Posted))
		e.putUint(c.Addr, a)
		e.putUint(c.Increment, a)
		e.putUint(uint64(len(c.Data)), s.layout.length)
		for _, v := range c.Data {
			e.putUint(v, d)
		}
	case *wire.ReadCompCommand:
		e.putUint(uint64(len(c.Addresses)), s.layout.length)
		for _, addr := range c.Addresses {
			e.putUint(addr, a)
		}
	case *wire.WriteCompCommand:
		e.putByte(postedFlags(c.Posted))
		e.putUint(uint64(len(c.AddrData)), s.layout.length)
		for _, p := range c.AddrData {
			e.putUint(p.Addr, a)
			e.putUint(p.Data, d)
		}
	case *wire.ReadModifyWriteCommand:
		e.putByte(postedFlags(c.Posted))
		e.putUint(c.Addr, a)
		e.putUint(c.Data, d)
		e.putUint(c.Mask, d)
	}

	return e.finish(s.layout.crc), nil
}

// EncodeResponse serializes resp. On error nothing is returned.
func (s *Serdes) EncodeResponse(resp wire.Response) ([]byte, error) {
	size, err := s.EncodedResponseSize(resp)
	if err != nil {
		return nil, err
	}
	if err := s.checkResponseValues(resp); err != nil {
		return nil, err
	}

	d := s.layout.data
	e := newEncoder(size)
	e.putByte(byte(resp.Opcode()))
	e.putByte(resp.TxnID())

	switch r := resp.(type) {
	case *wire.ReadSingleAckResponse:
		e.putUint(r.Data, d)
	case *wire.ReadSeqAckResponse:
		e.putUint(uint64(len(r.Data)), s.layout.length)
		for _, v := range r.Data {
			e.putUint(v, d)
		}
	case *wire.ReadCompAckResponse:
		e.putUint(uint64(len(r.Data)), s.layout.length)
		for _, v := range r.Data {
			e.putUint(v, d)
		}
	case *wire.NakResponse:
		e.putByte(byte(r.Status))
	case *wire.InterruptResponse:
		e.putByte(byte(r.Status))
	}

	return e.finish(s.layout.crc), nil
}

// EncodedCommandSize returns the encoded size of cmd, or the error
// EncodeCommand would fail with for size, count or feature reasons.
func (s *Serdes) EncodedCommandSize(cmd wire.Command) (int, error) {
	op := cmd.Opcode()
	if !op.IsCommand() {
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, uint8(op))
	}
	if !op.Enabled(s.cfg) {
		return 0, fmt.Errorf("%w: %s", ErrFeatureDisabled, op)
	}
	switch c := cmd.(type) {
	case *wire.ReadSeqCommand:
		if err := checkSeqIncrement(s.cfg, c.Increment); err != nil {
			return 0, err
		}
	case *wire.WriteSeqCommand:
		if err := checkSeqIncrement(s.cfg, c.Increment); err != nil {
			return 0, err
		}
	}

	var n uint64
	if s.layout.variable(op) {
		n = wire.ElementCount(cmd)
	}
	return s.checkCount(op, n)
}

// EncodedResponseSize returns the encoded size of resp, or the error
// EncodeResponse would fail with for size, count or feature reasons.
func (s *Serdes) EncodedResponseSize(resp wire.Response) (int, error) {
	op := resp.Opcode()
	if !op.IsResponse() {
		return 0, fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, uint8(op))
	}
	if !op.Enabled(s.cfg) {
		return 0, fmt.Errorf("%w: %s", ErrFeatureDisabled, op)
	}

	var n uint64
	switch r := resp.(type) {
	case *wire.ReadSeqAckResponse:
		n = uint64(len(r.Data))
	case *wire.ReadCompAckResponse:
		n = uint64(len(r.Data))
	}
	return s.checkCount(op, n)
}

func (s *Serdes) checkAddr(field string, v uint64) error {
	if v&^s.cfg.AddressMask() != 0 {
		return fmt.Errorf("%w: %s 0x%x exceeds %d bits", ErrValueOutOfRange, field, v, s.cfg.AddressBits())
	}
	return nil
}

func (s *Serdes) checkData(field string, v uint64) error {
	if v&^s.cfg.DataMask() != 0 {
		return fmt.Errorf("%w: %s 0x%x exceeds %d bits", ErrValueOutOfRange, field, v, s.cfg.DataBits())
	}
	return nil
}

func (s *Serdes) checkDataSlice(field string, vs []uint64) error {
	for i, v := range vs {
		if err := s.checkData(fmt.Sprintf("%s[%d]", field, i), v); err != nil {
			return err
		}
	}
	return nil
}

func (s *Serdes) checkCommandValues(cmd wire.Command) error {
	switch c := cmd.(type) {
	case *wire.ReadSingleCommand:
		return s.checkAddr("address", c.Addr)
	case *wire.WriteSingleCommand:
		if err := s.checkAddr("address", c.Addr); err != nil {
			return err
		}
		return s.checkData("data", c.Data)
	case *wire.ReadSeqCommand:
		if err := s.checkAddr("address", c.Addr); err != nil {
			return err
		}
		return s.checkAddr("increment", c.Increment)
	case *wire.WriteSeqCommand:
		if err := s.checkAddr("address", c.Addr); err != nil {
			return err
		}
		if err := s.checkAddr("increment", c.Increment); err != nil {
			return err
		}
		return s.checkDataSlice("data", c.Data)
	case *wire.ReadCompCommand:
		for i, addr := range c.Addresses {
			if err := s.checkAddr(fmt.Sprintf("address[%d]", i), addr); err != nil {
				return err
			}
		}
	case *wire.WriteCompCommand:
		for i, p := range c.AddrData {
			if err := s.checkAddr(fmt.Sprintf("address[%d]", i), p.Addr); err != nil {
				return err
			}
			if err := s.checkData(fmt.Sprintf("data[%d]", i), p.Data); err != nil {
				return err
			}
		}
	case *wire.ReadModifyWriteCommand:
		if err := s.checkAddr("address", c.Addr); err != nil {
			return err
		}
		if err := s.checkData("data", c.Data); err != nil {
			return err
		}
		return s.checkData("mask", c.Mask)
	default:
		return fmt.Errorf("%w: unsupported command type %T", ErrUnknownOpcode, cmd)
	}
	return nil
}

func (s *Serdes) checkResponseValues(resp wire.Response) error {
	switch r := resp.(type) {
	case *wire.ReadSingleAckResponse:
		return s.checkData("data", r.Data)
	case *wire.ReadSeqAckResponse:
		return s.checkDataSlice("data", r.Data)
	case *wire.ReadCompAckResponse:
		return s.checkDataSlice("data", r.Data)
	case *wire.WriteSingleAckResponse, *wire.WriteSeqAckResponse,
		*wire.WriteCompAckResponse, *wire.ReadModifyWriteAckResponse,
		*wire.NakResponse, *wire.InterruptResponse:
		return nil
	default:
		return fmt.Errorf("%w: unsupported response type %T", ErrUnknownOpcode, resp)
	}
}
