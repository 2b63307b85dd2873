package serdes

import (
	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

const (
	headerBytes = 2 // opcode, transaction id
	flagsBytes  = 1
	statusBytes = 1

	flagPosted = 0x01
)

// layout holds the per-kind sizes derived from a configuration. It is
// computed once per Serdes so encode and decode only index tables.
type layout struct {
	addr, data, length, crc int

	// fixed is the size of a message with zero elements, CRC included.
	fixed map[wire.Opcode]int

	// perElement is the size each element adds to a variable length kind.
	perElement map[wire.Opcode]int

	// countOffset is the offset of the count field of variable length kinds.
	countOffset map[wire.Opcode]int

	minimumMax int
}

func newLayout(cfg *config.Configuration) *layout {
	a, d, l, c := cfg.AddressBytes(), cfg.DataBytes(), cfg.LengthBytes(), cfg.CrcBytes()
	h := headerBytes

	lay := &layout{
		addr:   a,
		data:   d,
		length: l,
		crc:    c,
		fixed: map[wire.Opcode]int{
			wire.OpReadSingle:      h + a + c,
			wire.OpWriteSingle:     h + flagsBytes + a + d + c,
			wire.OpReadSeq:         h + 2*a + l + c,
			wire.OpWriteSeq:        h + flagsBytes + 2*a + l + c,
			wire.OpReadComp:        h + l + c,
			wire.OpWriteComp:       h + flagsBytes + l + c,
			wire.OpReadModifyWrite: h + flagsBytes + a + 2*d + c,

			wire.OpReadSingleAck:      h + d + c,
			wire.OpWriteSingleAck:     h + c,
			wire.OpReadSeqAck:         h + l + c,
			wire.OpWriteSeqAck:        h + c,
			wire.OpReadCompAck:        h + l + c,
			wire.OpWriteCompAck:       h + c,
			wire.OpReadModifyWriteAck: h + c,

			wire.OpInterrupt: h + statusBytes + c,
		},
		perElement: map[wire.Opcode]int{
			wire.OpWriteSeq:    d,
			wire.OpReadComp:    a,
			wire.OpWriteComp:   a + d,
			wire.OpReadSeqAck:  d,
			wire.OpReadCompAck: d,
		},
		countOffset: map[wire.Opcode]int{
			wire.OpReadSeq:     h + 2*a,
			wire.OpWriteSeq:    h + flagsBytes + 2*a,
			wire.OpReadComp:    h,
			wire.OpWriteComp:   h + flagsBytes,
			wire.OpReadSeqAck:  h,
			wire.OpReadCompAck: h,
		},
	}

	for _, op := range wire.CommandOpcodes {
		lay.fixed[op.Nak()] = h + statusBytes + c
	}
	for _, size := range lay.fixed {
		if size > lay.minimumMax {
			lay.minimumMax = size
		}
	}
	return lay
}

// variable reports whether op carries a count field.
func (l *layout) variable(op wire.Opcode) bool {
	_, ok := l.countOffset[op]
	return ok
}

// size returns the encoded size of op with n elements.
func (l *layout) size(op wire.Opcode, n uint64) uint64 {
	return uint64(l.fixed[op]) + n*uint64(l.perElement[op])
}

// MinimumMaxMessageSize returns the smallest maximum message size usable
// with cfg: the largest encoded size of any message kind with empty vectors.
func MinimumMaxMessageSize(cfg *config.Configuration) int {
	return newLayout(cfg).minimumMax
}
