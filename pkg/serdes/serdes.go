package serdes

import (
	"fmt"

	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// Serdes encodes and decodes RAP messages for one configuration.
type Serdes struct {
	cfg            *config.Configuration
	maxMessageSize int
	layout         *layout

	maxSeqRead   int
	maxSeqWrite  int
	maxCompRead  int
	maxCompWrite int
}

// New creates a Serdes for cfg with the given maximum message size.
func New(cfg *config.Configuration, maxMessageSize int) (*Serdes, error) {
	lay := newLayout(cfg)
	if maxMessageSize < lay.minimumMax {
		return nil, fmt.Errorf("%w: %d < %d", ErrMessageSizeTooSmall, maxMessageSize, lay.minimumMax)
	}

	s := &Serdes{
		cfg:            cfg,
		maxMessageSize: maxMessageSize,
		layout:         lay,
	}

	// Reads are bounded by both the command and the Ack carrying the data.
	s.maxSeqRead = s.maxCount(max(lay.fixed[wire.OpReadSeq], lay.fixed[wire.OpReadSeqAck]), lay.data)
	s.maxSeqWrite = s.maxCount(lay.fixed[wire.OpWriteSeq], lay.data)
	s.maxCompRead = s.maxCount(max(lay.fixed[wire.OpReadComp], lay.fixed[wire.OpReadCompAck]), lay.addr+lay.data)
	s.maxCompWrite = s.maxCount(lay.fixed[wire.OpWriteComp], lay.addr+lay.data)

	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(cfg *config.Configuration, maxMessageSize int) *Serdes {
	s, err := New(cfg, maxMessageSize)
	if err != nil {
		panic(err)
	}
	return s
}

// maxCount returns floor((max - overhead) / perElement) clamped to the
// length field's range.
func (s *Serdes) maxCount(overhead, perElement int) int {
	n := uint64(s.maxMessageSize-overhead) / uint64(perElement)
	if limit := s.cfg.MaxLength(); n > limit {
		n = limit
	}
	return int(n)
}

// Config returns the configuration the Serdes is bound to.
func (s *Serdes) Config() *config.Configuration { return s.cfg }

// MaxMessageSize returns the configured maximum message size.
func (s *Serdes) MaxMessageSize() int { return s.maxMessageSize }

// MinimumMaxMessageSize returns MinimumMaxMessageSize for the bound configuration.
func (s *Serdes) MinimumMaxMessageSize() int { return s.layout.minimumMax }

// MaxSeqReadCount returns the largest Count of a ReadSeq command whose
// command and Ack both fit the maximum message size.
func (s *Serdes) MaxSeqReadCount() int { return s.maxSeqRead }

// MaxSeqWriteCount returns the largest data length of a WriteSeq command.
func (s *Serdes) MaxSeqWriteCount() int { return s.maxSeqWrite }

// MaxCompReadCount returns the largest address list of a ReadComp command
// whose command and Ack both fit the maximum message size.
func (s *Serdes) MaxCompReadCount() int { return s.maxCompRead }

// MaxCompWriteCount returns the largest pair list of a WriteComp command.
func (s *Serdes) MaxCompWriteCount() int { return s.maxCompWrite }

// maxCountFor returns the element limit that applies to op, or -1 when op
// is not a variable length kind.
func (s *Serdes) maxCountFor(op wire.Opcode) int {
	switch op {
	case wire.OpReadSeq, wire.OpReadSeqAck:
		return s.maxSeqRead
	case wire.OpWriteSeq:
		return s.maxSeqWrite
	case wire.OpReadComp, wire.OpReadCompAck:
		return s.maxCompRead
	case wire.OpWriteComp:
		return s.maxCompWrite
	default:
		return -1
	}
}

// checkCount validates an element count for op and returns the encoded size.
func (s *Serdes) checkCount(op wire.Opcode, n uint64) (int, error) {
	if n > s.cfg.MaxLength() {
		return 0, fmt.Errorf("%w: %s count %d exceeds length field maximum %d",
			ErrCountOutOfRange, op, n, s.cfg.MaxLength())
	}
	if limit := s.maxCountFor(op); limit >= 0 && n > uint64(limit) {
		return 0, fmt.Errorf("%w: %s count %d exceeds %d for message size %d",
			ErrCountOutOfRange, op, n, limit, s.maxMessageSize)
	}
	size := s.layout.size(op, n)
	if size > uint64(s.maxMessageSize) {
		return 0, fmt.Errorf("%w: %s with %d elements is %d bytes, limit %d",
			ErrMessageTooLarge, op, n, size, s.maxMessageSize)
	}
	return int(size), nil
}

// checkSeqIncrement enforces the feature that governs a sequential access
// with the given increment: 0 is FIFO access, one data word is contiguous
// sequential access, anything else is a strided access. FeatureIncrement
// permits all of them.
func checkSeqIncrement(cfg *config.Configuration, inc uint64) error {
	if cfg.Increment() {
		return nil
	}
	switch {
	case inc == 0 && cfg.Fifo():
		return nil
	case inc == uint64(cfg.DataBytes()) && cfg.Sequential():
		return nil
	}
	return fmt.Errorf("%w: increment %d", ErrFeatureDisabled, inc)
}

// CheckSeqIncrement reports whether cfg permits a sequential access with
// increment inc.
func CheckSeqIncrement(cfg *config.Configuration, inc uint64) error {
	return checkSeqIncrement(cfg, inc)
}
