package wire

import "github.com/rap-protocol/rap-go/pkg/config"

// Opcode is the kind tag that starts every RAP message.
type Opcode uint8

// Command opcodes.
const (
	OpReadSingle      Opcode = 0x01
	OpWriteSingle     Opcode = 0x02
	OpReadSeq         Opcode = 0x03
	OpWriteSeq        Opcode = 0x04
	OpReadComp        Opcode = 0x05
	OpWriteComp       Opcode = 0x06
	OpReadModifyWrite Opcode = 0x07
)

// Response opcode modifiers.
const (
	ackBit Opcode = 0x80
	nakBit Opcode = 0xC0

	kindMask Opcode = 0x3F
)

// Response opcodes.
const (
	OpReadSingleAck      = OpReadSingle | ackBit
	OpWriteSingleAck     = OpWriteSingle | ackBit
	OpReadSeqAck         = OpReadSeq | ackBit
	OpWriteSeqAck        = OpWriteSeq | ackBit
	OpReadCompAck        = OpReadComp | ackBit
	OpWriteCompAck       = OpWriteComp | ackBit
	OpReadModifyWriteAck = OpReadModifyWrite | ackBit

	OpReadSingleNak      = OpReadSingle | nakBit
	OpWriteSingleNak     = OpWriteSingle | nakBit
	OpReadSeqNak         = OpReadSeq | nakBit
	OpWriteSeqNak        = OpWriteSeq | nakBit
	OpReadCompNak        = OpReadComp | nakBit
	OpWriteCompNak       = OpWriteComp | nakBit
	OpReadModifyWriteNak = OpReadModifyWrite | nakBit

	OpInterrupt Opcode = 0xFF
)

// CommandOpcodes lists every command opcode in wire order.
var CommandOpcodes = []Opcode{
	OpReadSingle, OpWriteSingle, OpReadSeq, OpWriteSeq,
	OpReadComp, OpWriteComp, OpReadModifyWrite,
}

// ResponseOpcodes lists every response opcode.
var ResponseOpcodes = []Opcode{
	OpReadSingleAck, OpWriteSingleAck, OpReadSeqAck, OpWriteSeqAck,
	OpReadCompAck, OpWriteCompAck, OpReadModifyWriteAck,
	OpReadSingleNak, OpWriteSingleNak, OpReadSeqNak, OpWriteSeqNak,
	OpReadCompNak, OpWriteCompNak, OpReadModifyWriteNak,
	OpInterrupt,
}

var opcodeNames = map[Opcode]string{
	OpReadSingle:      "ReadSingle",
	OpWriteSingle:     "WriteSingle",
	OpReadSeq:         "ReadSeq",
	OpWriteSeq:        "WriteSeq",
	OpReadComp:        "ReadComp",
	OpWriteComp:       "WriteComp",
	OpReadModifyWrite: "ReadModifyWrite",
	OpInterrupt:       "Interrupt",
}

// String returns the opcode name, e.g. "ReadSeqAck".
func (o Opcode) String() string {
	switch {
	case o == OpInterrupt:
		return "Interrupt"
	case o.IsAck():
		return opcodeNames[o.Command()] + "Ack"
	case o.IsNak():
		return opcodeNames[o.Command()] + "Nak"
	case o.IsCommand():
		return opcodeNames[o]
	default:
		return "Unknown"
	}
}

// IsCommand reports whether o is a valid command opcode.
func (o Opcode) IsCommand() bool {
	return o >= OpReadSingle && o <= OpReadModifyWrite
}

// IsAck reports whether o is a valid Ack opcode.
func (o Opcode) IsAck() bool {
	return o&nakBit == ackBit && (o &^ ackBit).IsCommand()
}

// IsNak reports whether o is a valid Nak opcode.
func (o Opcode) IsNak() bool {
	return o != OpInterrupt && o&nakBit == nakBit && (o & kindMask).IsCommand()
}

// IsResponse reports whether o is a valid response opcode.
func (o Opcode) IsResponse() bool {
	return o == OpInterrupt || o.IsAck() || o.IsNak()
}

// Ack returns the Ack opcode paired with command opcode o.
func (o Opcode) Ack() Opcode { return (o & kindMask) | ackBit }

// Nak returns the Nak opcode paired with command opcode o.
func (o Opcode) Nak() Opcode { return (o & kindMask) | nakBit }

// Command returns the command opcode a response opcode answers.
// It returns 0 for Interrupt and unknown opcodes.
func (o Opcode) Command() Opcode {
	if o == OpInterrupt {
		return 0
	}
	c := o & kindMask
	if !c.IsCommand() {
		return 0
	}
	return c
}

// HasPostedFlag reports whether messages with this opcode carry a posted flag.
func (o Opcode) HasPostedFlag() bool {
	switch o {
	case OpWriteSingle, OpWriteSeq, OpWriteComp, OpReadModifyWrite:
		return true
	default:
		return false
	}
}

// Feature returns the feature that gates the opcode. Single reads and writes
// are always available and return config.FeatureNone. Sequential opcodes
// return the union of the features that may use them; the increment of each
// message decides which one is required (see serdes).
func (o Opcode) Feature() config.Feature {
	switch o.Command() {
	case OpReadSeq, OpWriteSeq:
		return config.FeatureSequential | config.FeatureFifo | config.FeatureIncrement
	case OpReadComp, OpWriteComp:
		return config.FeatureCompressed
	case OpReadModifyWrite:
		return config.FeatureReadModifyWrite
	}
	if o == OpInterrupt {
		return config.FeatureInterrupt
	}
	return config.FeatureNone
}

// Enabled reports whether the opcode may be used with cfg.
func (o Opcode) Enabled(cfg *config.Configuration) bool {
	f := o.Feature()
	if f == config.FeatureNone {
		return true
	}
	return cfg.Features()&f != 0
}
