package wire

import (
	"testing"

	"github.com/rap-protocol/rap-go/pkg/config"
)

func TestOpcodeRelationship(t *testing.T) {
	for _, op := range CommandOpcodes {
		if !op.IsCommand() {
			t.Errorf("%s: IsCommand = false", op)
		}
		if op.IsResponse() {
			t.Errorf("%s: IsResponse = true", op)
		}
		ack, nak := op.Ack(), op.Nak()
		if !ack.IsAck() || ack.IsNak() {
			t.Errorf("%s: ack opcode 0x%02x misclassified", op, uint8(ack))
		}
		if !nak.IsNak() || nak.IsAck() {
			t.Errorf("%s: nak opcode 0x%02x misclassified", op, uint8(nak))
		}
		if ack.Command() != op || nak.Command() != op {
			t.Errorf("%s: response opcodes do not map back", op)
		}
		if got, want := ack.String(), op.String()+"Ack"; got != want {
			t.Errorf("ack String() = %q, want %q", got, want)
		}
		if got, want := nak.String(), op.String()+"Nak"; got != want {
			t.Errorf("nak String() = %q, want %q", got, want)
		}
	}

	if len(ResponseOpcodes) != 2*len(CommandOpcodes)+1 {
		t.Errorf("ResponseOpcodes has %d entries", len(ResponseOpcodes))
	}
	seen := make(map[Opcode]bool)
	for _, op := range ResponseOpcodes {
		if !op.IsResponse() {
			t.Errorf("0x%02x: IsResponse = false", uint8(op))
		}
		if seen[op] {
			t.Errorf("duplicate response opcode %s", op)
		}
		seen[op] = true
	}
}

func TestOpcodeInvalid(t *testing.T) {
	for _, op := range []Opcode{0x00, 0x08, 0x3F, 0x80, 0x88, 0xC0, 0xC8, 0xFE} {
		if op.IsCommand() || op.IsResponse() {
			t.Errorf("0x%02x should be invalid", uint8(op))
		}
		if op.String() != "Unknown" {
			t.Errorf("0x%02x: String() = %q", uint8(op), op.String())
		}
	}
	if OpInterrupt.Command() != 0 {
		t.Error("Interrupt should not map to a command")
	}
}

func TestOpcodeFeatureGate(t *testing.T) {
	none := config.MustNew(config.Params{
		AddressBits: 8, AddressBytes: 1, DataBits: 8, DataBytes: 1, LengthBytes: 1, CrcBytes: 1,
	})
	fifoOnly := config.MustNew(config.Params{
		AddressBits: 8, AddressBytes: 1, DataBits: 8, DataBytes: 1, LengthBytes: 1, CrcBytes: 1,
		Features: config.FeatureFifo,
	})

	tests := []struct {
		op       Opcode
		cfg      *config.Configuration
		expected bool
	}{
		{OpReadSingle, none, true},
		{OpWriteSingle, none, true},
		{OpReadSeq, none, false},
		{OpReadSeq, fifoOnly, true},
		{OpWriteSeqAck, fifoOnly, true},
		{OpReadComp, fifoOnly, false},
		{OpReadModifyWriteNak, none, false},
		{OpInterrupt, none, false},
		{OpInterrupt, config.MustProfile("small"), true},
	}
	for _, tt := range tests {
		if got := tt.op.Enabled(tt.cfg); got != tt.expected {
			t.Errorf("%s.Enabled(%s) = %v, want %v", tt.op, tt.cfg, got, tt.expected)
		}
	}
}

func TestPostedFlagOpcodes(t *testing.T) {
	posted := map[Opcode]bool{
		OpWriteSingle: true, OpWriteSeq: true, OpWriteComp: true, OpReadModifyWrite: true,
	}
	for _, op := range CommandOpcodes {
		if op.HasPostedFlag() != posted[op] {
			t.Errorf("%s.HasPostedFlag() = %v", op, op.HasPostedFlag())
		}
	}
}

func TestNewAckNak(t *testing.T) {
	cmds := []Command{
		&ReadSingleCommand{Txn: 1},
		&WriteSingleCommand{Txn: 2},
		&ReadSeqCommand{Txn: 3},
		&WriteSeqCommand{Txn: 4},
		&ReadCompCommand{Txn: 5},
		&WriteCompCommand{Txn: 6},
		&ReadModifyWriteCommand{Txn: 7},
	}
	for _, cmd := range cmds {
		ack := NewAck(cmd)
		if ack == nil {
			t.Fatalf("%s: NewAck returned nil", cmd.Opcode())
		}
		if ack.Opcode() != cmd.Opcode().Ack() || ack.TxnID() != cmd.TxnID() {
			t.Errorf("%s: ack = %s txn %d", cmd.Opcode(), ack.Opcode(), ack.TxnID())
		}
		if !Answers(ack, cmd.Opcode()) {
			t.Errorf("%s: ack does not answer command", cmd.Opcode())
		}

		nak := NewNak(cmd, StatusFault)
		if nak.Opcode() != cmd.Opcode().Nak() || nak.TxnID() != cmd.TxnID() || nak.Status != StatusFault {
			t.Errorf("%s: nak = %+v", cmd.Opcode(), nak)
		}
		if !Answers(nak, cmd.Opcode()) {
			t.Errorf("%s: nak does not answer command", cmd.Opcode())
		}
	}

	if Answers(&ReadSingleAckResponse{}, OpWriteSingle) {
		t.Error("ReadSingleAck should not answer WriteSingle")
	}
}

func TestWithTxnIDCopies(t *testing.T) {
	orig := &WriteSeqCommand{Txn: 1, Addr: 0x10, Data: []uint64{1, 2}}
	cp := orig.WithTxnID(9)
	if orig.Txn != 1 {
		t.Error("WithTxnID modified the original")
	}
	if cp.TxnID() != 9 || cp.(*WriteSeqCommand).Addr != 0x10 {
		t.Errorf("copy = %+v", cp)
	}
}

func TestElementCount(t *testing.T) {
	if n := ElementCount(&ReadSeqCommand{Count: 12}); n != 12 {
		t.Errorf("ReadSeq count = %d", n)
	}
	if n := ElementCount(&WriteCompCommand{AddrData: make([]AddrData, 3)}); n != 3 {
		t.Errorf("WriteComp count = %d", n)
	}
	if n := ElementCount(&ReadSingleCommand{}); n != 1 {
		t.Errorf("ReadSingle count = %d", n)
	}
}

func TestStatusString(t *testing.T) {
	if StatusFault.String() != "FAULT" || Status(200).String() != "UNKNOWN" {
		t.Error("unexpected status names")
	}
	if !StatusSuccess.IsSuccess() || StatusBusy.IsSuccess() {
		t.Error("IsSuccess misreports")
	}
}
