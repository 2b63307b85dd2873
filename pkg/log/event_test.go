package log

import (
	"testing"

	"github.com/rap-protocol/rap-go/pkg/wire"
)

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"direction in", DirectionIn.String(), "IN"},
		{"direction out", DirectionOut.String(), "OUT"},
		{"direction unknown", Direction(9).String(), "UNKNOWN"},
		{"layer transport", LayerTransport.String(), "TRANSPORT"},
		{"layer wire", LayerWire.String(), "WIRE"},
		{"layer service", LayerService.String(), "SERVICE"},
		{"layer unknown", Layer(9).String(), "UNKNOWN"},
		{"category message", CategoryMessage.String(), "MESSAGE"},
		{"category state", CategoryState.String(), "STATE"},
		{"category error", CategoryError.String(), "ERROR"},
		{"category unknown", Category(1).String(), "UNKNOWN"},
		{"role server", RoleServer.String(), "SERVER"},
		{"role client", RoleClient.String(), "CLIENT"},
		{"role unknown", Role(9).String(), "UNKNOWN"},
		{"type command", MessageTypeCommand.String(), "COMMAND"},
		{"type response", MessageTypeResponse.String(), "RESPONSE"},
		{"type interrupt", MessageTypeInterrupt.String(), "INTERRUPT"},
		{"entity transport", StateEntityTransport.String(), "TRANSPORT"},
		{"entity client", StateEntityClient.String(), "CLIENT"},
		{"entity adapter", StateEntityAdapter.String(), "ADAPTER"},
		{"entity unknown", StateEntity(9).String(), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestCommandMessage(t *testing.T) {
	tests := []struct {
		name      string
		cmd       wire.Command
		wantAddr  *uint64
		wantCount *uint64
		wantData  int
	}{
		{"read single", &wire.ReadSingleCommand{Addr: 5}, ptr(uint64(5)), nil, 0},
		{"write single", &wire.WriteSingleCommand{Addr: 6, Data: 1}, ptr(uint64(6)), nil, 1},
		{"read seq", &wire.ReadSeqCommand{Addr: 7, Count: 3}, ptr(uint64(7)), ptr(uint64(3)), 0},
		{"write seq", &wire.WriteSeqCommand{Addr: 8, Data: []uint64{1, 2}}, ptr(uint64(8)), ptr(uint64(2)), 2},
		{"read comp empty", &wire.ReadCompCommand{}, nil, ptr(uint64(0)), 0},
		{"write comp", &wire.WriteCompCommand{AddrData: []wire.AddrData{{Addr: 9, Data: 1}}}, ptr(uint64(9)), ptr(uint64(1)), 1},
		{"rmw", &wire.ReadModifyWriteCommand{Addr: 10, Data: 1, Mask: 3}, ptr(uint64(10)), nil, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := CommandMessage(tt.cmd)
			if m.Type != MessageTypeCommand || m.Opcode != tt.cmd.Opcode() {
				t.Fatalf("got type %s opcode %s", m.Type, m.Opcode)
			}
			if !equalPtr(m.Address, tt.wantAddr) {
				t.Errorf("Address: got %v, want %v", m.Address, tt.wantAddr)
			}
			if !equalPtr(m.Count, tt.wantCount) {
				t.Errorf("Count: got %v, want %v", m.Count, tt.wantCount)
			}
			if len(m.Data) != tt.wantData {
				t.Errorf("Data: got %d values, want %d", len(m.Data), tt.wantData)
			}
		})
	}
}

func TestResponseMessage(t *testing.T) {
	nak := ResponseMessage(&wire.NakResponse{Command: wire.OpReadSeq, Txn: 3, Status: wire.StatusInvalidAddress})
	if nak.Opcode != wire.OpReadSeqNak || nak.TxnID != 3 {
		t.Errorf("nak: got %s txn %d", nak.Opcode, nak.TxnID)
	}
	if nak.Status == nil || *nak.Status != wire.StatusInvalidAddress {
		t.Errorf("nak status: got %v", nak.Status)
	}

	irq := ResponseMessage(&wire.InterruptResponse{Status: wire.StatusBusy})
	if irq.Type != MessageTypeInterrupt {
		t.Errorf("interrupt type: got %s", irq.Type)
	}

	ack := ResponseMessage(&wire.ReadCompAckResponse{Data: []uint64{1, 2, 3}})
	if ack.Count == nil || *ack.Count != 3 || len(ack.Data) != 3 {
		t.Errorf("ack: got count %v data %v", ack.Count, ack.Data)
	}
}

func TestNewFrameEventTruncates(t *testing.T) {
	small := NewFrameEvent([]byte{1, 2, 3}, 4)
	if small.Size != 7 || small.Truncated {
		t.Errorf("small frame: %+v", small)
	}

	large := NewFrameEvent(make([]byte, MaxLogFrameDataSize+10), 0)
	if !large.Truncated || len(large.Data) != MaxLogFrameDataSize || large.Size != MaxLogFrameDataSize+10 {
		t.Errorf("large frame: size %d truncated %v len %d", large.Size, large.Truncated, len(large.Data))
	}
}

func equalPtr(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
