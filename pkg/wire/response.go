package wire

// Response is a server to client message.
type Response interface {
	// Opcode returns the response's kind tag.
	Opcode() Opcode

	// TxnID returns the transaction id of the command being answered.
	TxnID() uint8
}

// ReadSingleAckResponse carries the value of a single register.
type ReadSingleAckResponse struct {
	Txn  uint8
	Data uint64
}

// WriteSingleAckResponse acknowledges a WriteSingle command.
type WriteSingleAckResponse struct {
	Txn uint8
}

// ReadSeqAckResponse carries the values read by a ReadSeq command.
type ReadSeqAckResponse struct {
	Txn  uint8
	Data []uint64
}

// WriteSeqAckResponse acknowledges a WriteSeq command.
type WriteSeqAckResponse struct {
	Txn uint8
}

// ReadCompAckResponse carries the values read by a ReadComp command, in
// address list order.
type ReadCompAckResponse struct {
	Txn  uint8
	Data []uint64
}

// WriteCompAckResponse acknowledges a WriteComp command.
type WriteCompAckResponse struct {
	Txn uint8
}

// ReadModifyWriteAckResponse acknowledges a ReadModifyWrite command.
type ReadModifyWriteAckResponse struct {
	Txn uint8
}

// NakResponse rejects a command. Command selects which of the seven Nak
// kinds it is.
type NakResponse struct {
	Command Opcode
	Txn     uint8
	Status  Status
}

// InterruptResponse is an unsolicited notification from the server.
type InterruptResponse struct {
	Txn    uint8
	Status Status
}

func (r *ReadSingleAckResponse) Opcode() Opcode      { return OpReadSingleAck }
func (r *WriteSingleAckResponse) Opcode() Opcode     { return OpWriteSingleAck }
func (r *ReadSeqAckResponse) Opcode() Opcode         { return OpReadSeqAck }
func (r *WriteSeqAckResponse) Opcode() Opcode        { return OpWriteSeqAck }
func (r *ReadCompAckResponse) Opcode() Opcode        { return OpReadCompAck }
func (r *WriteCompAckResponse) Opcode() Opcode       { return OpWriteCompAck }
func (r *ReadModifyWriteAckResponse) Opcode() Opcode { return OpReadModifyWriteAck }
func (r *NakResponse) Opcode() Opcode                { return r.Command.Nak() }
func (r *InterruptResponse) Opcode() Opcode          { return OpInterrupt }

func (r *ReadSingleAckResponse) TxnID() uint8      { return r.Txn }
func (r *WriteSingleAckResponse) TxnID() uint8     { return r.Txn }
func (r *ReadSeqAckResponse) TxnID() uint8         { return r.Txn }
func (r *WriteSeqAckResponse) TxnID() uint8        { return r.Txn }
func (r *ReadCompAckResponse) TxnID() uint8        { return r.Txn }
func (r *WriteCompAckResponse) TxnID() uint8       { return r.Txn }
func (r *ReadModifyWriteAckResponse) TxnID() uint8 { return r.Txn }
func (r *NakResponse) TxnID() uint8                { return r.Txn }
func (r *InterruptResponse) TxnID() uint8          { return r.Txn }

// NewAck returns an empty Ack matching cmd. Read acks have zero data; the
// caller fills it in.
func NewAck(cmd Command) Response {
	txn := cmd.TxnID()
	switch cmd.Opcode() {
	case OpReadSingle:
		return &ReadSingleAckResponse{Txn: txn}
	case OpWriteSingle:
		return &WriteSingleAckResponse{Txn: txn}
	case OpReadSeq:
		return &ReadSeqAckResponse{Txn: txn}
	case OpWriteSeq:
		return &WriteSeqAckResponse{Txn: txn}
	case OpReadComp:
		return &ReadCompAckResponse{Txn: txn}
	case OpWriteComp:
		return &WriteCompAckResponse{Txn: txn}
	case OpReadModifyWrite:
		return &ReadModifyWriteAckResponse{Txn: txn}
	default:
		return nil
	}
}

// NewNak returns a Nak for cmd carrying status.
func NewNak(cmd Command, status Status) *NakResponse {
	return &NakResponse{Command: cmd.Opcode(), Txn: cmd.TxnID(), Status: status}
}

// Answers reports whether resp is a valid answer to a command with opcode op.
func Answers(resp Response, op Opcode) bool {
	ro := resp.Opcode()
	return ro == op.Ack() || ro == op.Nak()
}

// Compile-time interface satisfaction checks.
var (
	_ Response = (*ReadSingleAckResponse)(nil)
	_ Response = (*WriteSingleAckResponse)(nil)
	_ Response = (*ReadSeqAckResponse)(nil)
	_ Response = (*WriteSeqAckResponse)(nil)
	_ Response = (*ReadCompAckResponse)(nil)
	_ Response = (*WriteCompAckResponse)(nil)
	_ Response = (*ReadModifyWriteAckResponse)(nil)
	_ Response = (*NakResponse)(nil)
	_ Response = (*InterruptResponse)(nil)
)
