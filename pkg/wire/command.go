package wire

// Command is a client to server request.
type Command interface {
	// Opcode returns the command's kind tag.
	Opcode() Opcode

	// TxnID returns the transaction id.
	TxnID() uint8

	// WithTxnID returns a copy of the command carrying id.
	WithTxnID(id uint8) Command

	// IsPosted reports whether the command expects no response.
	IsPosted() bool
}

// AddrData is an address/data pair carried by WriteComp.
type AddrData struct {
	Addr uint64
	Data uint64
}

// ReadSingleCommand reads one register.
type ReadSingleCommand struct {
	Txn  uint8
	Addr uint64
}

// WriteSingleCommand writes one register.
type WriteSingleCommand struct {
	Txn    uint8
	Posted bool
	Addr   uint64
	Data   uint64
}

// ReadSeqCommand reads Count registers starting at Addr, advancing the
// address by Increment between elements.
type ReadSeqCommand struct {
	Txn       uint8
	Addr      uint64
	Increment uint64
	Count     uint64
}

// WriteSeqCommand writes Data to registers starting at Addr, advancing the
// address by Increment between elements.
type WriteSeqCommand struct {
	Txn       uint8
	Posted    bool
	Addr      uint64
	Increment uint64
	Data      []uint64
}

// ReadCompCommand reads an explicit list of registers.
type ReadCompCommand struct {
	Txn       uint8
	Addresses []uint64
}

// WriteCompCommand writes an explicit list of address/data pairs.
type WriteCompCommand struct {
	Txn      uint8
	Posted   bool
	AddrData []AddrData
}

// ReadModifyWriteCommand replaces the bits selected by Mask with the
// corresponding bits of Data: reg = (reg &^ Mask) | (Data & Mask).
type ReadModifyWriteCommand struct {
	Txn    uint8
	Posted bool
	Addr   uint64
	Data   uint64
	Mask   uint64
}

func (c *ReadSingleCommand) Opcode() Opcode      { return OpReadSingle }
func (c *WriteSingleCommand) Opcode() Opcode     { return OpWriteSingle }
func (c *ReadSeqCommand) Opcode() Opcode         { return OpReadSeq }
func (c *WriteSeqCommand) Opcode() Opcode        { return OpWriteSeq }
func (c *ReadCompCommand) Opcode() Opcode        { return OpReadComp }
func (c *WriteCompCommand) Opcode() Opcode       { return OpWriteComp }
func (c *ReadModifyWriteCommand) Opcode() Opcode { return OpReadModifyWrite }

func (c *ReadSingleCommand) TxnID() uint8      { return c.Txn }
func (c *WriteSingleCommand) TxnID() uint8     { return c.Txn }
func (c *ReadSeqCommand) TxnID() uint8         { return c.Txn }
func (c *WriteSeqCommand) TxnID() uint8        { return c.Txn }
func (c *ReadCompCommand) TxnID() uint8        { return c.Txn }
func (c *WriteCompCommand) TxnID() uint8       { return c.Txn }
func (c *ReadModifyWriteCommand) TxnID() uint8 { return c.Txn }

func (c *ReadSingleCommand) IsPosted() bool      { return false }
func (c *WriteSingleCommand) IsPosted() bool     { return c.Posted }
func (c *ReadSeqCommand) IsPosted() bool         { return false }
func (c *WriteSeqCommand) IsPosted() bool        { return c.Posted }
func (c *ReadCompCommand) IsPosted() bool        { return false }
func (c *WriteCompCommand) IsPosted() bool       { return c.Posted }
func (c *ReadModifyWriteCommand) IsPosted() bool { return c.Posted }

func (c *ReadSingleCommand) WithTxnID(id uint8) Command {
	cp := *c
	cp.Txn = id
	return &cp
}

func (c *WriteSingleCommand) WithTxnID(id uint8) Command {
	cp := *c
	cp.Txn = id
	return &cp
}

func (c *ReadSeqCommand) WithTxnID(id uint8) Command {
	cp := *c
	cp.Txn = id
	return &cp
}

func (c *WriteSeqCommand) WithTxnID(id uint8) Command {
	cp := *c
	cp.Txn = id
	return &cp
}

func (c *ReadCompCommand) WithTxnID(id uint8) Command {
	cp := *c
	cp.Txn = id
	return &cp
}

func (c *WriteCompCommand) WithTxnID(id uint8) Command {
	cp := *c
	cp.Txn = id
	return &cp
}

func (c *ReadModifyWriteCommand) WithTxnID(id uint8) Command {
	cp := *c
	cp.Txn = id
	return &cp
}

// ElementCount returns the number of elements carried or requested by a
// variable length command, and 1 for single element commands.
func ElementCount(c Command) uint64 {
	switch cmd := c.(type) {
	case *ReadSeqCommand:
		return cmd.Count
	case *WriteSeqCommand:
		return uint64(len(cmd.Data))
	case *ReadCompCommand:
		return uint64(len(cmd.Addresses))
	case *WriteCompCommand:
		return uint64(len(cmd.AddrData))
	default:
		return 1
	}
}

// Compile-time interface satisfaction checks.
var (
	_ Command = (*ReadSingleCommand)(nil)
	_ Command = (*WriteSingleCommand)(nil)
	_ Command = (*ReadSeqCommand)(nil)
	_ Command = (*WriteSeqCommand)(nil)
	_ Command = (*ReadCompCommand)(nil)
	_ Command = (*WriteCompCommand)(nil)
	_ Command = (*ReadModifyWriteCommand)(nil)
)
