// Package wire defines the RAP message model.
//
// RAP has seven command kinds. Every command kind has exactly one
// acknowledgement (Ack) and one negative acknowledgement (Nak) response kind,
// and there is one unsolicited response kind, Interrupt:
//
//	Command            Ack                     Nak
//	ReadSingle         ReadSingleAck (data)    ReadSingleNak (status)
//	WriteSingle        WriteSingleAck          WriteSingleNak
//	ReadSeq            ReadSeqAck (data[])     ReadSeqNak
//	WriteSeq           WriteSeqAck             WriteSeqNak
//	ReadComp           ReadCompAck (data[])    ReadCompNak
//	WriteComp          WriteCompAck            WriteCompNak
//	ReadModifyWrite    ReadModifyWriteAck      ReadModifyWriteNak
//	                   Interrupt (status)
//
// Every message carries a one byte transaction id. A response echoes the id
// of the command it answers; Interrupts carry an id chosen by the server.
//
// # Opcodes
//
// The kind tag is a single byte. Command opcodes occupy 0x01..0x07; the Ack
// for a command is the command opcode with bit 7 set, the Nak has bits 7 and
// 6 set. Interrupt is 0xFF.
//
// Values in this package are plain data. Encoding, size limits and feature
// gating live in package serdes.
package wire
