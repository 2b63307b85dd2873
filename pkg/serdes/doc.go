// Package serdes encodes and decodes RAP messages.
//
// A Serdes is bound to one configuration and one maximum message size for
// its lifetime. It keeps no per-call state: every Encode and Decode call
// allocates its own buffer, so a single Serdes may be shared by any number of
// goroutines.
//
// # Wire Layout
//
// All integers are big-endian and occupy exactly their configured width
// (A = address bytes, D = data bytes, L = length bytes, C = CRC bytes):
//
//	ReadSingle       op txn       addr(A)                       crc(C)
//	WriteSingle      op txn flags addr(A) data(D)               crc(C)
//	ReadModifyWrite  op txn flags addr(A) data(D) mask(D)       crc(C)
//	ReadSeq          op txn       addr(A) incr(A) count(L)      crc(C)
//	WriteSeq         op txn flags addr(A) incr(A) count(L) D*n  crc(C)
//	ReadComp         op txn       count(L) A*n                  crc(C)
//	WriteComp        op txn flags count(L) (A+D)*n              crc(C)
//
//	ReadSingleAck    op txn data(D)                             crc(C)
//	ReadSeqAck       op txn count(L) D*n                        crc(C)
//	ReadCompAck      op txn count(L) D*n                        crc(C)
//	other Acks       op txn                                     crc(C)
//	Naks, Interrupt  op txn status                              crc(C)
//
// Bit 0 of flags is the posted flag; the other bits are reserved, written as
// zero and ignored on decode. The CRC covers every preceding byte:
// CRC-8 (poly 0x07), CRC-16/CCITT-FALSE or CRC-32 (IEEE) for C = 1, 2, 4.
//
// # Size Limits
//
// MinimumMaxMessageSize is the largest fixed overhead of any message kind,
// i.e. the smallest ceiling under which every kind still encodes with empty
// vectors. The Max*Count methods return the largest element count that fits
// the configured ceiling; for reads both the command and its Ack must fit.
package serdes
