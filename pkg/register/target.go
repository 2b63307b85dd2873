package register

import (
	"context"

	"github.com/rap-protocol/rap-go/pkg/wire"
)

// Target is the register access capability consumed by the server adapter.
// Multi-element operations are all-or-nothing: an implementation that
// returns an error must not have applied any element.
type Target interface {
	// Write stores data at addr.
	Write(ctx context.Context, addr, data uint64) error

	// Read returns the value at addr.
	Read(ctx context.Context, addr uint64) (uint64, error)

	// ReadModifyWrite replaces the bits of addr selected by mask with the
	// corresponding bits of data.
	ReadModifyWrite(ctx context.Context, addr, data, mask uint64) error

	// SeqWrite writes data[i] to addr + i*increment.
	SeqWrite(ctx context.Context, addr uint64, data []uint64, increment uint64) error

	// SeqRead fills out[i] from addr + i*increment.
	SeqRead(ctx context.Context, addr uint64, out []uint64, increment uint64) error

	// FifoWrite pushes data, in order, to the FIFO at addr.
	FifoWrite(ctx context.Context, addr uint64, data []uint64) error

	// FifoRead pops len(out) values from the FIFO at addr.
	FifoRead(ctx context.Context, addr uint64, out []uint64) error

	// CompWrite writes each pair.
	CompWrite(ctx context.Context, pairs []wire.AddrData) error

	// CompRead fills out[i] from addrs[i].
	CompRead(ctx context.Context, addrs []uint64, out []uint64) error
}
