package register

import (
	"context"
	"sync"

	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// cell is one register: its current value and the values queued by FIFO
// writes that have not been read back yet.
type cell struct {
	value uint64
	queue []uint64
}

// SimpleTarget is an unbounded in-memory register map. Every address is
// valid and reads of never-written registers return zero.
//
// FIFO writes queue each value and leave the last one as the register's
// current value; FIFO reads drain the queue and then keep returning the
// current value. A sequential access with increment zero behaves as a FIFO
// access to the start address.
type SimpleTarget struct {
	name     string
	addrMask uint64
	dataMask uint64

	mu    sync.Mutex
	cells map[uint64]*cell
}

// NewSimpleTarget creates an empty store sized for cfg.
func NewSimpleTarget(name string, cfg *config.Configuration) *SimpleTarget {
	return &SimpleTarget{
		name:     name,
		addrMask: cfg.AddressMask(),
		dataMask: cfg.DataMask(),
		cells:    make(map[uint64]*cell),
	}
}

// Name returns the store's name.
func (t *SimpleTarget) Name() string { return t.name }

// Len returns the number of registers that have been written.
func (t *SimpleTarget) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.cells)
}

// Reset clears every register.
func (t *SimpleTarget) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.cells)
}

// Peek returns the current value at addr without draining its FIFO.
func (t *SimpleTarget) Peek(addr uint64) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.cells[addr&t.addrMask]; ok {
		return c.value
	}
	return 0
}

func (t *SimpleTarget) cell(addr uint64) *cell {
	addr &= t.addrMask
	c, ok := t.cells[addr]
	if !ok {
		c = &cell{}
		t.cells[addr] = c
	}
	return c
}

func (t *SimpleTarget) load(addr uint64) uint64 {
	if c, ok := t.cells[addr&t.addrMask]; ok {
		return c.value
	}
	return 0
}

func (t *SimpleTarget) push(addr uint64, data []uint64) {
	c := t.cell(addr)
	for _, v := range data {
		v &= t.dataMask
		c.queue = append(c.queue, v)
		c.value = v
	}
}

func (t *SimpleTarget) pop(addr uint64, out []uint64) {
	c := t.cell(addr)
	for i := range out {
		if len(c.queue) == 0 {
			out[i] = c.value
			continue
		}
		out[i] = c.queue[0]
		c.queue = c.queue[1:]
	}
	if len(c.queue) == 0 {
		c.queue = nil
	}
}

// Write implements Target.
func (t *SimpleTarget) Write(ctx context.Context, addr, data uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cell(addr).value = data & t.dataMask
	return nil
}

// Read implements Target.
func (t *SimpleTarget) Read(ctx context.Context, addr uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.load(addr), nil
}

// ReadModifyWrite implements Target.
func (t *SimpleTarget) ReadModifyWrite(ctx context.Context, addr, data, mask uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	c := t.cell(addr)
	c.value = ((c.value &^ mask) | (data & mask)) & t.dataMask
	return nil
}

// SeqWrite implements Target.
func (t *SimpleTarget) SeqWrite(ctx context.Context, addr uint64, data []uint64, increment uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if increment == 0 {
		t.push(addr, data)
		return nil
	}
	for i, v := range data {
		t.cell(addr + uint64(i)*increment).value = v & t.dataMask
	}
	return nil
}

// SeqRead implements Target.
func (t *SimpleTarget) SeqRead(ctx context.Context, addr uint64, out []uint64, increment uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if increment == 0 {
		t.pop(addr, out)
		return nil
	}
	for i := range out {
		out[i] = t.load(addr + uint64(i)*increment)
	}
	return nil
}

// FifoWrite implements Target.
func (t *SimpleTarget) FifoWrite(ctx context.Context, addr uint64, data []uint64) error {
	return t.SeqWrite(ctx, addr, data, 0)
}

// FifoRead implements Target.
func (t *SimpleTarget) FifoRead(ctx context.Context, addr uint64, out []uint64) error {
	return t.SeqRead(ctx, addr, out, 0)
}

// CompWrite implements Target.
func (t *SimpleTarget) CompWrite(ctx context.Context, pairs []wire.AddrData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range pairs {
		t.cell(p.Addr).value = p.Data & t.dataMask
	}
	return nil
}

// CompRead implements Target.
func (t *SimpleTarget) CompRead(ctx context.Context, addrs []uint64, out []uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, a := range addrs {
		out[i] = t.load(a)
	}
	return nil
}

var _ Target = (*SimpleTarget)(nil)
