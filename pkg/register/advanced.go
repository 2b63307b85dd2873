package register

import (
	"context"
	"sync"
	"time"

	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// DefaultFifoDepth is the FIFO capacity of an AdvancedTarget register.
const DefaultFifoDepth = 64

type addrRange struct {
	lo, hi uint64 // inclusive
}

func (r addrRange) contains(a uint64) bool { return a >= r.lo && a <= r.hi }

// AdvancedOption configures an AdvancedTarget.
type AdvancedOption func(*AdvancedTarget)

// WithWindow limits valid addresses to [base, base+size).
func WithWindow(base, size uint64) AdvancedOption {
	return func(t *AdvancedTarget) {
		if size == 0 {
			return
		}
		t.window = &addrRange{lo: base, hi: base + size - 1}
	}
}

// WithReadOnly marks [lo, hi] as read-only.
func WithReadOnly(lo, hi uint64) AdvancedOption {
	return func(t *AdvancedTarget) {
		t.readOnly = append(t.readOnly, addrRange{lo: lo, hi: hi})
	}
}

// WithFifoDepth sets the per-register FIFO capacity.
func WithFifoDepth(n int) AdvancedOption {
	return func(t *AdvancedTarget) {
		if n > 0 {
			t.fifoDepth = n
		}
	}
}

// WithLatency delays every access by d, or until the caller's context ends.
func WithLatency(d time.Duration) AdvancedOption {
	return func(t *AdvancedTarget) {
		t.latency = d
	}
}

// AdvancedStats counts the accesses served by an AdvancedTarget.
type AdvancedStats struct {
	Reads    uint64
	Writes   uint64
	Rejected uint64
}

// AdvancedTarget is an in-memory store with an address window, read-only
// ranges, injectable faults and bounded per-register FIFOs.
//
// Every failure is reported as a *StatusError and leaves the store
// unchanged. Reading more values from a FIFO than it holds fails with
// StatusInvalidLength; writing more than it can hold fails with StatusBusy.
type AdvancedTarget struct {
	name      string
	addrMask  uint64
	dataMask  uint64
	window    *addrRange
	readOnly  []addrRange
	fifoDepth int
	latency   time.Duration

	mu     sync.Mutex
	values map[uint64]uint64
	fifos  map[uint64][]uint64
	faults map[uint64]wire.Status
	stats  AdvancedStats
}

// NewAdvancedTarget creates an empty store sized for cfg.
func NewAdvancedTarget(name string, cfg *config.Configuration, opts ...AdvancedOption) *AdvancedTarget {
	t := &AdvancedTarget{
		name:      name,
		addrMask:  cfg.AddressMask(),
		dataMask:  cfg.DataMask(),
		fifoDepth: DefaultFifoDepth,
		values:    make(map[uint64]uint64),
		fifos:     make(map[uint64][]uint64),
		faults:    make(map[uint64]wire.Status),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the store's name.
func (t *AdvancedTarget) Name() string { return t.name }

// InjectFault makes every access touching addr fail with status.
func (t *AdvancedTarget) InjectFault(addr uint64, status wire.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.faults[addr&t.addrMask] = status
}

// ClearFault removes the fault injected at addr.
func (t *AdvancedTarget) ClearFault(addr uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.faults, addr&t.addrMask)
}

// ClearFaults removes every injected fault.
func (t *AdvancedTarget) ClearFaults() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.faults)
}

// FifoLen returns the number of values queued at addr.
func (t *AdvancedTarget) FifoLen(addr uint64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.fifos[addr&t.addrMask])
}

// Stats returns a snapshot of the access counters.
func (t *AdvancedTarget) Stats() AdvancedStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

func (t *AdvancedTarget) wait(ctx context.Context) error {
	if t.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(t.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// check validates every address of an access. Callers hold t.mu.
func (t *AdvancedTarget) check(write bool, addrs ...uint64) error {
	for _, a := range addrs {
		a &= t.addrMask
		if t.window != nil && !t.window.contains(a) {
			return t.reject(NewStatusError(wire.StatusInvalidAddress, a, "outside window"))
		}
		if status, ok := t.faults[a]; ok {
			return t.reject(NewStatusError(status, a, "injected fault"))
		}
		if write {
			for _, r := range t.readOnly {
				if r.contains(a) {
					return t.reject(NewStatusError(wire.StatusReadOnly, a, ""))
				}
			}
		}
	}
	return nil
}

func (t *AdvancedTarget) reject(err *StatusError) error {
	t.stats.Rejected++
	return err
}

func (t *AdvancedTarget) strided(addr uint64, n int, increment uint64) []uint64 {
	addrs := make([]uint64, n)
	for i := range addrs {
		addrs[i] = (addr + uint64(i)*increment) & t.addrMask
	}
	return addrs
}

func (t *AdvancedTarget) store(addr, data uint64) {
	t.values[addr&t.addrMask] = data & t.dataMask
}

func (t *AdvancedTarget) load(addr uint64) uint64 {
	return t.values[addr&t.addrMask]
}

// Write implements Target.
func (t *AdvancedTarget) Write(ctx context.Context, addr, data uint64) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(true, addr); err != nil {
		return err
	}
	t.store(addr, data)
	t.stats.Writes++
	return nil
}

// Read implements Target.
func (t *AdvancedTarget) Read(ctx context.Context, addr uint64) (uint64, error) {
	if err := t.wait(ctx); err != nil {
		return 0, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(false, addr); err != nil {
		return 0, err
	}
	t.stats.Reads++
	return t.load(addr), nil
}

// ReadModifyWrite implements Target.
func (t *AdvancedTarget) ReadModifyWrite(ctx context.Context, addr, data, mask uint64) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(true, addr); err != nil {
		return err
	}
	t.store(addr, (t.load(addr)&^mask)|(data&mask))
	t.stats.Reads++
	t.stats.Writes++
	return nil
}

// SeqWrite implements Target.
func (t *AdvancedTarget) SeqWrite(ctx context.Context, addr uint64, data []uint64, increment uint64) error {
	if increment == 0 {
		return t.FifoWrite(ctx, addr, data)
	}
	if err := t.wait(ctx); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	addrs := t.strided(addr, len(data), increment)
	if err := t.check(true, addrs...); err != nil {
		return err
	}
	for i, a := range addrs {
		t.store(a, data[i])
	}
	t.stats.Writes += uint64(len(data))
	return nil
}

// SeqRead implements Target.
func (t *AdvancedTarget) SeqRead(ctx context.Context, addr uint64, out []uint64, increment uint64) error {
	if increment == 0 {
		return t.FifoRead(ctx, addr, out)
	}
	if err := t.wait(ctx); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	addrs := t.strided(addr, len(out), increment)
	if err := t.check(false, addrs...); err != nil {
		return err
	}
	for i, a := range addrs {
		out[i] = t.load(a)
	}
	t.stats.Reads += uint64(len(out))
	return nil
}

// FifoWrite implements Target.
func (t *AdvancedTarget) FifoWrite(ctx context.Context, addr uint64, data []uint64) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(true, addr); err != nil {
		return err
	}
	addr &= t.addrMask
	q := t.fifos[addr]
	if len(q)+len(data) > t.fifoDepth {
		return t.reject(NewStatusError(wire.StatusBusy, addr, "fifo full"))
	}
	for _, v := range data {
		v &= t.dataMask
		q = append(q, v)
		t.values[addr] = v
	}
	t.fifos[addr] = q
	t.stats.Writes += uint64(len(data))
	return nil
}

// FifoRead implements Target.
func (t *AdvancedTarget) FifoRead(ctx context.Context, addr uint64, out []uint64) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(false, addr); err != nil {
		return err
	}
	addr &= t.addrMask
	q := t.fifos[addr]
	if len(out) > len(q) {
		return t.reject(NewStatusError(wire.StatusInvalidLength, addr, "fifo underrun"))
	}
	n := copy(out, q)
	if rest := q[n:]; len(rest) > 0 {
		t.fifos[addr] = rest
	} else {
		delete(t.fifos, addr)
	}
	t.stats.Reads += uint64(n)
	return nil
}

// CompWrite implements Target.
func (t *AdvancedTarget) CompWrite(ctx context.Context, pairs []wire.AddrData) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	addrs := make([]uint64, len(pairs))
	for i, p := range pairs {
		addrs[i] = p.Addr
	}
	if err := t.check(true, addrs...); err != nil {
		return err
	}
	for _, p := range pairs {
		t.store(p.Addr, p.Data)
	}
	t.stats.Writes += uint64(len(pairs))
	return nil
}

// CompRead implements Target.
func (t *AdvancedTarget) CompRead(ctx context.Context, addrs []uint64, out []uint64) error {
	if err := t.wait(ctx); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.check(false, addrs...); err != nil {
		return err
	}
	for i, a := range addrs {
		out[i] = t.load(a)
	}
	t.stats.Reads += uint64(len(addrs))
	return nil
}

var _ Target = (*AdvancedTarget)(nil)
