package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/rap-protocol/rap-go/pkg/trace"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// TraceDomain is the trace.Source domain of RAP targets.
const TraceDomain = "rap"

// Fluent wraps a Target for scripted register sequences. Every method
// returns the Fluent itself. The first failure is kept in Err and every
// later operation is skipped until Reset.
//
//	var id uint64
//	f := client.NewFluent(target, trace.NewSlogObserver(nil))
//	f.Seq("bring-up").
//		Step("reset").Write(0x00, 0x01).
//		Step("identify").Read(0x04, &id)
//	if err := f.Err(); err != nil {
//		return err
//	}
type Fluent struct {
	t      *Target
	ctx    context.Context
	obs    *trace.Multi
	src    trace.Source
	posted bool
	err    error
}

// NewFluent wraps t, reporting to observers.
func NewFluent(t *Target, observers ...trace.Observer) *Fluent {
	return &Fluent{
		t:   t,
		ctx: context.Background(),
		obs: trace.NewMulti(observers...),
		src: trace.Source{Domain: TraceDomain, Instance: t.Name()},
	}
}

// WithContext sets the context for subsequent operations.
func (f *Fluent) WithContext(ctx context.Context) *Fluent {
	f.ctx = ctx
	return f
}

// Observe adds an observer.
func (f *Fluent) Observe(o trace.Observer) *Fluent {
	f.obs.Add(o)
	return f
}

// Posted selects posted or non-posted writes for subsequent operations.
func (f *Fluent) Posted(posted bool) *Fluent {
	f.posted = posted
	return f
}

// Target returns the wrapped target.
func (f *Fluent) Target() *Target { return f.t }

// Err returns the first error since construction or the last Reset.
func (f *Fluent) Err() error { return f.err }

// Reset clears the recorded error.
func (f *Fluent) Reset() *Fluent {
	f.err = nil
	return f
}

// Seq announces a named sequence.
func (f *Fluent) Seq(msg string) *Fluent {
	f.obs.SeqStart(f.src, msg)
	return f
}

// Step announces a step of the current sequence.
func (f *Fluent) Step(msg string) *Fluent {
	f.obs.Step(f.src, msg)
	return f
}

func (f *Fluent) hex(v uint64) string {
	return fmt.Sprintf("0x%0*x", 2*f.t.cfg.DataBytes(), v)
}

func (f *Fluent) hexList(vs []uint64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = f.hex(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// do runs one operation with its trace events. values, if set, is called
// after success to report what was read.
func (f *Fluent) do(desc string, written []uint64, fn func(ctx context.Context) error, values func() []uint64) *Fluent {
	if f.err != nil {
		return f
	}
	f.obs.OpStart(f.src, desc)
	if len(written) > 0 {
		f.obs.OpValues(f.src, f.hexList(written))
	}
	if err := fn(f.ctx); err != nil {
		f.err = err
		f.obs.OpError(f.src, err.Error())
		return f
	}
	if values != nil {
		f.obs.OpValues(f.src, f.hexList(values()))
	}
	f.obs.OpEnd(f.src)
	return f
}

func (f *Fluent) postedTag() string {
	if f.posted {
		return " (posted)"
	}
	return ""
}

// Write stores data at addr.
func (f *Fluent) Write(addr, data uint64) *Fluent {
	posted := f.posted
	return f.do(fmt.Sprintf("write 0x%x <- %s%s", addr, f.hex(data), f.postedTag()), nil,
		func(ctx context.Context) error { return f.t.Write(ctx, addr, data, posted) }, nil)
}

// Read stores the value at addr in out.
func (f *Fluent) Read(addr uint64, out *uint64) *Fluent {
	var v uint64
	f.do(fmt.Sprintf("read 0x%x", addr), nil,
		func(ctx context.Context) (err error) {
			v, err = f.t.Read(ctx, addr)
			return err
		},
		func() []uint64 { return []uint64{v} })
	if f.err == nil && out != nil {
		*out = v
	}
	return f
}

// Expect reads addr and records ErrMismatch unless it holds want.
func (f *Fluent) Expect(addr, want uint64) *Fluent {
	var v uint64
	return f.do(fmt.Sprintf("expect 0x%x == %s", addr, f.hex(want)), nil,
		func(ctx context.Context) (err error) {
			if v, err = f.t.Read(ctx, addr); err != nil {
				return err
			}
			if v != want {
				return fmt.Errorf("%w: 0x%x is %s, want %s", ErrMismatch, addr, f.hex(v), f.hex(want))
			}
			return nil
		},
		func() []uint64 { return []uint64{v} })
}

// ReadModifyWrite replaces the bits of addr selected by mask.
func (f *Fluent) ReadModifyWrite(addr, data, mask uint64) *Fluent {
	posted := f.posted
	return f.do(fmt.Sprintf("rmw 0x%x <- %s mask %s%s", addr, f.hex(data), f.hex(mask), f.postedTag()), nil,
		func(ctx context.Context) error { return f.t.ReadModifyWrite(ctx, addr, data, mask, posted) }, nil)
}

// SeqWrite writes data from addr with the given increment.
func (f *Fluent) SeqWrite(addr uint64, data []uint64, increment uint64) *Fluent {
	posted := f.posted
	return f.do(fmt.Sprintf("seqwrite 0x%x +%d x%d%s", addr, increment, len(data), f.postedTag()), data,
		func(ctx context.Context) error { return f.t.SeqWrite(ctx, addr, data, increment, posted) }, nil)
}

// SeqRead fills out from addr with the given increment.
func (f *Fluent) SeqRead(addr uint64, out []uint64, increment uint64) *Fluent {
	return f.do(fmt.Sprintf("seqread 0x%x +%d x%d", addr, increment, len(out)), nil,
		func(ctx context.Context) error { return f.t.SeqRead(ctx, addr, out, increment) },
		func() []uint64 { return out })
}

// FifoWrite pushes data to the FIFO at addr.
func (f *Fluent) FifoWrite(addr uint64, data []uint64) *Fluent {
	posted := f.posted
	return f.do(fmt.Sprintf("fifowrite 0x%x x%d%s", addr, len(data), f.postedTag()), data,
		func(ctx context.Context) error { return f.t.FifoWrite(ctx, addr, data, posted) }, nil)
}

// FifoRead pops len(out) values from the FIFO at addr.
func (f *Fluent) FifoRead(addr uint64, out []uint64) *Fluent {
	return f.do(fmt.Sprintf("fiforead 0x%x x%d", addr, len(out)), nil,
		func(ctx context.Context) error { return f.t.FifoRead(ctx, addr, out) },
		func() []uint64 { return out })
}

// CompWrite writes each address/data pair.
func (f *Fluent) CompWrite(pairs []wire.AddrData) *Fluent {
	posted := f.posted
	data := make([]uint64, len(pairs))
	for i, p := range pairs {
		data[i] = p.Data
	}
	return f.do(fmt.Sprintf("compwrite x%d%s", len(pairs), f.postedTag()), data,
		func(ctx context.Context) error { return f.t.CompWrite(ctx, pairs, posted) }, nil)
}

// CompRead fills out[i] from addrs[i].
func (f *Fluent) CompRead(addrs []uint64, out []uint64) *Fluent {
	return f.do(fmt.Sprintf("compread x%d", len(addrs)), nil,
		func(ctx context.Context) error { return f.t.CompRead(ctx, addrs, out) },
		func() []uint64 { return out })
}
