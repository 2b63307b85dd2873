package trace

import (
	"fmt"
	"sync"
)

// Kind is the type of a recorded event.
type Kind uint8

const (
	KindSeq Kind = iota
	KindStep
	KindOpStart
	KindOpValues
	KindOpEnd
	KindOpError
)

func (k Kind) String() string {
	switch k {
	case KindSeq:
		return "seq"
	case KindStep:
		return "step"
	case KindOpStart:
		return "op"
	case KindOpValues:
		return "values"
	case KindOpEnd:
		return "end"
	case KindOpError:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Record is one recorded event.
type Record struct {
	Kind   Kind
	Source Source
	Text   string
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(k Kind, src Source, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, Record{Kind: k, Source: src, Text: text})
}

func (r *Recorder) SeqStart(src Source, msg string)    { r.add(KindSeq, src, msg) }
func (r *Recorder) Step(src Source, msg string)        { r.add(KindStep, src, msg) }
func (r *Recorder) OpStart(src Source, op string)      { r.add(KindOpStart, src, op) }
func (r *Recorder) OpValues(src Source, values string) { r.add(KindOpValues, src, values) }
func (r *Recorder) OpEnd(src Source)                   { r.add(KindOpEnd, src, "") }
func (r *Recorder) OpError(src Source, msg string)     { r.add(KindOpError, src, msg) }

// Records returns a copy of the recorded events.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Record(nil), r.records...)
}

// Kinds returns the kinds of the recorded events, in order.
func (r *Recorder) Kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Kind, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.Kind
	}
	return out
}

// Reset discards every recorded event.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = nil
}

var _ Observer = (*Recorder)(nil)
