package log

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/rap-protocol/rap-go/pkg/wire"
)

// StdinPath makes NewReader and NewFilteredReader read from standard input.
const StdinPath = "-"

// Filter selects log events. Every set field must match; the zero Filter
// matches everything. Opcode, TxnID and Status only match wire events.
type Filter struct {
	ConnectionID string
	Endpoint     string
	Direction    *Direction
	Layer        *Layer
	Category     *Category

	// TimeStart is inclusive, TimeEnd exclusive.
	TimeStart *time.Time
	TimeEnd   *time.Time

	Opcode *wire.Opcode
	TxnID  *uint8
	Status *wire.Status
}

// Matches reports whether event passes the filter.
func (f *Filter) Matches(event Event) bool {
	switch {
	case f.ConnectionID != "" && event.ConnectionID != f.ConnectionID,
		f.Endpoint != "" && event.Endpoint != f.Endpoint,
		f.Direction != nil && event.Direction != *f.Direction,
		f.Layer != nil && event.Layer != *f.Layer,
		f.Category != nil && event.Category != *f.Category,
		f.TimeStart != nil && event.Timestamp.Before(*f.TimeStart),
		f.TimeEnd != nil && !event.Timestamp.Before(*f.TimeEnd):
		return false
	}
	if f.Opcode == nil && f.TxnID == nil && f.Status == nil {
		return true
	}

	m := event.Message
	if m == nil {
		return false
	}
	switch {
	case f.Opcode != nil && m.Opcode != *f.Opcode,
		f.TxnID != nil && m.TxnID != *f.TxnID,
		f.Status != nil && (m.Status == nil || *m.Status != *f.Status):
		return false
	}
	return true
}

// Reader streams events from a CBOR log, skipping those the filter
// rejects.
type Reader struct {
	src     io.Closer
	decoder *cbor.Decoder
	filter  Filter
}

// NewReader reads every event of the log at path.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader reads the events of the log at path that match filter.
// A path of StdinPath reads standard input.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	if path == StdinPath {
		return NewStreamReader(io.NopCloser(os.Stdin), filter), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewStreamReader(f, filter), nil
}

// NewStreamReader reads events from r. Close closes r.
func NewStreamReader(r io.ReadCloser, filter Filter) *Reader {
	return &Reader{src: r, decoder: NewDecoder(r), filter: filter}
}

// Next returns the next matching event, or io.EOF at the end of the log.
// A log cut off mid-event, as left by a crashed writer, also ends with
// io.EOF.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		if r.filter.Matches(event) {
			return event, nil
		}
	}
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.src.Close()
}
