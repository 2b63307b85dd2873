package transport

import (
	"fmt"
	"sync"
	"time"

	"github.com/rap-protocol/rap-go/pkg/log"
)

// IPC is one end of an in-process transport pair.
type IPC struct {
	in         <-chan []byte
	out        chan<- []byte
	closed     chan struct{}
	peerClosed <-chan struct{}
	closeOnce  sync.Once

	maxMessageSize int
	fl             frameLog
}

// NewPairedIPC returns two connected endpoints. Each direction buffers up
// to bufferSize messages; Send blocks while the buffer is full. Options
// apply to both endpoints; each gets its own connection id unless WithID
// is given.
func NewPairedIPC(bufferSize int, opts ...Option) (*IPC, *IPC) {
	if bufferSize < 0 {
		bufferSize = 0
	}
	ab := make(chan []byte, bufferSize)
	ba := make(chan []byte, bufferSize)
	aClosed := make(chan struct{})
	bClosed := make(chan struct{})

	newEnd := func(in <-chan []byte, out chan<- []byte, closed chan struct{}, peer <-chan struct{}) *IPC {
		o := buildOptions(opts)
		return &IPC{
			in:             in,
			out:            out,
			closed:         closed,
			peerClosed:     peer,
			maxMessageSize: o.maxMessageSize,
			fl:             frameLog{logger: o.logger, role: o.role, id: o.id},
		}
	}
	return newEnd(ba, ab, aClosed, bClosed), newEnd(ab, ba, bClosed, aClosed)
}

// ID returns the connection id.
func (t *IPC) ID() string { return t.fl.id }

// RemoteAddr returns "" for in-process transports.
func (t *IPC) RemoteAddr() string { return "" }

// Send copies data into the peer's receive buffer.
func (t *IPC) Send(data []byte) error {
	if len(data) == 0 {
		return ErrMessageEmpty
	}
	if len(data) > t.maxMessageSize {
		return fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, len(data), t.maxMessageSize)
	}
	select {
	case <-t.closed:
		return ErrClosed
	case <-t.peerClosed:
		return ErrConnectionLost
	default:
	}

	frame := append([]byte(nil), data...)
	select {
	case t.out <- frame:
		t.fl.log(log.DirectionOut, frame, 0)
		return nil
	case <-t.closed:
		return ErrClosed
	case <-t.peerClosed:
		return ErrConnectionLost
	}
}

// Receive returns the next message from the peer. Messages the peer sent
// before closing are still delivered.
func (t *IPC) Receive(timeout time.Duration) ([]byte, error) {
	select {
	case <-t.closed:
		return nil, ErrClosed
	case frame := <-t.in:
		return t.received(frame), nil
	default:
	}

	expired, stop := timer(timeout)
	defer stop()

	select {
	case frame := <-t.in:
		return t.received(frame), nil
	case <-t.closed:
		return nil, ErrClosed
	case <-t.peerClosed:
		select {
		case frame := <-t.in:
			return t.received(frame), nil
		default:
			return nil, ErrConnectionLost
		}
	case <-expired:
		return nil, ErrTimeout
	}
}

func (t *IPC) received(frame []byte) []byte {
	t.fl.log(log.DirectionIn, frame, 0)
	return frame
}

// Close closes this endpoint. The peer sees ErrConnectionLost once its
// buffer is drained.
func (t *IPC) Close() error {
	t.closeOnce.Do(func() { close(t.closed) })
	return nil
}
