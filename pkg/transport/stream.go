package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// streamQueueSize is the number of decoded frames buffered ahead of Receive.
const streamQueueSize = 16

// Stream carries length-prefixed RAP messages over a byte stream.
//
// A background goroutine reads frames so that a Receive timeout never
// interrupts a partially read frame.
type Stream struct {
	conn   net.Conn
	framer *Framer
	id     string
	remote string

	frames  chan []byte
	readErr error // set before frames is closed

	closeCh   chan struct{}
	closeOnce sync.Once
	writeMu   sync.Mutex
}

// NewStream wraps an established connection.
func NewStream(conn net.Conn, opts ...Option) *Stream {
	o := buildOptions(opts)
	s := &Stream{
		conn:    conn,
		framer:  NewFramer(conn, uint32(o.maxMessageSize)),
		id:      o.id,
		remote:  conn.RemoteAddr().String(),
		frames:  make(chan []byte, streamQueueSize),
		closeCh: make(chan struct{}),
	}
	s.framer.SetLogger(o.logger, o.role, o.id)
	s.framer.FrameReader.fl.remote = s.RemoteAddr
	s.framer.FrameWriter.fl.remote = s.RemoteAddr
	go s.readLoop()
	return s
}

// Dial connects to a stream server at address.
func Dial(ctx context.Context, address string, opts ...Option) (*Stream, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial failed: %w", err)
	}
	return NewStream(conn, opts...), nil
}

// ID returns the connection id.
func (s *Stream) ID() string { return s.id }

// RemoteAddr returns the peer address.
func (s *Stream) RemoteAddr() string { return s.remote }

func (s *Stream) readLoop() {
	defer close(s.frames)
	for {
		frame, err := s.framer.ReadFrame()
		if err != nil {
			s.readErr = err
			return
		}
		select {
		case s.frames <- frame:
		case <-s.closeCh:
			s.readErr = ErrClosed
			return
		}
	}
}

// Send writes data as one frame.
func (s *Stream) Send(data []byte) error {
	select {
	case <-s.closeCh:
		return ErrClosed
	default:
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.framer.WriteFrame(data); err != nil {
		if errors.Is(err, ErrMessageTooLarge) || errors.Is(err, ErrMessageEmpty) {
			return err
		}
		select {
		case <-s.closeCh:
			return ErrClosed
		default:
		}
		return fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
	return nil
}

// Receive returns the next frame.
func (s *Stream) Receive(timeout time.Duration) ([]byte, error) {
	expired, stop := timer(timeout)
	defer stop()

	select {
	case frame, ok := <-s.frames:
		if !ok {
			return nil, s.terminalError()
		}
		return frame, nil
	case <-s.closeCh:
		return nil, ErrClosed
	case <-expired:
		return nil, ErrTimeout
	}
}

func (s *Stream) terminalError() error {
	select {
	case <-s.closeCh:
		return ErrClosed
	default:
	}
	if s.readErr == io.EOF || s.readErr == nil {
		return ErrConnectionLost
	}
	return fmt.Errorf("%w: %v", ErrConnectionLost, s.readErr)
}

// Close closes the connection and stops the reader.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closeCh)
		err = s.conn.Close()
	})
	return err
}

// Listener accepts stream connections.
type Listener struct {
	ln   net.Listener
	opts []Option
}

// Listen binds a TCP listener on address. Options apply to every accepted
// Stream.
func Listen(address string, opts ...Option) (*Listener, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}
	return &Listener{ln: ln, opts: opts}, nil
}

// Accept waits for the next connection. It returns ErrClosed once the
// listener is closed or ctx is done.
func (l *Listener) Accept(ctx context.Context) (*Stream, error) {
	stop := context.AfterFunc(ctx, func() { l.ln.Close() })
	defer stop()

	conn, err := l.ln.Accept()
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return nil, ErrClosed
		}
		return nil, fmt.Errorf("accept failed: %w", err)
	}
	// Each stream gets a fresh id even when WithID was passed to Listen.
	opts := append(append([]Option(nil), l.opts...), WithID(""))
	return NewStream(conn, opts...), nil
}

// Addr returns the listen address.
func (l *Listener) Addr() net.Addr { return l.ln.Addr() }

// Close stops accepting connections.
func (l *Listener) Close() error {
	err := l.ln.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
