package transport

import "time"

// Transport is a message-boundary preserving channel between a RAP client
// and server. Implementations are safe for one concurrent sender and one
// concurrent receiver.
type Transport interface {
	// Send transmits one message.
	Send(data []byte) error

	// Receive blocks until a message arrives or timeout elapses
	// (0 waits forever). ErrMessageTooLarge reports a discarded frame;
	// the transport remains usable.
	Receive(timeout time.Duration) ([]byte, error)

	// Close releases the transport. Blocked calls return ErrClosed.
	Close() error
}

// Describer is implemented by transports that can identify themselves in
// protocol logs.
type Describer interface {
	// ID returns the connection id.
	ID() string

	// RemoteAddr returns the peer address, or "" when unknown.
	RemoteAddr() string
}

// FrameReadWriter provides length-prefixed frame I/O.
// Implemented by Framer.
type FrameReadWriter interface {
	// ReadFrame reads a length-prefixed frame.
	ReadFrame() ([]byte, error)

	// WriteFrame writes a length-prefixed frame.
	WriteFrame(data []byte) error
}

// Compile-time interface satisfaction checks.
var (
	_ Transport       = (*IPC)(nil)
	_ Transport       = (*UDP)(nil)
	_ Transport       = (*Stream)(nil)
	_ Describer       = (*IPC)(nil)
	_ Describer       = (*UDP)(nil)
	_ Describer       = (*Stream)(nil)
	_ FrameReadWriter = (*Framer)(nil)
)
