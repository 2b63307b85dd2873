package transport

import "errors"

// Transport errors.
var (
	// ErrTimeout indicates Receive's timeout elapsed without a message.
	ErrTimeout = errors.New("receive timeout")

	// ErrConnectionLost indicates the peer went away.
	ErrConnectionLost = errors.New("connection lost")

	// ErrClosed indicates the local endpoint was closed.
	ErrClosed = errors.New("transport closed")

	// ErrNoPeer indicates a listening UDP transport has not yet heard from
	// a peer and so has nowhere to send.
	ErrNoPeer = errors.New("no peer address")
)

// Framing errors.
var (
	// ErrMessageTooLarge indicates the message exceeds the maximum size.
	ErrMessageTooLarge = errors.New("message too large")

	// ErrMessageEmpty indicates an empty message.
	ErrMessageEmpty = errors.New("message is empty")

	// ErrFrameTruncated indicates the frame was truncated.
	ErrFrameTruncated = errors.New("frame truncated")
)
