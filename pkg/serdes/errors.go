package serdes

import "errors"

// Encode errors.
var (
	// ErrMessageTooLarge indicates the encoded message would exceed the
	// maximum message size.
	ErrMessageTooLarge = errors.New("message too large")

	// ErrCountOutOfRange indicates an element count that the length field
	// cannot carry or that would force a message over the size limit.
	ErrCountOutOfRange = errors.New("count out of range")

	// ErrValueOutOfRange indicates an address, data or mask value wider than
	// its configured bit width.
	ErrValueOutOfRange = errors.New("value out of range")
)

// Decode errors.
var (
	// ErrBadCrc indicates the CRC trailer does not match the message.
	ErrBadCrc = errors.New("bad crc")

	// ErrTruncated indicates the message length does not match its contents.
	ErrTruncated = errors.New("truncated message")

	// ErrUnknownOpcode indicates an unrecognised kind tag.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// ErrFeatureDisabled indicates a message kind or increment that the
// configuration does not enable. Returned by both encode and decode.
var ErrFeatureDisabled = errors.New("feature disabled")

// ErrMessageSizeTooSmall is returned by New when the requested maximum
// message size is below MinimumMaxMessageSize.
var ErrMessageSizeTooSmall = errors.New("maximum message size below minimum")
