package client

import (
	"errors"
	"fmt"

	"github.com/rap-protocol/rap-go/pkg/serdes"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// Client errors.
var (
	// ErrNak matches every *NakError via errors.Is.
	ErrNak = errors.New("command rejected")

	// ErrTimeout indicates no response arrived within the timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrClientClosed indicates the target was closed or its transport failed.
	ErrClientClosed = errors.New("client is closed")

	// ErrNoTransactionID indicates all 256 transaction ids are in flight.
	ErrNoTransactionID = errors.New("no free transaction id")

	// ErrUnexpectedResponse indicates a response that does not answer the
	// command it was correlated with.
	ErrUnexpectedResponse = errors.New("unexpected response")

	// ErrInvalidArgument indicates inconsistent call arguments, such as an
	// output slice whose length differs from the address list.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMismatch is recorded by Fluent.Expect when a register holds an
	// unexpected value.
	ErrMismatch = errors.New("register mismatch")
)

// Errors shared with the codec.
var (
	ErrFeatureDisabled = serdes.ErrFeatureDisabled
	ErrCountOutOfRange = serdes.ErrCountOutOfRange
)

// NakError reports a command the server answered with a Nak.
type NakError struct {
	Op     wire.Opcode
	Status wire.Status
}

func (e *NakError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Op, e.Status)
}

// Is reports whether target is ErrNak.
func (e *NakError) Is(target error) bool {
	return target == ErrNak
}
