package register

import (
	"context"
	"errors"
	"fmt"

	"github.com/rap-protocol/rap-go/pkg/wire"
)

// StatusError is returned by a Target to choose the status of the Nak sent
// to the client.
type StatusError struct {
	Status wire.Status
	Addr   uint64
	Msg    string
}

// NewStatusError creates a StatusError for addr.
func NewStatusError(status wire.Status, addr uint64, msg string) *StatusError {
	return &StatusError{Status: status, Addr: addr, Msg: msg}
}

func (e *StatusError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s at 0x%x: %s", e.Status, e.Addr, e.Msg)
	}
	return fmt.Sprintf("%s at 0x%x", e.Status, e.Addr)
}

// StatusOf returns the Nak status for err: the status of a wrapped
// *StatusError, StatusTimeout for context deadlines, or StatusFault.
func StatusOf(err error) wire.Status {
	var se *StatusError
	switch {
	case err == nil:
		return wire.StatusSuccess
	case errors.As(err, &se):
		return se.Status
	case errors.Is(err, context.DeadlineExceeded):
		return wire.StatusTimeout
	default:
		return wire.StatusFault
	}
}
