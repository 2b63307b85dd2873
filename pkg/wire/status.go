package wire

// Status represents a Nak or Interrupt status code.
type Status uint8

const (
	// StatusSuccess indicates the operation completed successfully.
	// It never appears in a Nak.
	StatusSuccess Status = 0

	// StatusFault indicates the backing store failed the operation.
	StatusFault Status = 1

	// StatusInvalidAddress indicates an address outside the store's range.
	StatusInvalidAddress Status = 2

	// StatusInvalidLength indicates an element count the server cannot serve.
	StatusInvalidLength Status = 3

	// StatusUnsupported indicates the operation is not supported by the store.
	StatusUnsupported Status = 4

	// StatusReadOnly indicates a write to a read-only register.
	StatusReadOnly Status = 5

	// StatusBusy indicates the server is busy; try again later.
	StatusBusy Status = 6

	// StatusTimeout indicates the backing store timed out.
	StatusTimeout Status = 7

	// StatusInternal indicates the server failed to build a response.
	StatusInternal Status = 8
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFault:
		return "FAULT"
	case StatusInvalidAddress:
		return "INVALID_ADDRESS"
	case StatusInvalidLength:
		return "INVALID_LENGTH"
	case StatusUnsupported:
		return "UNSUPPORTED"
	case StatusReadOnly:
		return "READ_ONLY"
	case StatusBusy:
		return "BUSY"
	case StatusTimeout:
		return "TIMEOUT"
	case StatusInternal:
		return "INTERNAL"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}
