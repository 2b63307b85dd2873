package log

import (
	"time"

	"github.com/rap-protocol/rap-go/pkg/wire"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the transport (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// LocalRole indicates whether this is a client or server.
	LocalRole Role `cbor:"6,keyasint,omitempty"`

	// RemoteAddr is the peer address (IP:port), empty for in-process transports.
	RemoteAddr string `cbor:"7,keyasint,omitempty"`

	// Endpoint is the configured name of the local client or server.
	Endpoint string `cbor:"8,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Frame       *FrameEvent       `cbor:"10,keyasint,omitempty"` // Transport layer
	Message     *MessageEvent     `cbor:"11,keyasint,omitempty"` // Wire layer (decoded)
	StateChange *StateChangeEvent `cbor:"12,keyasint,omitempty"` // Client/adapter state
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerTransport is the framing layer (raw bytes).
	LayerTransport Layer = 0
	// LayerWire is the codec layer (decoded commands and responses).
	LayerWire Layer = 1
	// LayerService is the client/adapter layer.
	LayerService Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerWire:
		return "WIRE"
	case LayerService:
		return "SERVICE"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a protocol message (command/response/interrupt).
	CategoryMessage Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Role indicates whether the local endpoint is a server or client.
type Role uint8

const (
	// RoleServer indicates the server adapter.
	RoleServer Role = 0
	// RoleClient indicates the client target.
	RoleClient Role = 1
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleServer:
		return "SERVER"
	case RoleClient:
		return "CLIENT"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures raw frame data at the transport layer.
type FrameEvent struct {
	// Size is the frame size in bytes (including any length prefix).
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame bytes (may be truncated for large frames).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// MessageEvent captures a decoded RAP message at the wire layer.
type MessageEvent struct {
	// Type distinguishes command/response/interrupt.
	Type MessageType `cbor:"1,keyasint"`

	// TxnID correlates commands and responses.
	TxnID uint8 `cbor:"2,keyasint"`

	// Opcode is the message kind.
	Opcode wire.Opcode `cbor:"3,keyasint"`

	// Posted is set for posted write commands.
	Posted bool `cbor:"4,keyasint,omitempty"`

	// Address is the first (or only) address of a command.
	Address *uint64 `cbor:"5,keyasint,omitempty"`

	// Count is the element count of variable length messages.
	Count *uint64 `cbor:"6,keyasint,omitempty"`

	// Status is set for Naks and interrupts.
	Status *wire.Status `cbor:"7,keyasint,omitempty"`

	// Data holds written or returned values.
	Data []uint64 `cbor:"8,keyasint,omitempty"`

	// ProcessingTime is the duration from command receipt to response send
	// (server) or from command send to response receipt (client).
	// Stored as nanoseconds.
	ProcessingTime *time.Duration `cbor:"9,keyasint,omitempty"`
}

// MessageType distinguishes command/response/interrupt.
type MessageType uint8

const (
	// MessageTypeCommand indicates a command message.
	MessageTypeCommand MessageType = 0
	// MessageTypeResponse indicates an Ack or Nak.
	MessageTypeResponse MessageType = 1
	// MessageTypeInterrupt indicates an unsolicited interrupt.
	MessageTypeInterrupt MessageType = 2
)

// String returns the message type name.
func (m MessageType) String() string {
	switch m {
	case MessageTypeCommand:
		return "COMMAND"
	case MessageTypeResponse:
		return "RESPONSE"
	case MessageTypeInterrupt:
		return "INTERRUPT"
	default:
		return "UNKNOWN"
	}
}

// StateChangeEvent captures client and adapter lifecycle events.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityTransport indicates a transport state change.
	StateEntityTransport StateEntity = 0
	// StateEntityClient indicates a client state change.
	StateEntityClient StateEntity = 1
	// StateEntityAdapter indicates a server adapter state change.
	StateEntityAdapter StateEntity = 2
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityTransport:
		return "TRANSPORT"
	case StateEntityClient:
		return "CLIENT"
	case StateEntityAdapter:
		return "ADAPTER"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Code is the status code (if applicable).
	Code *int `cbor:"3,keyasint,omitempty"`

	// Context describes what operation was being performed.
	Context string `cbor:"4,keyasint,omitempty"`
}

// CommandMessage builds a MessageEvent describing cmd.
func CommandMessage(cmd wire.Command) *MessageEvent {
	m := &MessageEvent{
		Type:   MessageTypeCommand,
		TxnID:  cmd.TxnID(),
		Opcode: cmd.Opcode(),
		Posted: cmd.IsPosted(),
	}
	switch c := cmd.(type) {
	case *wire.ReadSingleCommand:
		m.Address = ptr(c.Addr)
	case *wire.WriteSingleCommand:
		m.Address = ptr(c.Addr)
		m.Data = []uint64{c.Data}
	case *wire.ReadSeqCommand:
		m.Address = ptr(c.Addr)
		m.Count = ptr(c.Count)
	case *wire.WriteSeqCommand:
		m.Address = ptr(c.Addr)
		m.Count = ptr(uint64(len(c.Data)))
		m.Data = c.Data
	case *wire.ReadCompCommand:
		m.Count = ptr(uint64(len(c.Addresses)))
		if len(c.Addresses) > 0 {
			m.Address = ptr(c.Addresses[0])
		}
	case *wire.WriteCompCommand:
		m.Count = ptr(uint64(len(c.AddrData)))
		if len(c.AddrData) > 0 {
			m.Address = ptr(c.AddrData[0].Addr)
		}
		for _, p := range c.AddrData {
			m.Data = append(m.Data, p.Data)
		}
	case *wire.ReadModifyWriteCommand:
		m.Address = ptr(c.Addr)
		m.Data = []uint64{c.Data, c.Mask}
	}
	return m
}

// ResponseMessage builds a MessageEvent describing resp.
func ResponseMessage(resp wire.Response) *MessageEvent {
	m := &MessageEvent{
		Type:   MessageTypeResponse,
		TxnID:  resp.TxnID(),
		Opcode: resp.Opcode(),
	}
	switch r := resp.(type) {
	case *wire.ReadSingleAckResponse:
		m.Data = []uint64{r.Data}
	case *wire.ReadSeqAckResponse:
		m.Count = ptr(uint64(len(r.Data)))
		m.Data = r.Data
	case *wire.ReadCompAckResponse:
		m.Count = ptr(uint64(len(r.Data)))
		m.Data = r.Data
	case *wire.NakResponse:
		m.Status = ptr(r.Status)
	case *wire.InterruptResponse:
		m.Type = MessageTypeInterrupt
		m.Status = ptr(r.Status)
	}
	return m
}

func ptr[T any](v T) *T {
	return &v
}

// MaxLogFrameDataSize is the maximum frame data size to include in logs (4 KB).
// Larger frames are truncated in log events to avoid excessive memory usage.
const MaxLogFrameDataSize = 4096

// NewFrameEvent builds a FrameEvent for data. overhead is the number of
// framing bytes the transport adds (e.g. a length prefix).
func NewFrameEvent(data []byte, overhead int) *FrameEvent {
	fe := &FrameEvent{Size: overhead + len(data), Data: data}
	if len(data) > MaxLogFrameDataSize {
		fe.Data = data[:MaxLogFrameDataSize]
		fe.Truncated = true
	}
	return fe
}
