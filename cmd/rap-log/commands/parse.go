// Package commands implements the rap-log CLI commands.
package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rap-protocol/rap-go/pkg/log"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// ParseLayerFlag parses a layer name (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "transport":
		return log.LayerTransport, nil
	case "wire":
		return log.LayerWire, nil
	case "service":
		return log.LayerService, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be transport, wire, or service)", s)
	}
}

// ParseDirectionFlag parses a direction name (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category name (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be message, state, or error)", s)
	}
}

// ParseOpcodeFlag accepts an opcode name such as "ReadSeqNak"
// (case-insensitive) or a numeric value such as "0xc3".
func ParseOpcodeFlag(s string) (wire.Opcode, error) {
	if n, err := strconv.ParseUint(s, 0, 8); err == nil {
		op := wire.Opcode(n)
		if !op.IsCommand() && !op.IsResponse() {
			return 0, fmt.Errorf("invalid opcode: %s", s)
		}
		return op, nil
	}
	for _, ops := range [][]wire.Opcode{wire.CommandOpcodes, wire.ResponseOpcodes} {
		for _, op := range ops {
			if strings.EqualFold(op.String(), s) {
				return op, nil
			}
		}
	}
	return 0, fmt.Errorf("invalid opcode: %s", s)
}

// ParseStatusFlag accepts a status name such as "read_only" or "READ_ONLY"
// or its numeric code.
func ParseStatusFlag(s string) (wire.Status, error) {
	if n, err := strconv.ParseUint(s, 0, 8); err == nil && n <= uint64(wire.StatusInternal) {
		return wire.Status(n), nil
	}
	for st := wire.StatusSuccess; st <= wire.StatusInternal; st++ {
		if strings.EqualFold(st.String(), s) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("invalid status: %s", s)
}

// ParseTxnFlag parses a transaction id (0-255).
func ParseTxnFlag(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid transaction id: %s", s)
	}
	return uint8(n), nil
}
