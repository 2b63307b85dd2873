// Package config defines the RAP protocol configuration.
//
// A Configuration fixes the width of every integer field on the wire and the
// set of optional features a client/server pair agrees on. It is validated
// once by New and is immutable afterwards, so a single value can be shared by
// any number of codecs, clients and server adapters.
//
// # Field Widths
//
// Each integer field has a declared bit width and a byte width:
//
//	Address  AddressBits in AddressBytes (1..8)
//	Data     DataBits    in DataBytes    (1..8)
//	Length   LengthBytes (1..4), the element count of variable length commands
//	CRC      CrcBytes    (1, 2 or 4), the message trailer
//
// # Features
//
// Six independent flags gate the optional command kinds:
//
//   - Sequential: start address plus contiguous increment
//   - Fifo: repeated access to a single address (increment 0)
//   - Increment: arbitrary address strides
//   - Compressed: explicit address lists and address/data pairs
//   - Interrupt: unsolicited server notifications
//   - ReadModifyWrite: atomic masked updates
//
// # Profiles
//
// Named profiles are embedded as YAML documents and can be loaded with
// Profile. Deployment specific profiles can be read with LoadFile.
package config
