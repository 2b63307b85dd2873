// Package log provides structured protocol logging for RAP.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at multiple layers (transport, wire, service).
// It is separate from operational logging (slog) - protocol capture provides
// a complete machine-readable event trace for debugging and analysis.
//
// # Basic Usage
//
// Clients and servers accept a Logger through their options:
//
//	// For development: log to console via slog
//	client.WithLogger(log.NewSlogAdapter(slog.Default()))
//
//	// For production: write to a binary file, rotated at 64 MB
//	fl := log.NewRotatingFileLogger("/var/log/rap/server.rlog", log.RotateOptions{MaxSizeMB: 64})
//	server.WithLogger(fl)
//
//	// Both: use MultiLogger
//	server.WithLogger(log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl))
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Transport: Raw frame bytes (FrameEvent)
//   - Wire: Decoded commands, responses and interrupts (MessageEvent)
//   - Service: Client and adapter state changes (StateChangeEvent)
//
// Errors at any layer use ErrorEventData.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events, conventionally with the
// .rlog extension. The rap-log tool views and summarizes them.
package log
