// Package register defines the backing store a RAP server dispatches into,
// and provides two in-memory implementations.
//
// SimpleTarget is an unbounded map of registers. AdvancedTarget adds an
// address window, read-only ranges, per-address fault injection and bounded
// FIFO queues, for exercising a server's Nak paths.
//
// A store signals a specific Nak status by returning a *StatusError; any
// other error is reported to the client as wire.StatusFault.
package register
