// Package transport carries encoded RAP messages between a client and a
// server.
//
// Every implementation preserves message boundaries: one Send on one side
// yields exactly one Receive on the other. Three kinds are provided:
//
//   - IPC: a pair of in-process endpoints joined by bounded channels
//     (NewPairedIPC). Used by tests and embedded servers.
//   - UDP: one datagram per message (NewUDPPair, ListenUDP).
//   - Stream: 4-byte big-endian length-prefixed frames over any net.Conn
//     (NewStream, Dial, Listen).
//
// Receive takes a timeout; zero waits forever. A timed out Receive leaves the
// transport usable. Errors are reported with the sentinels in errors.go so
// callers can tell a timeout from a lost peer.
//
// Each transport carries a UUID connection id and, when configured with
// WithLogger, reports every frame to a protocol log.
package transport
