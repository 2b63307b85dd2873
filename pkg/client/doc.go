// Package client implements the requesting side of RAP.
//
// A Target binds a Configuration and a Transport. Each operation encodes a
// command, sends it and, unless the command is posted, blocks until the
// matching Ack or Nak arrives, the timeout elapses or the context ends.
// One goroutine per Target receives every response and routes it to the
// waiting call by transaction id, so calls from several goroutines may be
// in flight at once.
//
// Usage:
//
//	cfg := config.MustProfile("example")
//	tr, _ := transport.NewUDPPair("127.0.0.1:0", "127.0.0.1:4740")
//	target, err := client.New(cfg, tr, client.WithTimeout(time.Second))
//	if err != nil {
//		return err
//	}
//	defer target.Close()
//
//	if err := target.Write(ctx, 0x10, 0xAA, false); err != nil {
//		return err
//	}
//	v, err := target.Read(ctx, 0x10)
//
// Fluent wraps a Target for scripted register sequences and reports every
// operation to trace observers.
package client
