// Package server implements the serving side of RAP.
//
// An Adapter binds a Configuration, a Transport and a register.Target. Serve
// runs a strictly sequential loop: receive one message, decode it, dispatch
// it to the store, and send the Ack or Nak. Messages that fail to decode
// are logged, counted and dropped; the loop keeps serving. Posted commands
// are executed but never answered.
//
// ServeListener accepts stream connections and runs one Adapter per
// connection against a shared store.
package server
