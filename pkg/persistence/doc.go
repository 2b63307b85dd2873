// Package persistence saves register images so a server's store survives
// restarts.
//
// Images are written as indented JSON with registers sorted by address, so
// a state file can be inspected and edited by hand.
package persistence
