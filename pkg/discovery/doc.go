// Package discovery implements mDNS/DNS-SD discovery for RAP servers.
//
// A server advertises one service per transport it listens on:
//
//	_rap._udp   datagram transport, one frame per datagram
//	_rap._tcp   stream transport, length-prefixed frames
//
// The instance name is free-form (the server's name). TXT records describe
// the wire configuration so a client can build a matching Serdes before it
// sends its first command:
//
//	aw  address width, "<bits>/<bytes>"
//	dw  data width, "<bits>/<bytes>"
//	lw  length field bytes
//	cw  CRC bytes
//	ft  feature map, hex
//	mm  max message size
//	pf  profile name (optional)
//
// Browsing aggregates entries by instance name; addresses reported on
// several interfaces are merged into one Service.
package discovery
