package transport

import (
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/rap-protocol/rap-go/pkg/log"
)

// UDP carries one RAP message per datagram.
type UDP struct {
	conn *net.UDPConn

	// fixedPeer drops datagrams from any address other than peer.
	fixedPeer bool
	peerMu    sync.RWMutex
	peer      *net.UDPAddr

	readMu sync.Mutex
	buf    []byte

	maxMessageSize int
	fl             frameLog
}

// NewUDPPair binds local and exchanges datagrams with remote only.
func NewUDPPair(local, remote string, opts ...Option) (*UDP, error) {
	raddr, err := net.ResolveUDPAddr("udp", remote)
	if err != nil {
		return nil, fmt.Errorf("resolve remote %q: %w", remote, err)
	}
	t, err := listenUDP(local, opts)
	if err != nil {
		return nil, err
	}
	t.peer = raddr
	t.fixedPeer = true
	return t, nil
}

// ListenUDP binds local and replies to whichever peer sent the most recent
// datagram. Send fails with ErrNoPeer until the first datagram arrives.
func ListenUDP(local string, opts ...Option) (*UDP, error) {
	return listenUDP(local, opts)
}

func listenUDP(local string, opts []Option) (*UDP, error) {
	laddr, err := net.ResolveUDPAddr("udp", local)
	if err != nil {
		return nil, fmt.Errorf("resolve local %q: %w", local, err)
	}
	conn, err := net.ListenUDP("udp", laddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	o := buildOptions(opts)
	t := &UDP{
		conn:           conn,
		maxMessageSize: o.maxMessageSize,
		// One spare byte detects oversized datagrams.
		buf: make([]byte, o.maxMessageSize+1),
	}
	t.fl = frameLog{logger: o.logger, role: o.role, id: o.id, remote: t.RemoteAddr}
	return t, nil
}

// ID returns the connection id.
func (t *UDP) ID() string { return t.fl.id }

// LocalAddr returns the bound address.
func (t *UDP) LocalAddr() net.Addr { return t.conn.LocalAddr() }

// RemoteAddr returns the current peer address, or "" if none is known.
func (t *UDP) RemoteAddr() string {
	t.peerMu.RLock()
	defer t.peerMu.RUnlock()
	if t.peer == nil {
		return ""
	}
	return t.peer.String()
}

// Send transmits data as one datagram to the peer.
func (t *UDP) Send(data []byte) error {
	if len(data) == 0 {
		return ErrMessageEmpty
	}
	if len(data) > t.maxMessageSize {
		return fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, len(data), t.maxMessageSize)
	}

	t.peerMu.RLock()
	peer := t.peer
	t.peerMu.RUnlock()
	if peer == nil {
		return ErrNoPeer
	}

	if _, err := t.conn.WriteToUDP(data, peer); err != nil {
		return t.mapError(err)
	}
	t.fl.log(log.DirectionOut, data, 0)
	return nil
}

// Receive waits for the next datagram from the peer. Oversized datagrams
// are reported with ErrMessageTooLarge and discarded.
func (t *UDP) Receive(timeout time.Duration) ([]byte, error) {
	t.readMu.Lock()
	defer t.readMu.Unlock()

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if err := t.conn.SetReadDeadline(deadline); err != nil {
		return nil, t.mapError(err)
	}

	for {
		n, addr, err := t.conn.ReadFromUDP(t.buf)
		if err != nil {
			return nil, t.mapError(err)
		}
		if t.fixedPeer && !sameAddr(addr, t.peer) {
			continue
		}
		if !t.fixedPeer {
			t.peerMu.Lock()
			t.peer = addr
			t.peerMu.Unlock()
		}
		if n > t.maxMessageSize {
			return nil, fmt.Errorf("%w: datagram from %s exceeds %d", ErrMessageTooLarge, addr, t.maxMessageSize)
		}
		if n == 0 {
			continue
		}

		frame := append([]byte(nil), t.buf[:n]...)
		t.fl.log(log.DirectionIn, frame, 0)
		return frame, nil
	}
}

// Close closes the socket.
func (t *UDP) Close() error {
	err := t.conn.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

func (t *UDP) mapError(err error) error {
	switch {
	case errors.Is(err, os.ErrDeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, net.ErrClosed):
		return ErrClosed
	default:
		return fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
}

func sameAddr(a, b *net.UDPAddr) bool {
	return a.Port == b.Port && a.IP.Equal(b.IP)
}
