package discovery

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/rap-protocol/rap-go/pkg/config"
)

// Service type constants for mDNS.
const (
	// ServiceTypeUDP is the service type for servers on the datagram transport.
	ServiceTypeUDP = "_rap._udp"

	// ServiceTypeTCP is the service type for servers on the stream transport.
	ServiceTypeTCP = "_rap._tcp"

	// Domain is the mDNS domain.
	Domain = "local."

	// DefaultPort is the default RAP port.
	DefaultPort = 4740
)

// TXT record keys.
const (
	TXTKeyAddressWidth   = "aw"
	TXTKeyDataWidth      = "dw"
	TXTKeyLengthWidth    = "lw"
	TXTKeyCrcWidth       = "cw"
	TXTKeyFeatures       = "ft"
	TXTKeyMaxMessageSize = "mm"
	TXTKeyProfile        = "pf"
)

// BrowseTimeout is the default timeout for mDNS browsing.
const BrowseTimeout = 5 * time.Second

// MaxInstanceNameLen is the DNS label limit.
const MaxInstanceNameLen = 63

// Errors.
var (
	ErrMissingRequired     = errors.New("missing required TXT record")
	ErrInvalidTXTRecord    = errors.New("invalid TXT record")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
	ErrEmptyInstanceName   = errors.New("empty instance name")
	ErrUnknownNetwork      = errors.New("unknown network")
	ErrNotFound            = errors.New("service not found")
)

// ServiceType returns the service type for a transport network name
// ("udp" or "tcp").
func ServiceType(network string) (string, error) {
	switch network {
	case "udp", "udp4", "udp6":
		return ServiceTypeUDP, nil
	case "tcp", "tcp4", "tcp6":
		return ServiceTypeTCP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNetwork, network)
	}
}

// ServerInfo describes a server to advertise.
type ServerInfo struct {
	InstanceName   string
	Network        string
	Port           uint16
	Config         *config.Configuration
	MaxMessageSize int
}

// Service is a discovered server.
type Service struct {
	InstanceName   string
	Host           string
	Port           uint16
	Addresses      []string
	Network        string
	Config         *config.Configuration
	MaxMessageSize int
}

// Endpoints returns host:port strings for each address of the service.
func (s *Service) Endpoints() []string {
	out := make([]string, 0, len(s.Addresses))
	for _, a := range s.Addresses {
		out = append(out, net.JoinHostPort(a, strconv.Itoa(int(s.Port))))
	}
	return out
}
