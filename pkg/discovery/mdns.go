package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// Advertiser publishes RAP servers via mDNS.
type Advertiser interface {
	// Advertise starts advertising info, replacing any earlier advertisement
	// with the same instance name and network.
	Advertise(ctx context.Context, info *ServerInfo) error

	// Stop stops advertising the named instance on network.
	Stop(instanceName, network string) error

	// StopAll stops every advertisement.
	StopAll()
}

// Browser discovers RAP servers via mDNS.
type Browser interface {
	// Browse streams services of the given network ("udp" or "tcp") until
	// ctx is done.
	Browse(ctx context.Context, network string) (<-chan *Service, error)

	// Find returns the first service with the given instance name.
	Find(ctx context.Context, network, instanceName string) (*Service, error)
}

// AdvertiserConfig configures an MDNSAdvertiser.
type AdvertiserConfig struct {
	// Interface restricts advertising to one network interface. Empty means all.
	Interface string

	// TTL of the published records. Zero uses the zeroconf default.
	TTL time.Duration
}

// BrowserConfig configures an MDNSBrowser.
type BrowserConfig struct {
	// Interface restricts browsing to one network interface. Empty means all.
	Interface string
}

// MDNSAdvertiser implements Advertiser using zeroconf.
type MDNSAdvertiser struct {
	config AdvertiserConfig

	mu      sync.Mutex
	servers map[string]*zeroconf.Server // keyed by service type + instance
}

// NewMDNSAdvertiser creates a new mDNS advertiser.
func NewMDNSAdvertiser(config AdvertiserConfig) *MDNSAdvertiser {
	return &MDNSAdvertiser{
		config:  config,
		servers: make(map[string]*zeroconf.Server),
	}
}

// getInterfaces returns the network interfaces to use, or nil for all.
func getInterfaces(name string) []net.Interface {
	if name == "" {
		return nil
	}
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

func serverKey(serviceType, instance string) string {
	return serviceType + "/" + instance
}

// Advertise implements Advertiser.
func (a *MDNSAdvertiser) Advertise(ctx context.Context, info *ServerInfo) error {
	if err := ValidateInstanceName(info.InstanceName); err != nil {
		return err
	}
	serviceType, err := ServiceType(info.Network)
	if err != nil {
		return err
	}
	if info.Config == nil {
		return fmt.Errorf("%w: no configuration", ErrInvalidTXTRecord)
	}

	txt := TXTRecordsToStrings(EncodeServerTXT(info.Config, info.MaxMessageSize))

	port := int(info.Port)
	if port == 0 {
		port = DefaultPort
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := serverKey(serviceType, info.InstanceName)
	if server, exists := a.servers[key]; exists {
		server.Shutdown()
		delete(a.servers, key)
	}

	server, err := zeroconf.Register(
		info.InstanceName,
		serviceType,
		Domain,
		port,
		txt,
		getInterfaces(a.config.Interface),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register %s service: %w", serviceType, err)
	}
	a.servers[key] = server
	return nil
}

// Stop implements Advertiser.
func (a *MDNSAdvertiser) Stop(instanceName, network string) error {
	serviceType, err := ServiceType(network)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := serverKey(serviceType, instanceName)
	server, exists := a.servers[key]
	if !exists {
		return ErrNotFound
	}
	server.Shutdown()
	delete(a.servers, key)
	return nil
}

// StopAll implements Advertiser.
func (a *MDNSAdvertiser) StopAll() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for key, server := range a.servers {
		server.Shutdown()
		delete(a.servers, key)
	}
}

// MDNSBrowser implements Browser using zeroconf.
type MDNSBrowser struct {
	config BrowserConfig
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) *MDNSBrowser {
	return &MDNSBrowser{config: config}
}

// Browse implements Browser. Entries whose TXT records do not describe a
// valid configuration are skipped.
func (b *MDNSBrowser) Browse(ctx context.Context, network string) (<-chan *Service, error) {
	serviceType, err := ServiceType(network)
	if err != nil {
		return nil, err
	}

	out := make(chan *Service)
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go func() {
		defer close(out)

		services := make(map[string]*Service)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				svc := entryToService(entry, network)
				if svc == nil {
					continue
				}
				if existing, found := services[svc.InstanceName]; found {
					existing.Addresses = mergeAddresses(existing.Addresses, svc.Addresses)
					continue
				}
				services[svc.InstanceName] = svc
				select {
				case out <- svc:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if !ok {
					continue
				}
				if existing, found := services[entry.Instance]; found {
					existing.Addresses = removeAddresses(existing.Addresses, entry)
					if len(existing.Addresses) == 0 {
						delete(services, entry.Instance)
					}
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		_ = zeroconf.Browse(ctx, serviceType, Domain, entries, removed, b.browserOptions()...)
	}()

	return out, nil
}

// Find implements Browser. Without a deadline on ctx it gives up after
// BrowseTimeout.
func (b *MDNSBrowser) Find(ctx context.Context, network, instanceName string) (*Service, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, BrowseTimeout)
		defer cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results, err := b.Browse(ctx, network)
	if err != nil {
		return nil, err
	}
	for svc := range results {
		if svc.InstanceName == instanceName {
			return svc, nil
		}
	}
	return nil, ErrNotFound
}

// browserOptions returns zeroconf client options based on config.
func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if ifaces := getInterfaces(b.config.Interface); ifaces != nil {
		opts = append(opts, zeroconf.SelectIfaces(ifaces))
	}
	return opts
}

// entryToService converts a zeroconf entry to a Service, or nil if its TXT
// records are unusable.
func entryToService(entry *zeroconf.ServiceEntry, network string) *Service {
	cfg, mm, err := DecodeServerTXT(StringsToTXTRecords(entry.Text))
	if err != nil {
		return nil
	}

	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}

	return &Service{
		InstanceName:   entry.Instance,
		Host:           entry.HostName,
		Port:           uint16(entry.Port),
		Addresses:      addrs,
		Network:        network,
		Config:         cfg,
		MaxMessageSize: mm,
	}
}

// mergeAddresses appends the addresses of add not already in existing.
func mergeAddresses(existing, add []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}
	for _, addr := range add {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}

// removeAddresses removes the addresses of a zeroconf entry from the list.
func removeAddresses(addresses []string, entry *zeroconf.ServiceEntry) []string {
	toRemove := make(map[string]bool)
	for _, ip := range entry.AddrIPv4 {
		toRemove[ip.String()] = true
	}
	for _, ip := range entry.AddrIPv6 {
		toRemove[ip.String()] = true
	}

	result := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if !toRemove[addr] {
			result = append(result, addr)
		}
	}
	return result
}

var (
	_ Advertiser = (*MDNSAdvertiser)(nil)
	_ Browser    = (*MDNSBrowser)(nil)
)
