// Command rap-server serves a register store over RAP.
//
// Usage:
//
//	rap-server [flags]
//
// Flags:
//
//	-config string            Configuration file (YAML)
//	-profile string           Built-in configuration profile (default "example")
//	-transport string         Transport: tcp or udp (default "tcp")
//	-listen string            Listen address (default ":4740")
//	-peer string              UDP peer address; empty answers whoever sent last
//	-max-message-size int     Maximum message size in bytes (default 512)
//	-store string             Register store: simple or advanced (default "simple")
//	-state-file string        Restore registers from this file at start and save them on exit
//	-log-level string         Log level: debug, info, warn, error (default "info")
//	-protocol-log string      File path for protocol event logging (CBOR format)
//	-protocol-echo            Also print protocol events (needs -log-level debug)
//	-advertise                Advertise the server via mDNS
//
// Examples:
//
//	# Serve the example configuration over TCP
//	rap-server -profile example
//
//	# Serve byte registers over UDP to a fixed peer with a bounded store
//	rap-server -profile a8d8l1c1 -transport udp -listen :5000 -peer 10.0.0.2:5001 \
//	    -store advanced -window 0x00-0x7f -read-only 0x70-0x7f
package main

import (
	"context"
	"flag"
	"fmt"
	stdlog "log"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rap-protocol/rap-go/internal/cli"
	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/discovery"
	"github.com/rap-protocol/rap-go/pkg/log"
	"github.com/rap-protocol/rap-go/pkg/persistence"
	"github.com/rap-protocol/rap-go/pkg/register"
	"github.com/rap-protocol/rap-go/pkg/server"
	"github.com/rap-protocol/rap-go/pkg/transport"
)

// Config holds the command line settings.
type Config struct {
	ConfigFile     string
	Profile        string
	Transport      string
	Listen         string
	Peer           string
	MaxMessageSize int
	Store          string
	Window         string
	ReadOnly       string
	FifoDepth      int
	Latency        time.Duration
	LogLevel       string
	ProtocolLog    string
	ProtocolLogMB  int
	ProtocolEcho   bool
	Advertise      bool
	Name           string
	StateFile      string
}

var cfg Config

func init() {
	flag.StringVar(&cfg.ConfigFile, "config", "", "Configuration file (YAML)")
	flag.StringVar(&cfg.Profile, "profile", "", "Built-in configuration profile (default \"example\")")
	flag.StringVar(&cfg.Transport, "transport", "tcp", "Transport: tcp or udp")
	flag.StringVar(&cfg.Listen, "listen", fmt.Sprintf(":%d", discovery.DefaultPort), "Listen address")
	flag.StringVar(&cfg.Peer, "peer", "", "UDP peer address; empty answers whoever sent last")
	flag.IntVar(&cfg.MaxMessageSize, "max-message-size", server.DefaultMaxMessageSize, "Maximum message size in bytes")
	flag.StringVar(&cfg.Store, "store", "simple", "Register store: simple or advanced")
	flag.StringVar(&cfg.Window, "window", "", "Advanced store: addressable range lo-hi")
	flag.StringVar(&cfg.ReadOnly, "read-only", "", "Advanced store: read-only range lo-hi")
	flag.IntVar(&cfg.FifoDepth, "fifo-depth", register.DefaultFifoDepth, "Advanced store: FIFO depth per address")
	flag.DurationVar(&cfg.Latency, "latency", 0, "Advanced store: delay added to every access")
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.StringVar(&cfg.ProtocolLog, "protocol-log", "", "File path for protocol event logging (CBOR format)")
	flag.BoolVar(&cfg.ProtocolEcho, "protocol-echo", false, "Also print protocol events (needs -log-level debug)")
	flag.IntVar(&cfg.ProtocolLogMB, "protocol-log-max-size", 0, "Rotate the protocol log at this size in MB (0 disables)")
	flag.BoolVar(&cfg.Advertise, "advertise", false, "Advertise the server via mDNS")
	flag.StringVar(&cfg.StateFile, "state-file", "", "Restore registers from this file at start and save them on exit")
	flag.StringVar(&cfg.Name, "name", "", "Server name used in logs and mDNS (default: host name)")
}

func main() {
	flag.Parse()

	logger, err := cli.SetupLogging(cfg.LogLevel, os.Stderr)
	if err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}

	rc, err := cli.LoadConfiguration(cfg.ConfigFile, cfg.Profile)
	if err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Name == "" {
		cfg.Name, _ = os.Hostname()
	}
	if cfg.Name == "" {
		cfg.Name = server.DefaultName
	}

	stdlog.Println("RAP Server")
	stdlog.Println("==========")
	stdlog.Printf("Configuration: %s", rc)
	stdlog.Printf("Transport:     %s %s", cfg.Transport, cfg.Listen)
	stdlog.Printf("Store:         %s", cfg.Store)

	store, err := newStore(rc)
	if err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}

	var state *persistence.ImageStore
	if cfg.StateFile != "" {
		state = persistence.NewImageStore(cfg.StateFile)
		restored, err := state.Restore(rc, store)
		if err != nil {
			stdlog.Fatalf("Failed to restore state: %v", err)
		}
		if restored {
			stdlog.Printf("Restored registers from %s", cfg.StateFile)
		}
	}

	plog, closer, err := cli.OpenProtocolLog(cfg.ProtocolLog, cfg.ProtocolLogMB)
	if err != nil {
		stdlog.Fatalf("Failed to open protocol log: %v", err)
	}
	defer closer.Close()
	plog = cli.EchoProtocol(plog, logger, cfg.ProtocolEcho)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := []server.Option{
		server.WithName(cfg.Name),
		server.WithMaxMessageSize(cfg.MaxMessageSize),
		server.WithLogger(plog),
		server.WithSlog(logger),
	}
	topts := []transport.Option{
		transport.WithMaxMessageSize(cfg.MaxMessageSize),
		transport.WithLogger(plog, log.RoleServer),
	}

	err = run(ctx, rc, store, opts, topts)
	if state != nil {
		if serr := state.Snapshot(rc, store); serr != nil {
			stdlog.Printf("Warning: Failed to save state: %v", serr)
		} else {
			stdlog.Printf("Saved registers to %s", cfg.StateFile)
		}
	}
	if err != nil && ctx.Err() == nil {
		stdlog.Fatalf("Server failed: %v", err)
	}
	stdlog.Println("Goodbye!")
}

// registerStore is both the served target and the persisted image.
type registerStore interface {
	register.Target
	register.Snapshotter
}

func run(ctx context.Context, rc *config.Configuration, store register.Target, opts []server.Option, topts []transport.Option) error {
	switch cfg.Transport {
	case "tcp":
		ln, err := transport.Listen(cfg.Listen, topts...)
		if err != nil {
			return err
		}
		defer ln.Close()
		stdlog.Printf("Listening on %s", ln.Addr())
		advertise(ctx, rc, "tcp", ln.Addr())
		return server.ServeListener(ctx, ln, rc, store, opts...)

	case "udp":
		var (
			tr  *transport.UDP
			err error
		)
		if cfg.Peer != "" {
			tr, err = transport.NewUDPPair(cfg.Listen, cfg.Peer, topts...)
		} else {
			tr, err = transport.ListenUDP(cfg.Listen, topts...)
		}
		if err != nil {
			return err
		}
		defer tr.Close()
		stdlog.Printf("Listening on %s", tr.LocalAddr())
		advertise(ctx, rc, "udp", tr.LocalAddr())

		a, err := server.New(rc, tr, store, opts...)
		if err != nil {
			return err
		}
		err = a.Serve(ctx)
		slog.Info("rap server: stopped", "stats", a.Stats())
		return err

	default:
		return fmt.Errorf("unknown transport: %s (use: tcp, udp)", cfg.Transport)
	}
}

func newStore(rc *config.Configuration) (registerStore, error) {
	switch cfg.Store {
	case "simple":
		return register.NewSimpleTarget(cfg.Name, rc), nil
	case "advanced":
		opts := []register.AdvancedOption{
			register.WithFifoDepth(cfg.FifoDepth),
			register.WithLatency(cfg.Latency),
		}
		if cfg.Window != "" {
			lo, hi, err := cli.ParseRange(cfg.Window)
			if err != nil {
				return nil, fmt.Errorf("window: %w", err)
			}
			opts = append(opts, register.WithWindow(lo, hi-lo+1))
		}
		if cfg.ReadOnly != "" {
			lo, hi, err := cli.ParseRange(cfg.ReadOnly)
			if err != nil {
				return nil, fmt.Errorf("read-only: %w", err)
			}
			opts = append(opts, register.WithReadOnly(lo, hi))
		}
		return register.NewAdvancedTarget(cfg.Name, rc, opts...), nil
	default:
		return nil, fmt.Errorf("unknown store: %s (use: simple, advanced)", cfg.Store)
	}
}

// advertise registers the server via mDNS until ctx ends. Failures are
// logged and otherwise ignored.
func advertise(ctx context.Context, rc *config.Configuration, network string, addr net.Addr) {
	if !cfg.Advertise {
		return
	}
	var port uint16
	switch a := addr.(type) {
	case *net.TCPAddr:
		port = uint16(a.Port)
	case *net.UDPAddr:
		port = uint16(a.Port)
	}

	adv := discovery.NewMDNSAdvertiser(discovery.AdvertiserConfig{})
	info := &discovery.ServerInfo{
		InstanceName:   cfg.Name,
		Network:        network,
		Port:           port,
		Config:         rc,
		MaxMessageSize: cfg.MaxMessageSize,
	}
	if err := adv.Advertise(ctx, info); err != nil {
		stdlog.Printf("Warning: Failed to advertise: %v", err)
		return
	}
	stdlog.Printf("Advertising %s as %q", serviceType(network), cfg.Name)
	go func() {
		<-ctx.Done()
		adv.StopAll()
	}()
}

func serviceType(network string) string {
	st, err := discovery.ServiceType(network)
	if err != nil {
		return network
	}
	return st
}
