// Command rap-client accesses the registers of a RAP server.
//
// Usage:
//
//	rap-client [flags] [command args...]
//
// Without a command it starts an interactive shell. With a command it runs
// that single command and exits.
//
// Flags:
//
//	-config string            Configuration file (YAML)
//	-profile string           Built-in configuration profile (default "example")
//	-transport string         Transport: tcp or udp (default "tcp")
//	-addr string              Server address (default "localhost:4740")
//	-local string             Local UDP address (default ":0")
//	-discover string          Find the server by mDNS instance name instead of -addr
//	-timeout duration         Response timeout (default 5s)
//	-posted                   Start with posted writes enabled
//	-trace-file string        Append an operation trace; "{time}" expands to the start time
//	-protocol-log string      File path for protocol event logging (CBOR format)
//	-protocol-echo            Also print protocol events (needs -log-level debug)
//	-log-level string         Log level: debug, info, warn, error (default "warn")
//
// Examples:
//
//	# Interactive session against a local server
//	rap-client -profile example
//
//	# One-shot sequential read from a server found via mDNS
//	rap-client -discover bench seqread 0x10 8
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rap-protocol/rap-go/cmd/rap-client/interactive"
	"github.com/rap-protocol/rap-go/internal/cli"
	"github.com/rap-protocol/rap-go/pkg/client"
	"github.com/rap-protocol/rap-go/pkg/discovery"
	"github.com/rap-protocol/rap-go/pkg/log"
	"github.com/rap-protocol/rap-go/pkg/trace"
	"github.com/rap-protocol/rap-go/pkg/transport"
	"github.com/rap-protocol/rap-go/pkg/wire"
)

// Config holds the command line settings.
type Config struct {
	ConfigFile     string
	Profile        string
	Transport      string
	Addr           string
	Local          string
	Discover       string
	Timeout        time.Duration
	MaxMessageSize int
	Posted         bool
	TraceFile      string
	ProtocolLog    string
	ProtocolEcho   bool
	LogLevel       string
}

var cfg Config

func init() {
	flag.StringVar(&cfg.ConfigFile, "config", "", "Configuration file (YAML)")
	flag.StringVar(&cfg.Profile, "profile", "", "Built-in configuration profile (default \"example\")")
	flag.StringVar(&cfg.Transport, "transport", "tcp", "Transport: tcp or udp")
	flag.StringVar(&cfg.Addr, "addr", fmt.Sprintf("localhost:%d", discovery.DefaultPort), "Server address")
	flag.StringVar(&cfg.Local, "local", ":0", "Local UDP address")
	flag.StringVar(&cfg.Discover, "discover", "", "Find the server by mDNS instance name instead of -addr")
	flag.DurationVar(&cfg.Timeout, "timeout", client.DefaultTimeout, "Response timeout")
	flag.IntVar(&cfg.MaxMessageSize, "max-message-size", client.DefaultMaxMessageSize, "Maximum message size in bytes")
	flag.BoolVar(&cfg.Posted, "posted", false, "Start with posted writes enabled")
	flag.StringVar(&cfg.TraceFile, "trace-file", "", "Append an operation trace; \"{time}\" expands to the start time")
	flag.StringVar(&cfg.ProtocolLog, "protocol-log", "", "File path for protocol event logging (CBOR format)")
	flag.BoolVar(&cfg.ProtocolEcho, "protocol-echo", false, "Also print protocol events (needs -log-level debug)")
	flag.StringVar(&cfg.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	logger, err := cli.SetupLogging(cfg.LogLevel, os.Stderr)
	if err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rc, err := cli.LoadConfiguration(cfg.ConfigFile, cfg.Profile)
	if err != nil {
		stdlog.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Discover != "" {
		svc, err := discover(ctx)
		if err != nil {
			stdlog.Fatalf("Discovery failed: %v", err)
		}
		// The server's advertised configuration wins over local flags.
		rc = svc.Config
		if svc.MaxMessageSize > 0 {
			cfg.MaxMessageSize = svc.MaxMessageSize
		}
		cfg.Addr = svc.Endpoints()[0]
		stdlog.Printf("Discovered %q at %s (%s)", svc.InstanceName, cfg.Addr, rc)
	}

	plog, closer, err := cli.OpenProtocolLog(cfg.ProtocolLog, 0)
	if err != nil {
		stdlog.Fatalf("Failed to open protocol log: %v", err)
	}
	defer closer.Close()
	plog = cli.EchoProtocol(plog, logger, cfg.ProtocolEcho)

	tr, err := connect(ctx, plog)
	if err != nil {
		stdlog.Fatalf("Connect failed: %v", err)
	}

	var shell atomic.Pointer[interactive.Shell]
	target, err := client.New(rc, tr,
		client.WithTimeout(cfg.Timeout),
		client.WithMaxMessageSize(cfg.MaxMessageSize),
		client.WithName(cfg.Addr),
		client.WithLogger(plog),
		client.WithSlog(logger),
		client.WithInterruptHandler(func(s wire.Status) {
			if sh := shell.Load(); sh != nil {
				fmt.Fprintf(sh.Stdout(), "Interrupt: %s\n", s)
			}
		}),
	)
	if err != nil {
		tr.Close()
		stdlog.Fatalf("Invalid configuration: %v", err)
	}
	defer target.Close()

	f := client.NewFluent(target, trace.NewSlogObserver(logger))
	f.Posted(cfg.Posted)
	if cfg.TraceFile != "" {
		obs, err := trace.NewFileObserver(trace.FilenameFor(cfg.TraceFile, time.Now()))
		if err != nil {
			stdlog.Fatalf("Failed to open trace file: %v", err)
		}
		defer obs.Close()
		f.Observe(obs)
	}

	sh := interactive.New(f, os.Stdout)
	shell.Store(sh)

	if args := flag.Args(); len(args) > 0 {
		if err := sh.Exec(ctx, strings.Join(args, " ")); err != nil && !errors.Is(err, interactive.ErrExit) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Connected to %s (%s)\n", cfg.Addr, rc)
	go func() {
		<-target.Done()
		cancel()
	}()
	if err := sh.Run(ctx); err != nil {
		stdlog.Fatalf("Shell failed: %v", err)
	}
}

func discover(ctx context.Context) (*discovery.Service, error) {
	browser := discovery.NewMDNSBrowser(discovery.BrowserConfig{})
	svc, err := browser.Find(ctx, cfg.Transport, cfg.Discover)
	if err != nil {
		return nil, err
	}
	if len(svc.Endpoints()) == 0 {
		return nil, fmt.Errorf("%q advertised no addresses", svc.InstanceName)
	}
	return svc, nil
}

func connect(ctx context.Context, plog log.Logger) (transport.Transport, error) {
	opts := []transport.Option{
		transport.WithMaxMessageSize(cfg.MaxMessageSize),
		transport.WithLogger(plog, log.RoleClient),
	}
	switch cfg.Transport {
	case "tcp":
		dctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		s, err := transport.Dial(dctx, cfg.Addr, opts...)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "udp":
		u, err := transport.NewUDPPair(cfg.Local, cfg.Addr, opts...)
		if err != nil {
			return nil, err
		}
		return u, nil
	default:
		return nil, fmt.Errorf("unknown transport: %s (use: tcp, udp)", cfg.Transport)
	}
}
