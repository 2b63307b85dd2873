package server

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rap-protocol/rap-go/pkg/config"
	"github.com/rap-protocol/rap-go/pkg/register"
	"github.com/rap-protocol/rap-go/pkg/transport"
)

// ServeListener accepts stream connections until ctx is done and serves
// each with its own Adapter against the shared store. Adapters on different
// connections run concurrently, so store must be safe for concurrent use.
// It returns once every connection has finished.
func ServeListener(ctx context.Context, ln *transport.Listener, cfg *config.Configuration, store register.Target, opts ...Option) error {
	// Build one adapter up front to validate the options and get the logger.
	probe, err := New(cfg, nopTransport{}, store, opts...)
	if err != nil {
		return err
	}
	logger := probe.slog

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept(ctx)
		if err != nil {
			if errors.Is(err, transport.ErrClosed) {
				return ctx.Err()
			}
			return err
		}

		a, err := New(cfg, conn, store, opts...)
		if err != nil {
			conn.Close()
			return err
		}
		logger.Info("rap server: connection accepted", "remote", conn.RemoteAddr(), "conn_id", conn.ID())

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Close()
			err := a.Serve(ctx)
			logger.Info("rap server: connection finished", "remote", conn.RemoteAddr(),
				slog.Any("error", err), slog.Any("stats", a.Stats()))
		}()
	}
}

// nopTransport lets ServeListener validate options without a connection.
type nopTransport struct{}

func (nopTransport) Send([]byte) error { return transport.ErrClosed }
func (nopTransport) Receive(_ time.Duration) ([]byte, error) {
	return nil, transport.ErrClosed
}
func (nopTransport) Close() error { return nil }
