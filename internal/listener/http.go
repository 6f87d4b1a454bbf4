package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"
)

const defaultShutdownTimeout = 10 * time.Second

// HttpListener serves the room endpoints until its context is canceled.
type HttpListener struct {
	addr    string
	handler http.Handler

	mu    sync.Mutex
	bound net.Addr
	ready chan struct{}
}

func NewHttpListener(addr string, handler http.Handler) *HttpListener {
	return &HttpListener{
		addr:    addr,
		handler: handler,
		ready:   make(chan struct{}),
	}
}

func (l *HttpListener) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", l.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", l.addr, err)
	}

	l.mu.Lock()
	l.bound = listener.Addr()
	l.mu.Unlock()
	close(l.ready)

	// Streams run until the peer leaves, so they get their own context that
	// is canceled on shutdown.
	connCtx, cancelConns := context.WithCancel(context.Background())
	defer cancelConns()

	srv := &http.Server{
		Handler:           l.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return connCtx },
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			cancelConns()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.ErrorContext(ctx, "shutting down http server", "error", err)
			}
		case <-done:
		}
	}()

	slog.InfoContext(ctx, "listening for http", "addr", listener.Addr().String())

	err = srv.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serving http on %s: %w", l.addr, err)
}

// Addr returns the bound address once Ready is closed.
func (l *HttpListener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bound
}

// Ready is closed once the listener is bound.
func (l *HttpListener) Ready() <-chan struct{} {
	return l.ready
}
