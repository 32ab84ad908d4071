package runner

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

//go:generate mockgen -source=runner.go -destination=mock_runner.go -package=runner

// DefaultShutdownTimeout bounds graceful shutdown of each server.
const DefaultShutdownTimeout = 5 * time.Second

// HTTPServer defines HTTP server interface.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// Runner runs HTTP servers until the context is done or one of them fails.
type Runner struct {
	mu              sync.Mutex
	servers         []HTTPServer
	shutdownTimeout time.Duration
	wg              sync.WaitGroup
	errCh           chan error
}

// NewRunner creates a new Runner.
func NewRunner() *Runner {
	return &Runner{
		shutdownTimeout: DefaultShutdownTimeout,
		errCh:           make(chan error, 1), // buffer size 1 to avoid blocking on first error
	}
}

// AddHTTPServer adds an HTTPServer to be run later.
func (r *Runner) AddHTTPServer(srv HTTPServer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.servers = append(r.servers, srv)
}

// Run starts all added servers and blocks until ctx is done, a server fails
// or every server has stopped. Servers are shut down gracefully before Run
// returns.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	servers := append([]HTTPServer(nil), r.servers...)
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, srv := range servers {
		r.runHTTPServer(ctx, srv)
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-r.errCh:
	case <-done:
	}

	cancel()
	<-done

	if err == nil {
		select {
		case err = <-r.errCh:
		default:
		}
	}
	return err
}

// runHTTPServer runs a single HTTPServer in a goroutine and handles graceful shutdown.
func (r *Runner) runHTTPServer(ctx context.Context, srv HTTPServer) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		serverErrCh := make(chan error, 1)
		go func() {
			serverErrCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				r.sendError(err)
			}
		case err := <-serverErrCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				r.sendError(err)
			}
		}
	}()
}

// sendError tries to send the first encountered error to errCh.
func (r *Runner) sendError(err error) {
	select {
	case r.errCh <- err:
	default:
	}
}
