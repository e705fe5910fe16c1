package service

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/vocdoni/ec-elgamal/api"
	"github.com/vocdoni/ec-elgamal/log"
	"github.com/vocdoni/ec-elgamal/storage"
)

// shutdownTimeout bounds the graceful shutdown of the HTTP server.
const shutdownTimeout = 5 * time.Second

// APIService represents a service that manages the HTTP API server.
type APIService struct {
	storage *storage.Storage
	api     *api.API
	mu      sync.Mutex
	cancel  context.CancelFunc
	host    string
	port    int
}

// NewAPI creates a new APIService instance.
func NewAPI(storage *storage.Storage, host string, port int) *APIService {
	return &APIService{
		storage: storage,
		host:    host,
		port:    port,
	}
}

// Start begins the API server. It returns an error if the service
// is already running or if it fails to start. The server is stopped when ctx
// is canceled or Stop is called.
func (as *APIService) Start(ctx context.Context) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.cancel != nil {
		return fmt.Errorf("service already running")
	}

	// Create API instance with existing storage
	a, err := api.New(&api.APIConfig{
		Host:    as.host,
		Port:    as.port,
		Storage: as.storage,
	})
	if err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}
	as.api = a

	var runCtx context.Context
	runCtx, as.cancel = context.WithCancel(ctx)
	go func() {
		<-runCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Close(shutdownCtx); err != nil {
			log.Warnw("API server shutdown failed", "error", err)
		}
	}()
	return nil
}

// Stop halts the API server. The storage is left open; it belongs to the
// caller.
func (as *APIService) Stop() {
	as.mu.Lock()
	defer as.mu.Unlock()

	if as.cancel != nil {
		as.cancel()
		as.cancel = nil
	}
	if as.api != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := as.api.Close(shutdownCtx); err != nil {
			log.Warnw("API server shutdown failed", "error", err)
		}
		as.api = nil
	}
}

// HostPort returns the host and port of the API server. While running, the
// port is the one actually bound, which differs from the configured one when
// that was zero.
func (as *APIService) HostPort() (string, int) {
	as.mu.Lock()
	defer as.mu.Unlock()
	if as.api != nil {
		if host, port, err := net.SplitHostPort(as.api.Addr().String()); err == nil {
			if p, err := strconv.Atoi(port); err == nil {
				return host, p
			}
		}
	}
	return as.host, as.port
}
