package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vocdoni/ec-elgamal/log"
	stg "github.com/vocdoni/ec-elgamal/storage"
)

// APIConfig type represents the configuration for the API HTTP server.
// It includes the host, port and the storage instance used for keys and
// ciphertexts.
type APIConfig struct {
	Host    string
	Port    int
	Storage *stg.Storage
}

// API type represents the API HTTP server.
type API struct {
	router  *chi.Mux
	storage *stg.Storage
	server  *http.Server
	addr    net.Addr
}

// New creates a new API instance with the given configuration and starts
// serving in the background. A zero port lets the OS choose one; Addr
// returns the address actually bound.
func New(conf *APIConfig) (*API, error) {
	if conf == nil {
		return nil, fmt.Errorf("missing API configuration")
	}
	if conf.Storage == nil {
		return nil, fmt.Errorf("missing storage instance")
	}
	a := &API{
		storage: conf.Storage,
	}

	// Initialize router
	a.initRouter()
	ln, err := net.Listen("tcp", net.JoinHostPort(conf.Host, fmt.Sprint(conf.Port)))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}
	a.addr = ln.Addr()
	a.server = &http.Server{
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infow("Starting API server", "addr", a.addr.String())
		if err := a.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Errorw(err, "API server stopped")
		}
	}()
	return a, nil
}

// Router returns the chi router for testing purposes
func (a *API) Router() *chi.Mux {
	return a.router
}

// Addr returns the address the server listens on.
func (a *API) Addr() net.Addr {
	return a.addr
}

// Close gracefully shuts the HTTP server down.
func (a *API) Close(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// registerHandlers registers all the API handlers.
func (a *API) registerHandlers() {
	log.Infow("register handler", "endpoint", PingEndpoint, "method", "GET")
	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})
	log.Infow("register handler", "endpoint", CurvesEndpoint, "method", "GET")
	a.router.Get(CurvesEndpoint, a.curves)
	log.Infow("register handler", "endpoint", KeysEndpoint, "method", "POST")
	a.router.Post(KeysEndpoint, a.newKey)
	log.Infow("register handler", "endpoint", KeyEndpoint, "method", "GET")
	a.router.Get(KeyEndpoint, a.key)
	log.Infow("register handler", "endpoint", KeyEndpoint, "method", "DELETE")
	a.router.Delete(KeyEndpoint, a.deleteKey)
	log.Infow("register handler", "endpoint", EncryptEndpoint, "method", "POST")
	a.router.Post(EncryptEndpoint, a.encrypt)
	log.Infow("register handler", "endpoint", DecryptEndpoint, "method", "POST")
	a.router.Post(DecryptEndpoint, a.decrypt)
	log.Infow("register handler", "endpoint", CiphertextEndpoint, "method", "GET")
	a.router.Get(CiphertextEndpoint, a.ciphertext)
	log.Infow("register handler", "endpoint", CiphertextEndpoint, "method", "DELETE")
	a.router.Delete(CiphertextEndpoint, a.deleteCiphertext)

	a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		ErrResourceNotFound.Withf("%s %s", r.Method, r.URL.Path).Write(w)
	})
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	// Create the router with a basic middleware stack
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Throttle(100))
	a.router.Use(middleware.ThrottleBacklog(5000, 40000, 60*time.Second))
	a.router.Use(middleware.Timeout(45 * time.Second))

	// Register the API handlers
	a.registerHandlers()
}
