package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/arbo/memdb"
	"github.com/vocdoni/ec-elgamal/api/client"
	"github.com/vocdoni/ec-elgamal/storage"
)

func TestAPIService(t *testing.T) {
	c := qt.New(t)

	// Setup storage
	kv := memdb.New()
	store := storage.New(kv)
	defer store.Close()

	// Create API service with a random available port
	apiService := NewAPI(store, "127.0.0.1", 0) // Port 0 lets the OS choose an available port

	ctx := context.Background()
	err := apiService.Start(ctx)
	c.Assert(err, qt.IsNil)
	defer apiService.Stop()

	host, port := apiService.HostPort()
	c.Assert(port, qt.Not(qt.Equals), 0)
	cli, err := client.New(fmt.Sprintf("http://%s:%d", host, port))
	c.Assert(err, qt.IsNil)
	_, err = cli.Curves()
	c.Assert(err, qt.IsNil)

	// Test stopping and restarting
	apiService.Stop()
	err = apiService.Start(ctx)
	c.Assert(err, qt.IsNil)

	// Test starting an already running service
	err = apiService.Start(ctx)
	c.Assert(err, qt.ErrorMatches, "service already running")
}

func TestAPIServiceContextCancel(t *testing.T) {
	c := qt.New(t)
	store := storage.New(memdb.New())
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	apiService := NewAPI(store, "127.0.0.1", 0)
	c.Assert(apiService.Start(ctx), qt.IsNil)
	defer apiService.Stop()
	host, port := apiService.HostPort()

	cancel()
	c.Assert(func() bool {
		for range 50 {
			if _, err := client.New(fmt.Sprintf("http://%s:%d", host, port)); err != nil {
				return true
			}
			time.Sleep(100 * time.Millisecond)
		}
		return false
	}(), qt.IsTrue)
}

func TestValidateCurves(t *testing.T) {
	c := qt.New(t)
	c.Assert(ValidateCurves(time.Minute), qt.IsNil)
}
