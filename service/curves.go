package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vocdoni/ec-elgamal/crypto/ecc/curves"
	"github.com/vocdoni/ec-elgamal/log"
	"golang.org/x/sync/errgroup"
)

// ValidateCurves checks the parameters of every registered curve
// concurrently: prime modulus, non-singular equation, generator on the curve
// and of order n.
func ValidateCurves(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for _, name := range curves.Supported() {
		g.Go(func() error {
			c, err := curves.New(name)
			if err != nil {
				return err
			}
			done := make(chan error, 1)
			go func() { done <- c.Validate() }()
			select {
			case err := <-done:
				if err != nil {
					return fmt.Errorf("curve %s: %w", name, err)
				}
				log.Debugw("curve validated", "curve", name)
				return nil
			case <-ctx.Done():
				return fmt.Errorf("curve %s: %w", name, ctx.Err())
			}
		})
	}
	return g.Wait()
}
