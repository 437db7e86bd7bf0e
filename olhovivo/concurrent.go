package olhovivo

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of sessions VehiclesByLines opens at once
const DefaultConcurrency = 4

// ClientFactory opens a new, independently authenticated session
type ClientFactory func(ctx context.Context) (*Client, error)

// SessionFactory returns a ClientFactory that logs in with cfg on every call
func SessionFactory(cfg Config, logger zerolog.Logger, opts ...Option) ClientFactory {
	return func(ctx context.Context) (*Client, error) {
		return NewClientContext(ctx, cfg, logger, opts...)
	}
}

// VehiclesByLines fetches the vehicles of several lines concurrently. Sessions
// are never shared: every line is queried through its own client from newSession.
// All codes are validated before any session is opened.
func VehiclesByLines(ctx context.Context, newSession ClientFactory, lineCodes []string, limit int) (map[string]*LineVehicles, error) {
	results := make(map[string]*LineVehicles, len(lineCodes))
	if len(lineCodes) == 0 {
		return results, nil
	}

	for _, code := range lineCodes {
		if _, err := codeParams("codigoLinha", code); err != nil {
			return nil, err
		}
	}

	if limit <= 0 {
		limit = DefaultConcurrency
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex

	for _, code := range lineCodes {
		code := code
		g.Go(func() error {
			client, err := newSession(ctx)
			if err != nil {
				return fmt.Errorf("failed to open session for line %s: %w", code, err)
			}

			vehicles, err := client.VehiclesByLine(ctx, code)
			if err != nil {
				return err
			}

			mu.Lock()
			results[code] = vehicles
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
