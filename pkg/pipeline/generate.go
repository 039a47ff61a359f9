package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/blockfill/pkg/tiling"
)

// Generate runs a tiling session to completion. Cancellation is checked
// between steps; a cancelled run returns ctx.Err() and no tiling.
func Generate(ctx context.Context, opts Options, listeners ...tiling.Listener) (*tiling.Tiling, error) {
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, err
	}

	sessOpts := []tiling.Option{tiling.WithLogger(opts.Logger)}
	for _, l := range listeners {
		sessOpts = append(sessOpts, tiling.WithListener(l))
	}
	s, err := tiling.NewSession(opts.Config(), sessOpts...)
	if err != nil {
		return nil, err
	}

	t, err := s.DrainContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	return t, nil
}
