package backend

import (
	"context"

	"recycling/internal/config"
	"recycling/internal/sources"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result is a constructed dataset source with its cleanup.
type Result struct {
	Source  sources.Source
	Cleanup CleanupFunc
}

// Close runs Cleanup if set.
func (r *Result) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates dataset sources from configuration.
type Factory interface {
	CreateBackend(ctx context.Context, cfg *config.Config) (*Result, error)
}
