// Package local reads datasets from delimited files in a directory.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"recycling/internal/sources"
)

type Store struct {
	base  string
	names sources.Locations
}

var _ sources.Source = (*Store)(nil)

// New returns a store reading base/<name> for each dataset. A nil names
// map selects sources.DefaultLocations.
func New(base string, names sources.Locations) *Store {
	if names == nil {
		names = sources.DefaultLocations()
	}
	return &Store{base: base, names: names}
}

// Rows reads and splits the file backing ds.
func (s *Store) Rows(ctx context.Context, ds sources.Dataset) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := s.names.Lookup(ds)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filepath.Join(s.base, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ds, err)
	}
	return sources.SplitTable(string(b)), nil
}
