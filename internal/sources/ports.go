package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// MaxDatasetBytes bounds a single dataset download.
const MaxDatasetBytes = 64 << 20

// Dataset names one of the three tables the dashboard reads.
type Dataset string

const (
	Users        Dataset = "users"
	Transactions Dataset = "transactions"
	Dropboxes    Dataset = "dropboxes"
)

// All lists every dataset in load order.
var All = []Dataset{Users, Transactions, Dropboxes}

var (
	ErrUnknownDataset   = errors.New("unknown dataset")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrTooLarge         = errors.New("dataset too large")
)

// Source yields the data rows of a dataset with the header row removed.
// Fields are returned as strings exactly as stored, except that a trailing
// carriage return on a line is dropped.
type Source interface {
	Rows(ctx context.Context, ds Dataset) ([][]string, error)
}

// Locations maps each dataset to a backend-specific name: a file name,
// an object key suffix or a sheet tab.
type Locations map[Dataset]string

// DefaultLocations returns users.csv, transactions.csv and dropboxes.csv.
func DefaultLocations() Locations {
	return Locations{
		Users:        "users.csv",
		Transactions: "transactions.csv",
		Dropboxes:    "dropboxes.csv",
	}
}

// Lookup returns the location for ds.
func (l Locations) Lookup(ds Dataset) (string, error) {
	name, ok := l[ds]
	if !ok || name == "" {
		return "", fmt.Errorf("%w: %q", ErrUnknownDataset, ds)
	}
	return name, nil
}

// ReadLimited reads all of r. A body longer than max is an error rather
// than a truncated table.
func ReadLimited(r io.Reader, ds Dataset, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ds, err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, ds, max)
	}
	return b, nil
}
