package dataset

import (
	"context"
	"time"

	"recycling/internal/core"
	"recycling/internal/log"
	"recycling/internal/sources"

	"golang.org/x/sync/errgroup"
)

// DefaultFetchTimeout bounds one full load of all datasets.
const DefaultFetchTimeout = 30 * time.Second

// Snapshot is an immutable set of parsed datasets.
type Snapshot struct {
	Users        []core.User
	Dropboxes    []core.Dropbox
	Transactions []core.Transaction
	LoadedAt     time.Time
	// Failed lists datasets that could not be fetched and were left empty.
	Failed []sources.Dataset
}

// Loaded reports whether the snapshot came from a completed load.
func (s *Snapshot) Loaded() bool {
	return s != nil && !s.LoadedAt.IsZero()
}

type LoaderConfig struct {
	Timeout  time.Duration
	Location *time.Location
}

type Loader struct {
	source   sources.Source
	timeout  time.Duration
	location *time.Location
	log      *log.StructuredLogger
	now      func() time.Time
}

func NewLoader(src sources.Source, cfg LoaderConfig, logger *log.Logger) *Loader {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultFetchTimeout
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Loader{
		source:   src,
		timeout:  cfg.Timeout,
		location: cfg.Location,
		log:      log.NewStructuredLogger(logger),
		now:      time.Now,
	}
}

// Load fetches the three datasets concurrently and parses them. A dataset
// that fails to fetch is logged and treated as empty; Load itself never
// fails.
func (l *Loader) Load(ctx context.Context) *Snapshot {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	raw := make(map[sources.Dataset][][]string, len(sources.All))
	results := make([][][]string, len(sources.All))
	errs := make([]error, len(sources.All))

	// Every fetch runs to completion; errs keeps each failure per dataset
	// and Wait reports the first one.
	var g errgroup.Group
	for i, ds := range sources.All {
		g.Go(func() error {
			results[i], errs[i] = l.fetch(ctx, ds)
			return errs[i]
		})
	}
	if err := g.Wait(); err != nil {
		l.log.LogError(ctx, "Dataset load incomplete", err, log.ComponentLoader, log.OpLoad, nil)
	}

	snap := &Snapshot{}
	for i, ds := range sources.All {
		if errs[i] != nil {
			snap.Failed = append(snap.Failed, ds)
			continue
		}
		raw[ds] = results[i]
	}
	snap.Users = ParseUsers(raw[sources.Users])
	snap.Dropboxes = ParseDropboxes(raw[sources.Dropboxes])
	snap.Transactions = ParseTransactions(raw[sources.Transactions], l.location)
	snap.LoadedAt = l.now()
	return snap
}

func (l *Loader) fetch(ctx context.Context, ds sources.Dataset) ([][]string, error) {
	start := time.Now()
	rows, err := l.source.Rows(ctx, ds)
	l.log.LogDataset(ctx, string(ds), len(rows), time.Since(start), err)
	return rows, err
}
