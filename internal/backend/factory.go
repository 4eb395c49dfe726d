package backend

import (
	"context"
	"fmt"

	"recycling/internal/config"
	"recycling/internal/log"
	"recycling/internal/sources"
	"recycling/internal/sources/bucket"
	gsheet "recycling/internal/sources/google"
	"recycling/internal/sources/local"
	"recycling/internal/sources/sqlite"
	"recycling/internal/sources/web"
)

// DefaultFactory builds the backend named by Config.DataBackend.
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.Discard()
	}
	return &DefaultFactory{logger: logger.WithComponent(log.ComponentSources)}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, cfg *config.Config) (*Result, error) {
	names := Locations(cfg)

	switch cfg.DataBackend {
	case config.BackendLocal:
		f.logger.Info("Initialized local backend", "data_directory", cfg.DataDir)
		return &Result{Source: local.New(cfg.DataDir, names)}, nil

	case config.BackendHTTP:
		f.logger.Info("Initialized http backend", "base_url", cfg.DataBaseURL)
		return &Result{Source: web.New(cfg.DataBaseURL, names, web.NewHTTPClient(cfg.FetchTimeout))}, nil

	case config.BackendS3:
		st, err := bucket.New(ctx, bucket.Config{
			Bucket:       cfg.S3.Bucket,
			Prefix:       cfg.S3.Prefix,
			Region:       cfg.S3.Region,
			BaseEndpoint: cfg.S3.BaseEndpoint,
			AccessKey:    cfg.S3.AccessKey,
			SecretKey:    cfg.S3.SecretKey,
		}, names)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize s3 backend: %w", err)
		}
		f.logger.Info("Initialized s3 backend", "bucket", cfg.S3.Bucket, "prefix", cfg.S3.Prefix)
		return &Result{Source: st}, nil

	case config.BackendSheets:
		cli, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:      cfg.Google.SpreadsheetID,
			ServiceAccountJSON: cfg.Google.ServiceAccountJSON,
			ServiceAccountFile: cfg.Google.ServiceAccountFile,
			Sheets: sources.Locations{
				sources.Users:        cfg.Google.UsersSheet,
				sources.Transactions: cfg.Google.TransactionsSheet,
				sources.Dropboxes:    cfg.Google.DropboxesSheet,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		f.logger.Info("Initialized Google Sheets backend", "spreadsheet_id", cfg.Google.SpreadsheetID)
		return &Result{Source: cli}, nil

	case config.BackendSQLite:
		st, err := sqlite.Open(ctx, cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite backend: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Source: st, Cleanup: st.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.DataBackend)
	}
}

// Locations maps each dataset to the configured file name or key suffix.
func Locations(cfg *config.Config) sources.Locations {
	return sources.Locations{
		sources.Users:        cfg.UsersSource,
		sources.Transactions: cfg.TransactionsSource,
		sources.Dropboxes:    cfg.DropboxesSource,
	}
}
