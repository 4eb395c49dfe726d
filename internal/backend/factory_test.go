package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"recycling/internal/config"
	"recycling/internal/sources"
	"recycling/internal/sources/local"
	"recycling/internal/sources/web"
)

func TestCreateLocalBackend(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "users.csv"), []byte("UserID,Name,Email,Phone,Role\nU1,Ann,a@x,555,participant\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Defaults()
	cfg.DataDir = dir

	res, err := NewFactory(nil).CreateBackend(context.Background(), cfg)
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	defer res.Close()

	if _, ok := res.Source.(*local.Store); !ok {
		t.Fatalf("source type = %T, want *local.Store", res.Source)
	}
	rows, err := res.Source.Rows(context.Background(), sources.Users)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "U1" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestCreateHTTPBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.DataBackend = config.BackendHTTP
	cfg.DataBaseURL = "https://data.example.com/export"

	res, err := NewFactory(nil).CreateBackend(context.Background(), cfg)
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	if _, ok := res.Source.(*web.Client); !ok {
		t.Fatalf("source type = %T, want *web.Client", res.Source)
	}
	if res.Cleanup != nil {
		t.Fatal("http backend should need no cleanup")
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.DataBackend = config.BackendSQLite
	cfg.SQLiteDBPath = filepath.Join(t.TempDir(), "recycling.db")

	res, err := NewFactory(nil).CreateBackend(context.Background(), cfg)
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	if res.Cleanup == nil {
		t.Fatal("sqlite backend should close its database")
	}
	if err := res.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestCreateUnknownBackend(t *testing.T) {
	cfg := config.Defaults()
	cfg.DataBackend = "memory"
	if _, err := NewFactory(nil).CreateBackend(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestLocations(t *testing.T) {
	cfg := config.Defaults()
	cfg.TransactionsSource = "tx.csv"
	names := Locations(cfg)
	if names[sources.Users] != "users.csv" || names[sources.Transactions] != "tx.csv" {
		t.Fatalf("names = %v", names)
	}
}
