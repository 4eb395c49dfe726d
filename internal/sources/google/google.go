// Package google reads datasets from tabs of a Google Sheets spreadsheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"recycling/internal/sources"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Config identifies the spreadsheet and how to authenticate. Sheets maps
// each dataset to its tab name.
type Config struct {
	SpreadsheetID      string
	ServiceAccountJSON string
	ServiceAccountFile string
	Sheets             sources.Locations
}

// DefaultSheets returns the tab names "users", "transactions" and "dropboxes".
func DefaultSheets() sources.Locations {
	return sources.Locations{
		sources.Users:        "users",
		sources.Transactions: "transactions",
		sources.Dropboxes:    "dropboxes",
	}
}

type valuesFetcher func(ctx context.Context, rng string) ([][]interface{}, error)

type Client struct {
	fetch  valuesFetcher
	sheets sources.Locations
}

var _ sources.Source = (*Client)(nil)

// New creates a read-only Sheets client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	id := cfg.SpreadsheetID
	fetch := func(ctx context.Context, rng string) ([][]interface{}, error) {
		resp, err := svc.Spreadsheets.Values.Get(id, rng).Context(ctx).Do()
		if err != nil {
			return nil, err
		}
		return resp.Values, nil
	}
	return newWithFetcher(fetch, cfg.Sheets), nil
}

func newWithFetcher(fetch valuesFetcher, sheets sources.Locations) *Client {
	if sheets == nil {
		sheets = DefaultSheets()
	}
	return &Client{fetch: fetch, sheets: sheets}
}

// newSheetsService authenticates with a service account taken from inline
// JSON, a file, or GOOGLE_APPLICATION_CREDENTIALS, in that order.
func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	credsJSON := strings.TrimSpace(cfg.ServiceAccountJSON)
	credsFile := strings.TrimSpace(cfg.ServiceAccountFile)
	if credsJSON == "" && credsFile == "" {
		credsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var creds []byte
	switch {
	case credsJSON != "":
		creds = []byte(credsJSON)
	case credsFile != "":
		b, err := os.ReadFile(credsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		creds = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	slog.DebugContext(ctx, "Creating Google Sheets service",
		"credentials_size", len(creds),
		"scope", gsheet.SpreadsheetsReadonlyScope)

	return gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
}

// Rows reads the whole tab backing ds.
func (c *Client) Rows(ctx context.Context, ds sources.Dataset) ([][]string, error) {
	sheet, err := c.sheets.Lookup(ds)
	if err != nil {
		return nil, err
	}
	values, err := c.fetch(ctx, sheetRange(sheet))
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return parseValues(values), nil
}
