package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "memory" },
			wantErr:     true,
			errorString: "invalid data backend 'memory': must be one of [local http s3 sheets sqlite]",
		},
		{
			name: "http backend missing url",
			mutate: func(c *Config) {
				c.DataBackend = BackendHTTP
			},
			wantErr:     true,
			errorString: "required for http backend",
		},
		{
			name: "http backend bad scheme",
			mutate: func(c *Config) {
				c.DataBackend = BackendHTTP
				c.DataBaseURL = "ftp://files.example.com"
			},
			wantErr:     true,
			errorString: "must be 'http' or 'https'",
		},
		{
			name: "valid http backend",
			mutate: func(c *Config) {
				c.DataBackend = BackendHTTP
				c.DataBaseURL = "https://files.example.com/recycling"
			},
		},
		{
			name: "s3 backend missing bucket",
			mutate: func(c *Config) {
				c.DataBackend = BackendS3
			},
			wantErr:     true,
			errorString: "S3_BUCKET is required",
		},
		{
			name: "s3 backend half credentials",
			mutate: func(c *Config) {
				c.DataBackend = BackendS3
				c.S3.Bucket = "recycling"
				c.S3.AccessKey = "minio"
			},
			wantErr:     true,
			errorString: "must be set together",
		},
		{
			name: "sheets backend missing spreadsheet",
			mutate: func(c *Config) {
				c.DataBackend = BackendSheets
			},
			wantErr:     true,
			errorString: "Google Spreadsheet ID is required",
		},
		{
			name: "sqlite backend missing path",
			mutate: func(c *Config) {
				c.DataBackend = BackendSQLite
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "negative unit rate",
			mutate:      func(c *Config) { c.UnitRate = "-0.1" },
			wantErr:     true,
			errorString: "invalid unit rate '-0.1'",
		},
		{
			name:        "zero window",
			mutate:      func(c *Config) { c.WindowMonths = 0 },
			wantErr:     true,
			errorString: "invalid window months 0",
		},
		{
			name:        "unknown timezone",
			mutate:      func(c *Config) { c.Timezone = "Mars/Olympus" },
			wantErr:     true,
			errorString: "invalid timezone 'Mars/Olympus'",
		},
		{
			name:        "short session ttl",
			mutate:      func(c *Config) { c.SessionTTL = time.Second },
			wantErr:     true,
			errorString: "invalid session ttl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Port = "0"
	cfg.PageSize = 0
	cfg.SessionMax = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if n := strings.Count(err.Error(), "\n- "); n != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", n, err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("UNIT_RATE", "0.25")
	t.Setenv("WINDOW_MONTHS", "6")
	t.Setenv("RELOAD_ON_SESSION", "false")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("S3_BUCKET", "bottles")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.DataBackend != BackendSQLite {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.WindowMonths != 6 || cfg.ReloadOnSession || cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("typed env not applied: %+v", cfg)
	}
	rate, err := cfg.Rate()
	if err != nil || rate.String() != "0.25" {
		t.Fatalf("unexpected rate %v err=%v", rate, err)
	}
	if cfg.S3.Bucket != "bottles" {
		t.Fatalf("nested env not applied: %+v", cfg.S3)
	}
}

func TestLoad_InvalidEnvKeepsDefault(t *testing.T) {
	t.Setenv("PAGE_SIZE", "ten")
	t.Setenv("RESET_PAGE_ON_LOGIN", "maybe")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PageSize != 10 || cfg.ResetPageOnLogin {
		t.Fatalf("expected defaults, got page=%d reset=%v", cfg.PageSize, cfg.ResetPageOnLogin)
	}
}

func TestLoad_TOMLFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recycling.toml")
	content := `
port = "7000"
data_backend = "s3"
fetch_timeout = "45s"
unit_rate = "0.05"

[s3]
bucket = "from-file"
prefix = "exports/"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7001" {
		t.Fatalf("env should win over file, got %s", cfg.Port)
	}
	if cfg.DataBackend != BackendS3 || cfg.S3.Bucket != "from-file" || cfg.S3.Prefix != "exports/" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.FetchTimeout != 45*time.Second || cfg.UnitRate != "0.05" {
		t.Fatalf("typed file values not applied: %+v", cfg)
	}
	if cfg.S3.Region != "us-east-1" {
		t.Fatalf("defaults should survive partial file, got %q", cfg.S3.Region)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestLoad_BadTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("port = "), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLocation(t *testing.T) {
	cfg := Defaults()
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Fatalf("expected UTC, got %v err=%v", loc, err)
	}
	cfg.Timezone = ""
	if loc, _ := cfg.Location(); loc != time.UTC {
		t.Fatalf("empty timezone should be UTC, got %v", loc)
	}
}
