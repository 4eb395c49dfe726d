package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"recycling/internal/core"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// Backends selectable through DATA_BACKEND.
const (
	BackendLocal  = "local"
	BackendHTTP   = "http"
	BackendS3     = "s3"
	BackendSheets = "sheets"
	BackendSQLite = "sqlite"
)

var validBackends = []string{BackendLocal, BackendHTTP, BackendS3, BackendSheets, BackendSQLite}

type S3 struct {
	Bucket       string `toml:"bucket"`
	Prefix       string `toml:"prefix"`
	Region       string `toml:"region"`
	BaseEndpoint string `toml:"base_endpoint"`
	AccessKey    string `toml:"access_key"`
	SecretKey    string `toml:"secret_key"`
}

type Google struct {
	SpreadsheetID      string `toml:"spreadsheet_id"`
	UsersSheet         string `toml:"users_sheet"`
	TransactionsSheet  string `toml:"transactions_sheet"`
	DropboxesSheet     string `toml:"dropboxes_sheet"`
	ServiceAccountJSON string `toml:"service_account_json"`
	ServiceAccountFile string `toml:"service_account_file"`
}

type Config struct {
	// HTTP server
	Port               string `toml:"port"`
	RateLimitPerMinute int    `toml:"rate_limit_per_minute"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Dataset backend
	DataBackend        string        `toml:"data_backend"`
	DataDir            string        `toml:"data_dir"`
	DataBaseURL        string        `toml:"data_base_url"`
	UsersSource        string        `toml:"users_source"`
	TransactionsSource string        `toml:"transactions_source"`
	DropboxesSource    string        `toml:"dropboxes_source"`
	SQLiteDBPath       string        `toml:"sqlite_db_path"`
	FetchTimeout       time.Duration `toml:"fetch_timeout"`
	S3                 S3            `toml:"s3"`
	Google             Google        `toml:"google"`

	// Reporting
	UnitRate     string `toml:"unit_rate"`
	WindowMonths int    `toml:"window_months"`
	PageSize     int    `toml:"page_size"`
	Timezone     string `toml:"timezone"`

	// Sessions
	ResetPageOnLogin bool          `toml:"reset_page_on_login"`
	ReloadOnSession  bool          `toml:"reload_on_session"`
	SessionTTL       time.Duration `toml:"session_ttl"`
	SessionMax       int           `toml:"session_max"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Port:               "8081",
		RateLimitPerMinute: 60,
		LogLevel:           "info",
		LogFormat:          "text",
		DataBackend:        BackendLocal,
		DataDir:            "./data",
		UsersSource:        "users.csv",
		TransactionsSource: "transactions.csv",
		DropboxesSource:    "dropboxes.csv",
		SQLiteDBPath:       "./data/recycling.db",
		FetchTimeout:       30 * time.Second,
		S3:                 S3{Region: "us-east-1"},
		Google: Google{
			UsersSheet:        "users",
			TransactionsSheet: "transactions",
			DropboxesSheet:    "dropboxes",
		},
		UnitRate:        "0.10",
		WindowMonths:    12,
		PageSize:        10,
		Timezone:        "UTC",
		ReloadOnSession: true,
		SessionTTL:      12 * time.Hour,
		SessionMax:      1000,
	}
}

// Load builds the configuration from defaults, then the TOML file named by
// CONFIG_FILE if set, then environment variables.
func Load() (*Config, error) {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	c.DataBackend = getEnv("DATA_BACKEND", c.DataBackend)
	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.DataBaseURL = getEnv("DATA_BASE_URL", c.DataBaseURL)
	c.UsersSource = getEnv("USERS_SOURCE", c.UsersSource)
	c.TransactionsSource = getEnv("TRANSACTIONS_SOURCE", c.TransactionsSource)
	c.DropboxesSource = getEnv("DROPBOXES_SOURCE", c.DropboxesSource)
	c.SQLiteDBPath = getEnv("SQLITE_DB_PATH", c.SQLiteDBPath)
	c.FetchTimeout = getEnvDuration("FETCH_TIMEOUT", c.FetchTimeout)

	c.S3.Bucket = getEnv("S3_BUCKET", c.S3.Bucket)
	c.S3.Prefix = getEnv("S3_PREFIX", c.S3.Prefix)
	c.S3.Region = getEnv("S3_REGION", c.S3.Region)
	c.S3.BaseEndpoint = getEnv("S3_BASE_ENDPOINT", c.S3.BaseEndpoint)
	c.S3.AccessKey = getEnv("S3_ACCESS_KEY", c.S3.AccessKey)
	c.S3.SecretKey = getEnv("S3_SECRET_KEY", c.S3.SecretKey)

	c.Google.SpreadsheetID = getEnv("GOOGLE_SPREADSHEET_ID", c.Google.SpreadsheetID)
	c.Google.UsersSheet = getEnv("GOOGLE_USERS_SHEET", c.Google.UsersSheet)
	c.Google.TransactionsSheet = getEnv("GOOGLE_TRANSACTIONS_SHEET", c.Google.TransactionsSheet)
	c.Google.DropboxesSheet = getEnv("GOOGLE_DROPBOXES_SHEET", c.Google.DropboxesSheet)
	c.Google.ServiceAccountJSON = getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", c.Google.ServiceAccountJSON)
	c.Google.ServiceAccountFile = getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", c.Google.ServiceAccountFile)

	c.UnitRate = getEnv("UNIT_RATE", c.UnitRate)
	c.WindowMonths = getEnvInt("WINDOW_MONTHS", c.WindowMonths)
	c.PageSize = getEnvInt("PAGE_SIZE", c.PageSize)
	c.Timezone = getEnv("TIMEZONE", c.Timezone)

	c.ResetPageOnLogin = getEnvBool("RESET_PAGE_ON_LOGIN", c.ResetPageOnLogin)
	c.ReloadOnSession = getEnvBool("RELOAD_ON_SESSION", c.ReloadOnSession)
	c.SessionTTL = getEnvDuration("SESSION_TTL", c.SessionTTL)
	c.SessionMax = getEnvInt("SESSION_MAX", c.SessionMax)
}

// Rate returns the parsed per-bottle rate.
func (c *Config) Rate() (decimal.Decimal, error) {
	return core.ParseRate(c.UnitRate)
}

// Location returns the time zone month boundaries are drawn in.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if !slices.Contains(validBackends, c.DataBackend) {
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case BackendLocal:
		if c.DataDir == "" {
			errs = append(errs, "DATA_DIR cannot be empty when using local backend")
		}
	case BackendHTTP:
		if u, err := url.Parse(c.DataBaseURL); err != nil || c.DataBaseURL == "" {
			errs = append(errs, fmt.Sprintf("invalid DATA_BASE_URL '%s': required for http backend", c.DataBaseURL))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, fmt.Sprintf("invalid DATA_BASE_URL scheme '%s': must be 'http' or 'https'", u.Scheme))
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			errs = append(errs, "S3_BUCKET is required when using s3 backend")
		}
		if (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
			errs = append(errs, "S3_ACCESS_KEY and S3_SECRET_KEY must be set together")
		}
	case BackendSheets:
		if c.Google.SpreadsheetID == "" {
			errs = append(errs, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.Google.ServiceAccountFile != "" {
			if _, err := os.Stat(c.Google.ServiceAccountFile); errors.Is(err, os.ErrNotExist) {
				errs = append(errs, fmt.Sprintf("Google service account file does not exist: %s", c.Google.ServiceAccountFile))
			}
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		}
	}

	if c.FetchTimeout < time.Second || c.FetchTimeout > 10*time.Minute {
		errs = append(errs, fmt.Sprintf("invalid fetch timeout %v: must be between 1s and 10m", c.FetchTimeout))
	}
	if _, err := c.Rate(); err != nil {
		errs = append(errs, fmt.Sprintf("invalid unit rate '%s': must be a non-negative decimal", c.UnitRate))
	}
	if c.WindowMonths < 1 || c.WindowMonths > 120 {
		errs = append(errs, fmt.Sprintf("invalid window months %d: must be between 1 and 120", c.WindowMonths))
	}
	if c.PageSize < 1 || c.PageSize > 1000 {
		errs = append(errs, fmt.Sprintf("invalid page size %d: must be between 1 and 1000", c.PageSize))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}
	if c.SessionTTL < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid session ttl %v: must be at least 1 minute", c.SessionTTL))
	}
	if c.SessionMax < 1 {
		errs = append(errs, fmt.Sprintf("invalid session max %d: must be at least 1", c.SessionMax))
	}
	if c.RateLimitPerMinute < 1 {
		errs = append(errs, fmt.Sprintf("invalid rate limit %d: must be at least 1 per minute", c.RateLimitPerMinute))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
