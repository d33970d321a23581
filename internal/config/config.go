package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Backend names accepted by DATA_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	// Database
	SQLiteDBPath string `mapstructure:"sqlite_db_path"`

	// Backend selection
	DataBackend string `mapstructure:"data_backend"`

	// Logging
	LogLevel string `mapstructure:"log_level"`

	// CLI
	ListLimit int `mapstructure:"list_limit"`

	// AMQP, disabled when the URL is empty
	AMQPURL      string `mapstructure:"amqp_url"`
	AMQPExchange string `mapstructure:"amqp_exchange"`
	AMQPQueue    string `mapstructure:"amqp_queue"`

	// Google Sheets mirror, used by the worker
	GoogleSpreadsheetID      string `mapstructure:"google_spreadsheet_id"`
	GoogleSheetName          string `mapstructure:"google_sheet_name"`
	GoogleServiceAccountFile string `mapstructure:"google_service_account_file"`
	GoogleServiceAccountJSON string `mapstructure:"google_service_account_json"`
}

var defaults = map[string]any{
	"sqlite_db_path":              "./data/budget.db",
	"data_backend":                BackendSQLite,
	"log_level":                   "info",
	"list_limit":                  50,
	"amqp_url":                    "",
	"amqp_exchange":               "budget",
	"amqp_queue":                  "transactions_recorded",
	"google_spreadsheet_id":       "",
	"google_sheet_name":           "Transactions",
	"google_service_account_file": "",
	"google_service_account_json": "",
}

// Load reads configuration from defaults, the optional file at path and the
// environment, in increasing order of precedence. Each key is read from the
// upper-cased environment variable of the same name.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DataBackend = strings.ToLower(strings.TrimSpace(cfg.DataBackend))
	return &cfg, nil
}

// AMQPEnabled reports whether events should be published.
func (c *Config) AMQPEnabled() bool {
	return strings.TrimSpace(c.AMQPURL) != ""
}

// SheetsEnabled reports whether the Sheets mirror is configured.
func (c *Config) SheetsEnabled() bool {
	return strings.TrimSpace(c.GoogleSpreadsheetID) != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate data backend
	validBackends := []string{BackendMemory, BackendSQLite}
	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == BackendSQLite && strings.TrimSpace(c.SQLiteDBPath) == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.ListLimit < 1 {
		errors = append(errors, fmt.Sprintf("invalid list limit %d: must be at least 1", c.ListLimit))
	}

	// Validate AMQP URL if provided
	if c.AMQPEnabled() {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate Google Sheets configuration if the mirror is enabled
	if c.SheetsEnabled() {
		if c.GoogleServiceAccountFile == "" && c.GoogleServiceAccountJSON == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE or GOOGLE_SERVICE_ACCOUNT_JSON must be provided when GOOGLE_SPREADSHEET_ID is set")
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// ValidateWorker checks the settings the sync worker needs on top of Validate.
func (c *Config) ValidateWorker() error {
	if err := c.Validate(); err != nil {
		return err
	}

	var errors []string
	if !c.AMQPEnabled() {
		errors = append(errors, "AMQP_URL is required by the worker")
	}
	if !c.SheetsEnabled() {
		errors = append(errors, "GOOGLE_SPREADSHEET_ID is required by the worker")
	}
	if c.DataBackend != BackendSQLite {
		errors = append(errors, "the worker requires the sqlite backend")
	}
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}
