package config

import (
	"fmt"
	"os"
	"time"

	"github.com/dvloznov/foldtx/internal/domain"
	"google.golang.org/api/option"
)

// Config holds all settings of a transform run.
type Config struct {
	Input     string // local CSV path, gs://bucket/object.csv or bq://project.dataset.table
	OutputDir string // local directory or gs://bucket/prefix
	Timezone  string // IANA zone output dates are rendered in
	Since     string // optional YYYY-MM-DD cutoff
	LogLevel  string

	BigQuery BigQueryConfig
	GCP      GCPConfig
}

// BigQueryConfig holds settings for bq:// sources.
type BigQueryConfig struct {
	Project string // billing project, empty means the table's own project
}

// GCPConfig holds Google Cloud client settings.
type GCPConfig struct {
	CredentialsFile string // empty means Application Default Credentials
}

// Load loads configuration from environment variables with default values
func Load() *Config {
	return &Config{
		Input:     getEnv("FOLDTX_INPUT", ""),
		OutputDir: getEnv("FOLDTX_OUTPUT_DIR", domain.DefaultOutputDir),
		Timezone:  getEnv("FOLDTX_TIMEZONE", domain.DefaultTimezone),
		Since:     getEnv("FOLDTX_SINCE", ""),
		LogLevel:  getEnv("FOLDTX_LOG_LEVEL", "info"),
		BigQuery: BigQueryConfig{
			Project: getEnv("FOLDTX_BQ_PROJECT", ""),
		},
		GCP: GCPConfig{
			CredentialsFile: getEnv("FOLDTX_CREDENTIALS_FILE", ""),
		},
	}
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ClientOptions returns the options used for every Google Cloud client.
func (c *Config) ClientOptions() []option.ClientOption {
	var opts []option.ClientOption
	if c.GCP.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.GCP.CredentialsFile))
	}
	return opts
}

// getEnv retrieves an environment variable or returns a default value if not set
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
