// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv("")
//	input := cfg.Input.Path
//	catalogURL := cfg.Catalog.BaseURL
package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
type Config struct {
	Input         InputConfig         `yaml:"input"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Analysis      AnalysisConfig      `yaml:"analysis"`
	Output        OutputConfig        `yaml:"output"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// InputConfig locates the legacy sales export.
type InputConfig struct {
	Path string `yaml:"path"`
}

// CatalogConfig holds the product catalog API settings.
type CatalogConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Limit          int    `yaml:"limit"`
}

// Timeout returns the catalog request timeout as a duration.
func (c CatalogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AnalysisConfig holds aggregate tuning knobs.
type AnalysisConfig struct {
	TopProducts  int `yaml:"top_products"`
	LowThreshold int `yaml:"low_threshold"`
}

// OutputConfig holds report and enriched-data destinations.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	ReportFile   string `yaml:"report_file"`
	EnrichedFile string `yaml:"enriched_file"`
}

// ServerConfig holds HTTP API settings for serve mode.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${SALES_CATALOG_URL})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() *Config {
	cfg := &Config{
		Input: InputConfig{
			Path: getEnv("SALES_INPUT_PATH", "data/sales_data.txt"),
		},
		Catalog: CatalogConfig{
			BaseURL:        getEnv("SALES_CATALOG_URL", "https://dummyjson.com"),
			TimeoutSeconds: getEnvInt("SALES_CATALOG_TIMEOUT", 10),
			Limit:          getEnvInt("SALES_CATALOG_LIMIT", 100),
		},
		Output: OutputConfig{
			Dir: getEnv("SALES_OUTPUT_DIR", "output"),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("SALES_LOG_LEVEL", "info"),
				Format: getEnv("SALES_LOG_FORMAT", "text"),
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// LoadOrEnv tries the YAML file first and falls back to environment
// variables when it is missing. An empty path means "config.yaml".
func LoadOrEnv(path string) *Config {
	if path == "" {
		path = "config.yaml"
	}
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// applyDefaults fills in anything the file or environment left unset.
func (c *Config) applyDefaults() {
	if c.Input.Path == "" {
		c.Input.Path = "data/sales_data.txt"
	}
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = "https://dummyjson.com"
	}
	if c.Catalog.TimeoutSeconds <= 0 {
		c.Catalog.TimeoutSeconds = 10
	}
	if c.Catalog.Limit <= 0 {
		c.Catalog.Limit = 100
	}
	if c.Analysis.TopProducts <= 0 {
		c.Analysis.TopProducts = 5
	}
	if c.Analysis.LowThreshold <= 0 {
		c.Analysis.LowThreshold = 10
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
	if c.Output.ReportFile == "" {
		c.Output.ReportFile = "sales_report.txt"
	}
	if c.Output.EnrichedFile == "" {
		c.Output.EnrichedFile = "enriched_sales_data.txt"
	}
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "text"
	}
}

// getEnv retrieves an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default.
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}
