package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	path := writeConfig(t, `
input:
  path: data/december.txt
catalog:
  base_url: https://dummyjson.com
  timeout_seconds: 5
  limit: 50
analysis:
  top_products: 3
  low_threshold: 7
observability:
  logging:
    level: debug
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "data/december.txt", cfg.Input.Path)
	assert.Equal(t, "https://dummyjson.com", cfg.Catalog.BaseURL)
	assert.Equal(t, 5, cfg.Catalog.TimeoutSeconds)
	assert.Equal(t, 50, cfg.Catalog.Limit)
	assert.Equal(t, 3, cfg.Analysis.TopProducts)
	assert.Equal(t, 7, cfg.Analysis.LowThreshold)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
}

func TestLoad_ExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("SALES_TEST_CATALOG", "http://catalog.internal:9000")
	path := writeConfig(t, `
catalog:
  base_url: ${SALES_TEST_CATALOG}
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "http://catalog.internal:9000", cfg.Catalog.BaseURL)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
input:
  path: data/sales.txt
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Analysis.TopProducts)
	assert.Equal(t, 10, cfg.Analysis.LowThreshold)
	assert.Equal(t, 100, cfg.Catalog.Limit)
	assert.Equal(t, "output", cfg.Output.Dir)
	assert.Equal(t, "sales_report.txt", cfg.Output.ReportFile)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SALES_INPUT_PATH", "env/sales.txt")
	t.Setenv("SALES_CATALOG_URL", "http://localhost:4010")
	t.Setenv("SALES_CATALOG_TIMEOUT", "3")

	cfg := LoadFromEnv()

	assert.Equal(t, "env/sales.txt", cfg.Input.Path)
	assert.Equal(t, "http://localhost:4010", cfg.Catalog.BaseURL)
	assert.Equal(t, 3, cfg.Catalog.TimeoutSeconds)
}

func TestLoadOrEnv_FallsBackWhenFileMissing(t *testing.T) {
	cfg := LoadOrEnv(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.NotNil(t, cfg)
	assert.Equal(t, "https://dummyjson.com", cfg.Catalog.BaseURL)
}
