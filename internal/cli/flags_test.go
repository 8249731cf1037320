package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/sales-analytics/internal/infrastructure/config"
)

func testConfig() *config.Config {
	return config.LoadFromEnv()
}

func TestParseAnalyzeFlags(t *testing.T) {
	flags, err := ParseAnalyzeFlags([]string{
		"-input", "data/dec.txt", "-region", "North",
		"-min", "1,000", "-max", "50000",
		"-top", "3", "-no-enrich",
	})

	require.NoError(t, err)
	assert.Equal(t, "data/dec.txt", flags.Input)
	assert.Equal(t, "North", flags.Region)
	assert.Equal(t, "1,000", flags.Min)
	assert.Equal(t, 3, flags.Top)
	assert.True(t, flags.NoEnrich)
}

func TestParseAnalyzeFlags_UnknownFlag(t *testing.T) {
	_, err := ParseAnalyzeFlags([]string{"-bogus"})
	require.Error(t, err)
}

func TestToOptions_FlagsOverrideConfig(t *testing.T) {
	flags := &AnalyzeFlags{
		Input: "custom.txt", Region: "South",
		Min: "1,000", Max: "", Top: 7, NoEnrich: true,
	}

	opts := flags.ToOptions(testConfig())

	assert.Equal(t, "custom.txt", opts.InputPath)
	assert.Equal(t, "South", opts.Filter.Region)
	require.NotNil(t, opts.Filter.MinAmount)
	assert.Equal(t, 1000.0, *opts.Filter.MinAmount)
	assert.Nil(t, opts.Filter.MaxAmount)
	assert.Equal(t, 7, opts.TopN)
	assert.True(t, opts.SkipEnrich)
}

func TestToOptions_ConfigDefaults(t *testing.T) {
	opts := (&AnalyzeFlags{}).ToOptions(testConfig())

	assert.Equal(t, "data/sales_data.txt", opts.InputPath)
	assert.Equal(t, 5, opts.TopN)
	assert.Equal(t, 10, opts.LowThreshold)
	assert.Nil(t, opts.Filter.MinAmount)
	assert.False(t, opts.SkipEnrich)
}

func TestToOptions_InvalidBoundIgnored(t *testing.T) {
	flags := &AnalyzeFlags{Min: "abc"}

	opts := flags.ToOptions(testConfig())

	assert.Nil(t, opts.Filter.MinAmount)
}
