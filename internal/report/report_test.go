package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/sales-analytics/internal/analytics"
	"github.com/retailops/sales-analytics/internal/application/pipeline"
	"github.com/retailops/sales-analytics/internal/domain/validator"
	"github.com/retailops/sales-analytics/internal/enrich"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		RunID:       "run-123",
		GeneratedAt: time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC),
		FilterSummary: validator.FilterSummary{
			TotalInput: 10, Invalid: 1, FilteredByRegion: 2, FinalCount: 7,
		},
		TotalRevenue: 143000,
		RegionStats: []analytics.RegionStat{
			{Region: "North", TotalSales: 135000, TransactionCount: 4, Percentage: 94.41},
			{Region: "South", TotalSales: 8000, TransactionCount: 3, Percentage: 5.59},
		},
		TopProducts: []analytics.ProductStat{
			{Name: "Mouse", Quantity: 7, Revenue: 3500},
			{Name: "Laptop", Quantity: 3, Revenue: 135000},
		},
		LowPerformers: []analytics.ProductStat{
			{Name: "Webcam", Quantity: 2, Revenue: 4000},
		},
		CustomerStats: []analytics.CustomerStat{
			{CustomerID: "C001", TotalSpent: 135000, PurchaseCount: 3, AvgOrderValue: 45000},
		},
		DailyTrend: []analytics.DayStat{
			{Date: "2024-12-01", Revenue: 92500, TransactionCount: 4, UniqueCustomers: 3},
			{Date: "2024-12-02", Revenue: 50500, TransactionCount: 3, UniqueCustomers: 2},
		},
		PeakDay: analytics.PeakDay{Date: "2024-12-01", Revenue: 92500, TransactionCount: 4},
		EnrichSummary: enrich.Summary{
			Total: 7, Matched: 5, Unmatched: 2, MatchRate: 71.4,
			UnmatchedProducts: []string{"P900", "P901"},
		},
	}
}

func TestWrite_SectionsInOrder(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Write(&b, sampleResult()))
	out := b.String()

	sections := []string{
		"SALES ANALYTICS REPORT",
		"OVERALL SUMMARY",
		"REGION-WISE PERFORMANCE",
		"TOP 2 PRODUCTS",
		"TOP CUSTOMERS",
		"DAILY SALES TREND",
		"PERFORMANCE ANALYSIS",
		"CATALOG ENRICHMENT",
	}

	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", s)
		assert.Greater(t, idx, last, "section %q out of order", s)
		last = idx
	}
}

func TestWrite_Content(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Write(&b, sampleResult()))
	out := b.String()

	assert.Contains(t, out, "run-123")
	assert.Contains(t, out, "143000.00")
	assert.Contains(t, out, "North")
	assert.Contains(t, out, "94.41")
	assert.Contains(t, out, "Peak Sales Day: 2024-12-01")
	assert.Contains(t, out, "Date Range:         2024-12-01 to 2024-12-02")
	assert.Contains(t, out, "Matched:    5 of 7 (71.4%)")
	assert.Contains(t, out, "P900, P901")
	assert.Contains(t, out, "Webcam")
}

func TestWrite_EmptyRun(t *testing.T) {
	res := &pipeline.Result{
		RunID:       "run-empty",
		GeneratedAt: time.Now(),
	}

	var b strings.Builder
	require.NoError(t, Write(&b, res))

	out := b.String()
	assert.Contains(t, out, "Peak Sales Day: no data")
	assert.Contains(t, out, "Low Performers: none")
}
