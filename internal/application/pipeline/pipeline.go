// Package pipeline orchestrates a full analysis run: read the sales
// export, parse, validate and filter, aggregate, and enrich against the
// product catalog.
//
// Stages run strictly in order over materialized slices. Per-record
// problems (bad lines, invalid records, unmatched products) are counted
// and carried in the Result; the only condition that stops a run early
// is an admitted set that is empty after validation, since every
// aggregate is defined but useless on an empty set.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/retailops/sales-analytics/internal/analytics"
	"github.com/retailops/sales-analytics/internal/catalog"
	"github.com/retailops/sales-analytics/internal/domain"
	"github.com/retailops/sales-analytics/internal/domain/validator"
	"github.com/retailops/sales-analytics/internal/enrich"
	"github.com/retailops/sales-analytics/internal/ingest"
)

// ErrNoTransactions is returned when validation admits nothing; there
// is no meaningful analysis to run.
var ErrNoTransactions = errors.New("no valid transactions after validation")

// CatalogSource supplies product entries for enrichment. The real
// implementation is the catalog HTTP client; tests substitute a stub.
type CatalogSource interface {
	FetchProducts(ctx context.Context) []catalog.Entry
}

// Options configures one analysis run.
type Options struct {
	InputPath    string
	Filter       validator.Params
	TopN         int
	LowThreshold int
	SkipEnrich   bool
}

// Result is everything one run produced, consumed by the CLI output,
// the report writer, and the API layer.
type Result struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	ParseStats    ingest.ParseStats       `json:"-"`
	Rejects       []validator.Report      `json:"-"`
	FilterSummary validator.FilterSummary `json:"filter_summary"`

	Transactions []domain.Transaction `json:"-"`

	TotalRevenue  float64                  `json:"total_revenue"`
	RegionStats   []analytics.RegionStat   `json:"region_stats"`
	TopProducts   []analytics.ProductStat  `json:"top_products"`
	LowPerformers []analytics.ProductStat  `json:"low_performers"`
	CustomerStats []analytics.CustomerStat `json:"customer_stats"`
	DailyTrend    []analytics.DayStat      `json:"daily_trend"`
	PeakDay       analytics.PeakDay        `json:"peak_day"`

	Enriched      []domain.EnrichedTransaction `json:"-"`
	EnrichSummary enrich.Summary               `json:"enrich_summary"`
}

// Pipeline runs analyses.
type Pipeline struct {
	catalog CatalogSource
	logger  *slog.Logger
}

// New creates a pipeline. catalogSource may be nil, in which case runs
// behave as if the catalog were unavailable.
func New(catalogSource CatalogSource, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{catalog: catalogSource, logger: logger}
}

// Run executes the full pipeline over the configured input.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.TopN <= 0 {
		opts.TopN = 5
	}
	if opts.LowThreshold <= 0 {
		opts.LowThreshold = 10
	}

	result := &Result{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now(),
	}
	logger := p.logger.With("run_id", result.RunID)

	lines, err := ingest.ReadSalesFile(opts.InputPath)
	if err != nil {
		return nil, err
	}
	logger.Info("read sales file", "path", opts.InputPath, "lines", len(lines))

	parsed, parseStats := ingest.ParseLines(lines)
	result.ParseStats = parseStats
	logger.Info("parsed transactions", "parsed", parseStats.Parsed, "skipped", parseStats.Skipped)
	for _, perr := range parseStats.Errors {
		logger.Warn("skipped line", "error", perr)
	}

	admitted, rejects, summary := validator.ValidateAndFilter(parsed, opts.Filter)
	result.Rejects = rejects
	result.FilterSummary = summary
	result.Transactions = admitted
	logger.Info("validated and filtered",
		"invalid", summary.Invalid,
		"filtered_by_region", summary.FilteredByRegion,
		"filtered_by_amount", summary.FilteredByAmount,
		"final", summary.FinalCount,
	)

	if len(admitted) == 0 {
		return result, ErrNoTransactions
	}

	result.TotalRevenue = analytics.TotalRevenue(admitted)
	result.RegionStats = analytics.RegionStats(admitted)
	result.TopProducts = analytics.TopProducts(admitted, opts.TopN)
	result.LowPerformers = analytics.LowPerformers(admitted, opts.LowThreshold)
	result.CustomerStats = analytics.CustomerStats(admitted)
	result.DailyTrend = analytics.DailyTrend(admitted)
	result.PeakDay = analytics.FindPeakDay(admitted)
	logger.Info("computed aggregates",
		"total_revenue", result.TotalRevenue,
		"regions", len(result.RegionStats),
		"days", len(result.DailyTrend),
	)

	mapping := catalog.Mapping{}
	if !opts.SkipEnrich && p.catalog != nil {
		mapping = catalog.BuildMapping(p.catalog.FetchProducts(ctx))
	}
	result.Enriched, result.EnrichSummary = enrich.Enrich(admitted, mapping)
	logger.Info("enriched transactions",
		"matched", result.EnrichSummary.Matched,
		"unmatched", result.EnrichSummary.Unmatched,
		"match_rate", result.EnrichSummary.MatchRate,
	)

	return result, nil
}
