package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retailops/sales-analytics/internal/application/pipeline"
	"github.com/retailops/sales-analytics/internal/catalog"
	"github.com/retailops/sales-analytics/internal/infrastructure/config"
	"github.com/retailops/sales-analytics/internal/infrastructure/logging"
	"github.com/retailops/sales-analytics/internal/report"
)

// RunAnalyze executes one analysis run and writes the report files.
func RunAnalyze(cfg *config.Config, flags *AnalyzeFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewStageLogger(loggingCfg, "analyze")

	opts := flags.ToOptions(cfg)
	PrintHeader(opts.InputPath, !opts.SkipEnrich)

	client := catalog.NewClient(catalog.Options{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: cfg.Catalog.Timeout(),
		Limit:   cfg.Catalog.Limit,
	}, logger)

	p := pipeline.New(client, logger)
	result, err := p.Run(context.Background(), opts)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoTransactions) {
			PrintRunSummary(result)
			PrintRejects(result)
		}
		return err
	}

	outDir := cfg.Output.Dir
	if flags.OutputDir != "" {
		outDir = flags.OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	reportPath := filepath.Join(outDir, cfg.Output.ReportFile)
	if err := writeFile(reportPath, func(f *os.File) error {
		return report.Write(f, result)
	}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	enrichedPath := filepath.Join(outDir, cfg.Output.EnrichedFile)
	if err := writeFile(enrichedPath, func(f *os.File) error {
		return report.WriteEnriched(f, result.Enriched)
	}); err != nil {
		return fmt.Errorf("write enriched data: %w", err)
	}

	PrintRunSummary(result)
	if flags.Verbose {
		PrintRejects(result)
	}
	fmt.Printf("\nReport:   %s\nEnriched: %s\n", reportPath, enrichedPath)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
