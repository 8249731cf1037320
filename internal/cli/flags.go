package cli

import (
	"flag"
	"fmt"

	"github.com/retailops/sales-analytics/internal/application/pipeline"
	"github.com/retailops/sales-analytics/internal/domain/validator"
	"github.com/retailops/sales-analytics/internal/infrastructure/config"
)

// AnalyzeFlags are the flags for the analyze command.
type AnalyzeFlags struct {
	Input     string
	Region    string
	Min       string
	Max       string
	Top       int
	Threshold int
	OutputDir string
	NoEnrich  bool
	Verbose   bool
}

// ParseAnalyzeFlags parses analyze command flags from args.
func ParseAnalyzeFlags(args []string) (*AnalyzeFlags, error) {
	flags := &AnalyzeFlags{}
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.StringVar(&flags.Input, "input", "", "Path to the sales data file (default from config)")
	fs.StringVar(&flags.Region, "region", "", "Only include transactions from this region")
	fs.StringVar(&flags.Min, "min", "", "Minimum transaction amount")
	fs.StringVar(&flags.Max, "max", "", "Maximum transaction amount")
	fs.IntVar(&flags.Top, "top", 0, "Number of top products to report (default from config)")
	fs.IntVar(&flags.Threshold, "threshold", 0, "Units-sold threshold for low performers (default from config)")
	fs.StringVar(&flags.OutputDir, "output", "", "Directory for report files (default from config)")
	fs.BoolVar(&flags.NoEnrich, "no-enrich", false, "Skip catalog enrichment")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return flags, nil
}

// ToOptions converts flags to pipeline options, with config values
// filling anything the flags left unset. Amount bounds that fail to
// parse are reported and ignored, matching the forgiving behavior of
// the rest of the ingest path.
func (f *AnalyzeFlags) ToOptions(cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{
		InputPath:    cfg.Input.Path,
		TopN:         cfg.Analysis.TopProducts,
		LowThreshold: cfg.Analysis.LowThreshold,
		SkipEnrich:   f.NoEnrich,
	}
	if f.Input != "" {
		opts.InputPath = f.Input
	}
	if f.Top > 0 {
		opts.TopN = f.Top
	}
	if f.Threshold > 0 {
		opts.LowThreshold = f.Threshold
	}

	opts.Filter.Region = f.Region

	min, err := validator.ParseBound(f.Min)
	if err != nil {
		fmt.Printf("Warning: ignoring invalid -min value %q\n", f.Min)
	} else {
		opts.Filter.MinAmount = min
	}
	max, err := validator.ParseBound(f.Max)
	if err != nil {
		fmt.Printf("Warning: ignoring invalid -max value %q\n", f.Max)
	} else {
		opts.Filter.MaxAmount = max
	}

	return opts
}
