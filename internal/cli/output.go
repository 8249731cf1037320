package cli

import (
	"fmt"
	"strings"

	"github.com/retailops/sales-analytics/internal/application/pipeline"
)

// PrintHeader prints the application header.
func PrintHeader(input string, enrich bool) {
	mode := "with catalog enrichment"
	if !enrich {
		mode = "enrichment skipped"
	}
	fmt.Printf("sales-analytics: %s (%s)\n", input, mode)
}

// PrintRunSummary prints the run result summary to the console.
func PrintRunSummary(result *pipeline.Result) {
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Run: %s\n", result.RunID)
	fmt.Printf("Records: Input=%d Invalid=%d Filtered=%d Final=%d\n",
		result.FilterSummary.TotalInput,
		result.FilterSummary.Invalid,
		result.FilterSummary.FilteredByRegion+result.FilterSummary.FilteredByAmount,
		result.FilterSummary.FinalCount)

	if result.ParseStats.Skipped > 0 {
		fmt.Printf("Skipped %d malformed line(s) during parsing\n", result.ParseStats.Skipped)
	}

	fmt.Printf("Total Revenue: %.2f across %d region(s)\n",
		result.TotalRevenue, len(result.RegionStats))
	if result.PeakDay.Date != "" {
		fmt.Printf("Peak Day: %s (%.2f)\n", result.PeakDay.Date, result.PeakDay.Revenue)
	}

	if result.EnrichSummary.Total > 0 {
		fmt.Printf("Catalog Matches: %d/%d (%.1f%%)\n",
			result.EnrichSummary.Matched,
			result.EnrichSummary.Total,
			result.EnrichSummary.MatchRate)
		if len(result.EnrichSummary.UnmatchedProducts) > 0 {
			fmt.Printf("No catalog entry: %s\n",
				strings.Join(result.EnrichSummary.UnmatchedProducts, ", "))
		}
	}
}

// PrintRejects prints the retained validation failures, if any.
func PrintRejects(result *pipeline.Result) {
	if len(result.Rejects) == 0 {
		return
	}
	fmt.Println("\nRejected records:")
	for _, r := range result.Rejects {
		fmt.Printf("  - %s: %s\n", r.TransactionID, strings.Join(r.Reasons, "; "))
	}
	if result.FilterSummary.Invalid > len(result.Rejects) {
		fmt.Printf("  ... and %d more\n", result.FilterSummary.Invalid-len(result.Rejects))
	}
}
