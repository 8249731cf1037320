// Package report renders analysis results: a formatted text report for
// humans and the enriched pipe-delimited export for the legacy
// downstream consumer.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/retailops/sales-analytics/internal/application/pipeline"
)

const lineWidth = 80

// Write renders the full text report for one run.
func Write(w io.Writer, res *pipeline.Result) error {
	var b strings.Builder

	rule := strings.Repeat("=", lineWidth)
	thin := strings.Repeat("-", lineWidth)

	// Header
	b.WriteString(rule + "\n")
	b.WriteString(center("SALES ANALYTICS REPORT") + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", res.GeneratedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "Run ID:    %s\n", res.RunID)
	fmt.Fprintf(&b, "Records:   %d processed, %d invalid, %d filtered out\n",
		res.FilterSummary.TotalInput,
		res.FilterSummary.Invalid,
		res.FilterSummary.FilteredByRegion+res.FilterSummary.FilteredByAmount,
	)
	b.WriteString("\n")

	// Overall summary
	b.WriteString("OVERALL SUMMARY\n")
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "Total Revenue:      %15.2f\n", res.TotalRevenue)
	fmt.Fprintf(&b, "Total Transactions: %15d\n", res.FilterSummary.FinalCount)
	if res.FilterSummary.FinalCount > 0 {
		fmt.Fprintf(&b, "Average Order Value:%15.2f\n", res.TotalRevenue/float64(res.FilterSummary.FinalCount))
	}
	if len(res.DailyTrend) > 0 {
		first := res.DailyTrend[0].Date
		last := res.DailyTrend[len(res.DailyTrend)-1].Date
		fmt.Fprintf(&b, "Date Range:         %s to %s\n", first, last)
	}
	b.WriteString("\n")

	// Region-wise performance
	b.WriteString("REGION-WISE PERFORMANCE\n")
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "%-20s %15s %10s %14s\n", "Region", "Total Sales", "Share %", "Transactions")
	for _, r := range res.RegionStats {
		fmt.Fprintf(&b, "%-20s %15.2f %10.2f %14d\n", r.Region, r.TotalSales, r.Percentage, r.TransactionCount)
	}
	b.WriteString("\n")

	// Top products
	fmt.Fprintf(&b, "TOP %d PRODUCTS\n", len(res.TopProducts))
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "%-5s %-30s %12s %15s\n", "Rank", "Product", "Quantity", "Revenue")
	for i, p := range res.TopProducts {
		fmt.Fprintf(&b, "%-5d %-30s %12d %15.2f\n", i+1, p.Name, p.Quantity, p.Revenue)
	}
	b.WriteString("\n")

	// Top customers
	b.WriteString("TOP CUSTOMERS\n")
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "%-5s %-15s %15s %12s\n", "Rank", "Customer", "Total Spent", "Orders")
	for i, c := range res.CustomerStats {
		if i == 5 {
			break
		}
		fmt.Fprintf(&b, "%-5d %-15s %15.2f %12d\n", i+1, c.CustomerID, c.TotalSpent, c.PurchaseCount)
	}
	b.WriteString("\n")

	// Daily trend
	b.WriteString("DAILY SALES TREND\n")
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "%-15s %15s %14s %12s\n", "Date", "Revenue", "Transactions", "Customers")
	for _, d := range res.DailyTrend {
		fmt.Fprintf(&b, "%-15s %15.2f %14d %12d\n", d.Date, d.Revenue, d.TransactionCount, d.UniqueCustomers)
	}
	b.WriteString("\n")

	// Performance analysis
	b.WriteString("PERFORMANCE ANALYSIS\n")
	b.WriteString(thin + "\n")
	if res.PeakDay.Date != "" {
		fmt.Fprintf(&b, "Peak Sales Day: %s (%.2f across %d transactions)\n",
			res.PeakDay.Date, res.PeakDay.Revenue, res.PeakDay.TransactionCount)
	} else {
		b.WriteString("Peak Sales Day: no data\n")
	}
	if len(res.LowPerformers) == 0 {
		b.WriteString("Low Performers: none\n")
	} else {
		b.WriteString("Low Performers:\n")
		for _, p := range res.LowPerformers {
			fmt.Fprintf(&b, "  %-30s %6d units %15.2f\n", p.Name, p.Quantity, p.Revenue)
		}
	}
	b.WriteString("\n")

	// Enrichment summary
	b.WriteString("CATALOG ENRICHMENT\n")
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "Matched:    %d of %d (%.1f%%)\n",
		res.EnrichSummary.Matched, res.EnrichSummary.Total, res.EnrichSummary.MatchRate)
	if len(res.EnrichSummary.UnmatchedProducts) > 0 {
		fmt.Fprintf(&b, "No catalog entry: %s\n", strings.Join(res.EnrichSummary.UnmatchedProducts, ", "))
	}
	b.WriteString(rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func center(s string) string {
	if len(s) >= lineWidth {
		return s
	}
	pad := (lineWidth - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
