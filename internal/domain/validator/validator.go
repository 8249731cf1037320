// Package validator decides which parsed transactions are admissible
// and applies the optional region/amount filters.
//
// A record is admitted only if every rule passes. Rules are evaluated
// independently so a bad record is reported once with all of its
// reasons, and counted once.
package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retailops/sales-analytics/internal/domain"
)

// maxReportedRejects caps how many rejected records keep their reasons.
// Counts stay exact regardless.
const maxReportedRejects = 5

// Params are the optional narrowing filters, applied to admitted
// records only. A nil amount bound means no bound.
type Params struct {
	Region    string
	MinAmount *float64
	MaxAmount *float64
}

// Report describes why a single record was rejected.
type Report struct {
	TransactionID string
	Reasons       []string
}

// FilterSummary accounts for every input record: invalid, removed by a
// filter, or surviving to the final set.
type FilterSummary struct {
	TotalInput       int `json:"total_input"`
	Invalid          int `json:"invalid"`
	FilteredByRegion int `json:"filtered_by_region"`
	FilteredByAmount int `json:"filtered_by_amount"`
	FinalCount       int `json:"final_count"`
}

// Validate applies the six admission rules to each transaction and
// partitions the input. Reasons are retained for the first few rejects
// only.
func Validate(txs []domain.Transaction) (admitted []domain.Transaction, invalid int, reports []Report) {
	admitted = make([]domain.Transaction, 0, len(txs))

	for _, tx := range txs {
		reasons := checkRules(tx)
		if len(reasons) == 0 {
			admitted = append(admitted, tx)
			continue
		}
		invalid++
		if len(reports) < maxReportedRejects {
			reports = append(reports, Report{TransactionID: tx.TransactionID, Reasons: reasons})
		}
	}

	return admitted, invalid, reports
}

// checkRules returns every rule violation for a transaction, empty when
// the record is admissible.
func checkRules(tx domain.Transaction) []string {
	var reasons []string

	required := []struct {
		name  string
		value string
	}{
		{"TransactionID", tx.TransactionID},
		{"Date", tx.Date},
		{"ProductID", tx.ProductID},
		{"ProductName", tx.ProductName},
		{"CustomerID", tx.CustomerID},
		{"Region", tx.Region},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			reasons = append(reasons, "missing "+f.name)
		}
	}

	if tx.Quantity <= 0 {
		reasons = append(reasons, fmt.Sprintf("invalid Quantity (%d)", tx.Quantity))
	}
	if tx.UnitPrice <= 0 {
		reasons = append(reasons, fmt.Sprintf("invalid UnitPrice (%g)", tx.UnitPrice))
	}
	if !strings.HasPrefix(tx.TransactionID, "T") {
		reasons = append(reasons, fmt.Sprintf("invalid TransactionID format (%s)", tx.TransactionID))
	}
	if !strings.HasPrefix(tx.ProductID, "P") {
		reasons = append(reasons, fmt.Sprintf("invalid ProductID format (%s)", tx.ProductID))
	}
	if !strings.HasPrefix(tx.CustomerID, "C") {
		reasons = append(reasons, fmt.Sprintf("invalid CustomerID format (%s)", tx.CustomerID))
	}

	return reasons
}

// Apply narrows an admitted set by the filter params, in the fixed
// order region, then min amount, then max amount. The amount steps run
// sequentially on the shrinking set so the removal counts match what
// the summary reports.
func Apply(txs []domain.Transaction, p Params) (kept []domain.Transaction, byRegion, byAmount int) {
	kept = txs

	if p.Region != "" {
		next := make([]domain.Transaction, 0, len(kept))
		for _, tx := range kept {
			if tx.Region == p.Region {
				next = append(next, tx)
			}
		}
		byRegion = len(kept) - len(next)
		kept = next
	}

	if p.MinAmount != nil {
		next := make([]domain.Transaction, 0, len(kept))
		for _, tx := range kept {
			if tx.Amount() >= *p.MinAmount {
				next = append(next, tx)
			}
		}
		byAmount += len(kept) - len(next)
		kept = next
	}

	if p.MaxAmount != nil {
		next := make([]domain.Transaction, 0, len(kept))
		for _, tx := range kept {
			if tx.Amount() <= *p.MaxAmount {
				next = append(next, tx)
			}
		}
		byAmount += len(kept) - len(next)
		kept = next
	}

	return kept, byRegion, byAmount
}

// ValidateAndFilter runs validation then filtering and returns the
// surviving set with a full accounting summary.
func ValidateAndFilter(txs []domain.Transaction, p Params) ([]domain.Transaction, []Report, FilterSummary) {
	admitted, invalid, reports := Validate(txs)
	kept, byRegion, byAmount := Apply(admitted, p)

	summary := FilterSummary{
		TotalInput:       len(txs),
		Invalid:          invalid,
		FilteredByRegion: byRegion,
		FilteredByAmount: byAmount,
		FinalCount:       len(kept),
	}

	return kept, reports, summary
}

// ParseBound parses an amount bound supplied as text. Callers treat a
// parse failure as "no bound" and warn, so bad user input never drops
// the whole run.
func ParseBound(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid amount bound %q", s)
	}
	return &v, nil
}
