// Package enrich joins admitted transactions to catalog metadata by the
// numeric id embedded in their product identifier.
//
// Enrichment is best-effort and cardinality-preserving: every input
// transaction produces exactly one output, matched or not. A failure to
// extract or look up an id degrades that one record to unmatched and
// never touches the rest of the batch.
package enrich

import (
	"regexp"
	"strconv"

	"github.com/retailops/sales-analytics/internal/catalog"
	"github.com/retailops/sales-analytics/internal/domain"
)

// digitRun matches the first maximal run of decimal digits, e.g.
// "P101" -> "101", "P5X" -> "5".
var digitRun = regexp.MustCompile(`[0-9]+`)

// Summary reports the outcome of one enrichment pass.
type Summary struct {
	Total     int     `json:"total"`
	Matched   int     `json:"matched"`
	Unmatched int     `json:"unmatched"`
	MatchRate float64 `json:"match_rate"` // percent, 0 when Total is 0

	// UnmatchedProducts lists the distinct product ids that found no
	// catalog entry, in first-seen order, for the report.
	UnmatchedProducts []string `json:"unmatched_products"`
}

// ExtractNumericID pulls the numeric id out of a product identifier.
// The second return is false when no digit run exists or the run does
// not fit in an int.
func ExtractNumericID(productID string) (int, bool) {
	run := digitRun.FindString(productID)
	if run == "" {
		return 0, false
	}
	id, err := strconv.Atoi(run)
	if err != nil {
		// Digit run too long for an int; treat as no-match.
		return 0, false
	}
	return id, true
}

// Enrich joins each transaction to the catalog mapping. The output is
// one-to-one with the input; an empty mapping marks everything
// unmatched.
func Enrich(txs []domain.Transaction, mapping catalog.Mapping) ([]domain.EnrichedTransaction, Summary) {
	enriched := make([]domain.EnrichedTransaction, 0, len(txs))
	summary := Summary{Total: len(txs)}
	seenUnmatched := make(map[string]struct{})

	for _, tx := range txs {
		out := domain.EnrichedTransaction{Transaction: tx}

		if entry, ok := lookup(tx.ProductID, mapping); ok {
			category, brand, rating := entry.Category, entry.Brand, entry.Rating
			out.APICategory = &category
			out.APIBrand = &brand
			out.APIRating = &rating
			out.APIMatch = true
			summary.Matched++
		} else {
			summary.Unmatched++
			if _, seen := seenUnmatched[tx.ProductID]; !seen {
				seenUnmatched[tx.ProductID] = struct{}{}
				summary.UnmatchedProducts = append(summary.UnmatchedProducts, tx.ProductID)
			}
		}

		enriched = append(enriched, out)
	}

	if summary.Total > 0 {
		summary.MatchRate = float64(summary.Matched) / float64(summary.Total) * 100
	}

	return enriched, summary
}

func lookup(productID string, mapping catalog.Mapping) (catalog.Entry, bool) {
	id, ok := ExtractNumericID(productID)
	if !ok {
		return catalog.Entry{}, false
	}
	entry, ok := mapping[id]
	return entry, ok
}
