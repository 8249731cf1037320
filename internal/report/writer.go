package report

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/retailops/sales-analytics/internal/domain"
)

// enrichedHeader is the column order of the enriched export: the
// original eight columns plus the four catalog fields.
var enrichedHeader = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
	"API_Category", "API_Brand", "API_Rating", "API_Match",
}

// WriteEnriched writes enriched transactions in the legacy
// pipe-delimited format: one header line, one line per record, nulls as
// empty strings, booleans as True/False. The downstream consumer
// predates this system and its format is frozen.
func WriteEnriched(w io.Writer, enriched []domain.EnrichedTransaction) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(strings.Join(enrichedHeader, "|") + "\n"); err != nil {
		return err
	}

	for _, e := range enriched {
		fields := []string{
			e.TransactionID,
			e.Date,
			e.ProductID,
			e.ProductName,
			strconv.Itoa(e.Quantity),
			formatPrice(e.UnitPrice),
			e.CustomerID,
			e.Region,
			stringOrEmpty(e.APICategory),
			stringOrEmpty(e.APIBrand),
			ratingOrEmpty(e.APIRating),
			formatBool(e.APIMatch),
		}
		if _, err := bw.WriteString(strings.Join(fields, "|") + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ratingOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// formatBool renders booleans the way the legacy consumer expects.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
