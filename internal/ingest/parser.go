// Package ingest turns raw pipe-delimited sales lines into typed
// transactions.
//
// Parsing is line-independent: a malformed line is skipped and counted,
// never fatal to the batch. The legacy export allows thousands
// separators inside the numeric columns ("1,500") and commas inside
// product names, both of which are normalized here.
package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retailops/sales-analytics/internal/domain"
)

// expectedFields is the fixed column count of the legacy export:
// TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
const expectedFields = 8

// maxRetainedErrors caps how many per-line errors ParseLines keeps for
// diagnostics. The counts are always exact.
const maxRetainedErrors = 5

// FieldCountError reports a line that did not split into exactly 8 fields.
type FieldCountError struct {
	Line   int // 1-based ordinal within the input
	Fields int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("line %d: expected %d fields, got %d", e.Line, expectedFields, e.Fields)
}

// NumericFormatError reports a numeric column that failed conversion
// after comma stripping.
type NumericFormatError struct {
	Line  int
	Field string // "Quantity" or "UnitPrice"
	Value string // the offending raw text
}

func (e *NumericFormatError) Error() string {
	return fmt.Sprintf("line %d: invalid %s %q", e.Line, e.Field, e.Value)
}

// ParseStats summarizes a ParseLines batch.
type ParseStats struct {
	Parsed  int
	Skipped int
	Errors  []error // first few per-line errors, capped
}

// ParseLine parses a single raw line into a Transaction. ordinal is the
// 1-based line number used in error messages.
func ParseLine(line string, ordinal int) (domain.Transaction, error) {
	fields := strings.Split(line, "|")
	if len(fields) != expectedFields {
		return domain.Transaction{}, &FieldCountError{Line: ordinal, Fields: len(fields)}
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	// Commas are the column separator of the downstream legacy format,
	// so they cannot survive inside a product name.
	productName := strings.ReplaceAll(fields[3], ",", " ")

	quantityRaw := fields[4]
	quantity, err := strconv.Atoi(strings.ReplaceAll(quantityRaw, ",", ""))
	if err != nil {
		return domain.Transaction{}, &NumericFormatError{Line: ordinal, Field: "Quantity", Value: quantityRaw}
	}

	priceRaw := fields[5]
	unitPrice, err := strconv.ParseFloat(strings.ReplaceAll(priceRaw, ",", ""), 64)
	if err != nil {
		return domain.Transaction{}, &NumericFormatError{Line: ordinal, Field: "UnitPrice", Value: priceRaw}
	}

	return domain.Transaction{
		TransactionID: fields[0],
		Date:          fields[1],
		ProductID:     fields[2],
		ProductName:   productName,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    fields[6],
		Region:        fields[7],
	}, nil
}

// ParseLines parses a batch of raw lines. Lines that fail to parse are
// skipped and counted; the rest of the batch is unaffected.
func ParseLines(lines []string) ([]domain.Transaction, ParseStats) {
	transactions := make([]domain.Transaction, 0, len(lines))
	var stats ParseStats

	for i, line := range lines {
		tx, err := ParseLine(line, i+1)
		if err != nil {
			stats.Skipped++
			if len(stats.Errors) < maxRetainedErrors {
				stats.Errors = append(stats.Errors, err)
			}
			continue
		}
		transactions = append(transactions, tx)
	}

	stats.Parsed = len(transactions)
	return transactions, stats
}
