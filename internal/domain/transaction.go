// Package domain holds the core transaction types shared by every
// pipeline stage.
package domain

// Transaction is a single sales record after parsing and type coercion.
// Date is kept as its original YYYY-MM-DD string; the pipeline orders
// dates lexicographically, which matches chronological order for that
// format.
type Transaction struct {
	TransactionID string  `json:"transaction_id"`
	Date          string  `json:"date"`
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
	CustomerID    string  `json:"customer_id"`
	Region        string  `json:"region"`
}

// Amount is the transaction value, derived rather than stored so it can
// never drift from Quantity and UnitPrice.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// EnrichedTransaction is a Transaction joined with product catalog
// metadata. The API fields are pointers so an unmatched record renders
// as empty values rather than zero values.
type EnrichedTransaction struct {
	Transaction

	APICategory *string  `json:"api_category"`
	APIBrand    *string  `json:"api_brand"`
	APIRating   *float64 `json:"api_rating"`
	APIMatch    bool     `json:"api_match"`
}
