// Package analytics computes the descriptive aggregates over an
// admitted transaction set.
//
// Every function here is pure: the same input set produces the same
// output, independent of call order. Grouping is a single-pass fold
// into an accumulator map with first-seen ordering, followed by a
// stable sort, so tie-breaks are deterministic and testable. Running
// sums keep full float64 precision; rounding to two decimals happens
// only on the returned values.
package analytics

import (
	"math"
	"sort"

	"github.com/retailops/sales-analytics/internal/domain"
)

// RegionStat is one region's share of the total.
type RegionStat struct {
	Region           string  `json:"region"`
	TotalSales       float64 `json:"total_sales"`
	TransactionCount int     `json:"transaction_count"`
	Percentage       float64 `json:"percentage"`
}

// ProductStat is a per-product quantity and revenue rollup.
type ProductStat struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// CustomerStat summarizes one customer's purchasing.
type CustomerStat struct {
	CustomerID    string   `json:"customer_id"`
	TotalSpent    float64  `json:"total_spent"`
	PurchaseCount int      `json:"purchase_count"`
	AvgOrderValue float64  `json:"avg_order_value"`
	Products      []string `json:"products"` // sorted, de-duplicated product names
}

// DayStat is one day's totals in the trend.
type DayStat struct {
	Date             string  `json:"date"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transaction_count"`
	UniqueCustomers  int     `json:"unique_customers"`
}

// PeakDay is the highest-revenue day. A zero value (empty Date) means
// the input set was empty.
type PeakDay struct {
	Date             string  `json:"date"`
	Revenue          float64 `json:"revenue"`
	TransactionCount int     `json:"transaction_count"`
}

// TotalRevenue sums quantity*price across the set, rounded to cents.
func TotalRevenue(txs []domain.Transaction) float64 {
	var total float64
	for _, tx := range txs {
		total += tx.Amount()
	}
	return round2(total)
}

// RegionStats groups the set by region, sorted by revenue descending.
// Ties keep first-seen input order. Percentages are of the unrounded
// grand total and are zero when the total is zero.
func RegionStats(txs []domain.Transaction) []RegionStat {
	type acc struct {
		sales float64
		count int
	}

	byRegion := make(map[string]*acc)
	var order []string
	var total float64

	for _, tx := range txs {
		a, ok := byRegion[tx.Region]
		if !ok {
			a = &acc{}
			byRegion[tx.Region] = a
			order = append(order, tx.Region)
		}
		amount := tx.Amount()
		a.sales += amount
		a.count++
		total += amount
	}

	stats := make([]RegionStat, 0, len(order))
	for _, region := range order {
		a := byRegion[region]
		pct := 0.0
		if total > 0 {
			pct = a.sales / total * 100
		}
		stats = append(stats, RegionStat{
			Region:           region,
			TotalSales:       round2(a.sales),
			TransactionCount: a.count,
			Percentage:       round2(pct),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales > stats[j].TotalSales
	})

	return stats
}

// productRollup folds the set by product name in first-seen order.
func productRollup(txs []domain.Transaction) []ProductStat {
	type acc struct {
		quantity int
		revenue  float64
	}

	byName := make(map[string]*acc)
	var order []string

	for _, tx := range txs {
		a, ok := byName[tx.ProductName]
		if !ok {
			a = &acc{}
			byName[tx.ProductName] = a
			order = append(order, tx.ProductName)
		}
		a.quantity += tx.Quantity
		a.revenue += tx.Amount()
	}

	stats := make([]ProductStat, 0, len(order))
	for _, name := range order {
		a := byName[name]
		stats = append(stats, ProductStat{Name: name, Quantity: a.quantity, Revenue: round2(a.revenue)})
	}
	return stats
}

// TopProducts returns the n best sellers by summed quantity, descending.
// Ties keep first-seen input order.
func TopProducts(txs []domain.Transaction, n int) []ProductStat {
	stats := productRollup(txs)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Quantity > stats[j].Quantity
	})
	if n < len(stats) {
		stats = stats[:n]
	}
	return stats
}

// LowPerformers returns products whose summed quantity is below
// threshold, ascending by quantity.
func LowPerformers(txs []domain.Transaction, threshold int) []ProductStat {
	all := productRollup(txs)
	low := make([]ProductStat, 0)
	for _, p := range all {
		if p.Quantity < threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})
	return low
}

// CustomerStats groups the set by customer, sorted by total spent
// descending with first-seen tie-break. Product lists are sorted and
// de-duplicated.
func CustomerStats(txs []domain.Transaction) []CustomerStat {
	type acc struct {
		spent    float64
		count    int
		products map[string]struct{}
	}

	byCustomer := make(map[string]*acc)
	var order []string

	for _, tx := range txs {
		a, ok := byCustomer[tx.CustomerID]
		if !ok {
			a = &acc{products: make(map[string]struct{})}
			byCustomer[tx.CustomerID] = a
			order = append(order, tx.CustomerID)
		}
		a.spent += tx.Amount()
		a.count++
		a.products[tx.ProductName] = struct{}{}
	}

	stats := make([]CustomerStat, 0, len(order))
	for _, id := range order {
		a := byCustomer[id]
		products := make([]string, 0, len(a.products))
		for name := range a.products {
			products = append(products, name)
		}
		sort.Strings(products)

		avg := 0.0
		if a.count > 0 {
			avg = a.spent / float64(a.count)
		}

		stats = append(stats, CustomerStat{
			CustomerID:    id,
			TotalSpent:    round2(a.spent),
			PurchaseCount: a.count,
			AvgOrderValue: round2(avg),
			Products:      products,
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent > stats[j].TotalSpent
	})

	return stats
}

// DailyTrend groups the set by date, ordered lexicographically. That is
// chronological order for YYYY-MM-DD dates, which is all the legacy
// export produces.
func DailyTrend(txs []domain.Transaction) []DayStat {
	type acc struct {
		revenue   float64
		count     int
		customers map[string]struct{}
	}

	byDate := make(map[string]*acc)

	for _, tx := range txs {
		a, ok := byDate[tx.Date]
		if !ok {
			a = &acc{customers: make(map[string]struct{})}
			byDate[tx.Date] = a
		}
		a.revenue += tx.Amount()
		a.count++
		a.customers[tx.CustomerID] = struct{}{}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	trend := make([]DayStat, 0, len(dates))
	for _, date := range dates {
		a := byDate[date]
		trend = append(trend, DayStat{
			Date:             date,
			Revenue:          round2(a.revenue),
			TransactionCount: a.count,
			UniqueCustomers:  len(a.customers),
		})
	}
	return trend
}

// FindPeakDay returns the trend entry with the highest revenue. Ties go
// to the earliest date, a consequence of scanning the trend in its
// sorted order and only replacing on a strictly higher revenue.
func FindPeakDay(txs []domain.Transaction) PeakDay {
	trend := DailyTrend(txs)
	if len(trend) == 0 {
		return PeakDay{}
	}

	best := trend[0]
	for _, day := range trend[1:] {
		if day.Revenue > best.Revenue {
			best = day
		}
	}

	return PeakDay{Date: best.Date, Revenue: best.Revenue, TransactionCount: best.TransactionCount}
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
