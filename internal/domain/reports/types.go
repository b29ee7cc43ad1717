// Package reports computes the dashboard summary figures.
package reports

import (
	"defter/internal/core/types"
)

// Summary holds the dashboard KPI figures.
type Summary struct {
	// TotalCustomers is the number of customer records
	TotalCustomers int64 `json:"totalCustomers"`

	// TotalInvoices is the number of invoices of both types
	TotalInvoices int64 `json:"totalInvoices"`

	// OutstandingBalance is the sum of all customer balances
	OutstandingBalance types.Money `json:"outstandingBalance"`

	// TodaysSales is the grand total of today's paid sales invoices
	TodaysSales types.Money `json:"todaysSales"`

	// MonthlySales holds sales totals for the last six calendar months,
	// oldest first
	MonthlySales []MonthlySales `json:"monthlySales"`
}

// MonthlySales is one month's sales total.
type MonthlySales struct {
	// Month in "2006-01" form
	Month string `json:"month"`

	Total types.Money `json:"total"`
}
