package reports

import (
	"context"
	"fmt"
	"time"

	"defter/internal/core/types"
	"defter/internal/domain/catalogs/customer"
	"defter/internal/domain/documents/invoice"
)

const monthsInChart = 6

// Service computes dashboard figures from the repositories.
type Service struct {
	customers customer.Repository
	invoices  invoice.Repository
	now       func() time.Time
}

// Option configures the service.
type Option func(*Service)

// WithNow overrides the clock. Used by tests to pin "today".
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new reports service.
func NewService(customers customer.Repository, invoices invoice.Repository, opts ...Option) *Service {
	s := &Service{
		customers: customers,
		invoices:  invoices,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary computes the dashboard KPIs.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	allCustomers, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	allInvoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	outstanding := types.Zero()
	for _, c := range allCustomers {
		outstanding = outstanding.Add(c.Balance)
	}

	now := s.now().UTC()
	today := now.Truncate(24 * time.Hour)

	todaysSales := types.Zero()
	monthly := make(map[string]types.Money, monthsInChart)
	for _, inv := range allInvoices {
		if inv.Type != invoice.TypeSales {
			continue
		}
		if inv.Status == invoice.StatusPaid && inv.Date.UTC().Truncate(24*time.Hour).Equal(today) {
			todaysSales = todaysSales.Add(inv.GrandTotal)
		}
		month := inv.Date.UTC().Format("2006-01")
		monthly[month] = monthly[month].Add(inv.GrandTotal)
	}

	series := make([]MonthlySales, 0, monthsInChart)
	for i := monthsInChart - 1; i >= 0; i-- {
		m := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		key := m.Format("2006-01")
		total, ok := monthly[key]
		if !ok {
			total = types.Zero()
		}
		series = append(series, MonthlySales{Month: key, Total: total})
	}

	return &Summary{
		TotalCustomers:     int64(len(allCustomers)),
		TotalInvoices:      int64(len(allInvoices)),
		OutstandingBalance: outstanding,
		TodaysSales:        todaysSales,
		MonthlySales:       series,
	}, nil
}
