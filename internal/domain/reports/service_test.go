package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defter/internal/core/id"
	"defter/internal/core/types"
	"defter/internal/domain/catalogs/customer"
	"defter/internal/domain/documents/invoice"
	"defter/internal/infrastructure/storage/memory"
)

func addCustomer(t *testing.T, repo *memory.CustomerRepo, name, taxID string, balance int64) {
	t.Helper()
	c := customer.New(name, taxID)
	c.Balance = types.NewMoneyFromInt(balance)
	require.NoError(t, repo.Create(context.Background(), c))
}

func addInvoice(t *testing.T, repo *memory.InvoiceRepo, invType invoice.Type, status invoice.Status, date time.Time, price int64) {
	t.Helper()
	inv := invoice.New(invType, id.New(), "Test Müşteri", date)
	inv.Status = status
	inv.Items = []invoice.Line{{
		Description: "Hizmet",
		Quantity:    types.NewMoneyFromInt(1),
		UnitPrice:   types.NewMoneyFromInt(price),
		VATRate:     types.Zero(),
	}}
	inv.AssignLineIDs()
	inv.RecalculateTotals()
	require.NoError(t, repo.Create(context.Background(), inv))
}

func TestSummary(t *testing.T) {
	customers := memory.NewCustomerRepo()
	invoices := memory.NewInvoiceRepo()
	ctx := context.Background()

	addCustomer(t, customers, "ABC Teknoloji", "1234567890", 12450)
	addCustomer(t, customers, "XYZ İnşaat", "9876543210", -3250)

	today := time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)

	// counted in today's sales
	addInvoice(t, invoices, invoice.TypeSales, invoice.StatusPaid, today, 1000)
	// paid but not today
	addInvoice(t, invoices, invoice.TypeSales, invoice.StatusPaid, today.AddDate(0, 0, -1), 500)
	// today but still draft
	addInvoice(t, invoices, invoice.TypeSales, invoice.StatusDraft, today, 200)
	// purchases never count toward sales
	addInvoice(t, invoices, invoice.TypePurchase, invoice.StatusPaid, today, 9000)
	// sales from an earlier month, lands in the monthly series
	addInvoice(t, invoices, invoice.TypeSales, invoice.StatusPaid, time.Date(2024, 9, 3, 0, 0, 0, 0, time.UTC), 300)

	svc := NewService(customers, invoices, WithNow(func() time.Time {
		return time.Date(2024, 11, 15, 14, 30, 0, 0, time.UTC)
	}))

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.TotalCustomers)
	assert.Equal(t, int64(5), summary.TotalInvoices)
	assert.Equal(t, "9200", summary.OutstandingBalance.String())
	assert.Equal(t, "1000", summary.TodaysSales.String())

	require.Len(t, summary.MonthlySales, 6)
	byMonth := make(map[string]string, len(summary.MonthlySales))
	for _, m := range summary.MonthlySales {
		byMonth[m.Month] = m.Total.String()
	}
	assert.Equal(t, "1700", byMonth["2024-11"], "all sales of the month regardless of status")
	assert.Equal(t, "300", byMonth["2024-09"])
	assert.Equal(t, "0", byMonth["2024-10"], "months without sales are zero, not missing")

	// oldest month first
	assert.Equal(t, "2024-06", summary.MonthlySales[0].Month)
	assert.Equal(t, "2024-11", summary.MonthlySales[5].Month)
}

func TestSummary_Empty(t *testing.T) {
	svc := NewService(memory.NewCustomerRepo(), memory.NewInvoiceRepo(), WithNow(func() time.Time {
		return time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC)
	}))

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), summary.TotalCustomers)
	assert.Equal(t, int64(0), summary.TotalInvoices)
	assert.True(t, summary.OutstandingBalance.IsZero())
	assert.True(t, summary.TodaysSales.IsZero())
	require.Len(t, summary.MonthlySales, 6)
	for _, m := range summary.MonthlySales {
		assert.True(t, m.Total.IsZero())
	}
}
