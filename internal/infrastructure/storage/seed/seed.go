// Package seed loads the demo dataset into any repository backend.
package seed

import (
	"context"
	"time"

	"defter/internal/core/id"
	"defter/internal/core/types"
	"defter/internal/domain/catalogs/customer"
	"defter/internal/domain/documents/invoice"
)

// Sequences is the subset of the sequence store needed to keep counters
// ahead of pre-loaded document numbers.
type Sequences interface {
	Advance(ctx context.Context, key string, value int64) error
}

func strptr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Load writes the demo dataset: two customers and two purchase invoices.
// The ALI_2024 sequence is advanced past the seeded numbers so freshly
// created invoices continue at 003.
func Load(ctx context.Context, customers customer.Repository, invoices invoice.Repository, seqs Sequences) error {
	abcID := id.New()
	abcDate := date(2024, time.November, 15)
	abc := &customer.Customer{
		ID:              abcID,
		Name:            "ABC Teknoloji Ltd. Şti.",
		TaxID:           "1234567890",
		Email:           strptr("info@abcteknoloji.com"),
		Phone:           strptr("0532 123 45 67"),
		Address:         strptr("Teknokent Mahallesi, İstanbul"),
		Balance:         types.NewMoneyFromInt(12450),
		LastInvoiceDate: &abcDate,
	}

	xyzID := id.New()
	xyzDate := date(2024, time.November, 8)
	xyz := &customer.Customer{
		ID:              xyzID,
		Name:            "XYZ İnşaat A.Ş.",
		TaxID:           "9876543210",
		Email:           strptr("contact@xyzinsaat.com"),
		Phone:           strptr("0541 987 65 43"),
		Address:         strptr("Merkez Mahallesi, Ankara"),
		Balance:         types.NewMoneyFromInt(-3250),
		LastInvoiceDate: &xyzDate,
	}

	for _, c := range []*customer.Customer{abc, xyz} {
		if err := customers.Create(ctx, c); err != nil {
			return err
		}
	}

	laptops := &invoice.Invoice{
		ID:           id.New(),
		Number:       "ALI-2024-001",
		Date:         date(2024, time.November, 15),
		CustomerID:   abcID,
		CustomerName: abc.Name,
		Type:         invoice.TypePurchase,
		Status:       invoice.StatusDraft,
		Items: []invoice.Line{{
			Description: "Laptop Bilgisayar",
			Quantity:    types.NewMoneyFromInt(5),
			UnitPrice:   types.NewMoneyFromInt(1700),
			VATRate:     types.NewMoneyFromInt(18),
		}},
	}

	materials := &invoice.Invoice{
		ID:           id.New(),
		Number:       "ALI-2024-002",
		Date:         date(2024, time.November, 14),
		CustomerID:   xyzID,
		CustomerName: xyz.Name,
		Type:         invoice.TypePurchase,
		Status:       invoice.StatusPaid,
		Items: []invoice.Line{{
			Description: "İnşaat Malzemesi",
			Quantity:    types.NewMoneyFromInt(10),
			UnitPrice:   types.NewMoneyFromInt(1575),
			VATRate:     types.NewMoneyFromInt(18),
		}},
	}

	for _, inv := range []*invoice.Invoice{laptops, materials} {
		inv.AssignLineIDs()
		inv.RecalculateTotals()
		if err := invoices.Create(ctx, inv); err != nil {
			return err
		}
	}

	return seqs.Advance(ctx, "ALI_2024", 2)
}
