package invoice

import (
	"context"
	"testing"
	"time"

	"defter/internal/core/id"
	"defter/internal/core/types"
)

func line(desc string, qty, price, vat int64) Line {
	return Line{
		Description: desc,
		Quantity:    types.NewMoneyFromInt(qty),
		UnitPrice:   types.NewMoneyFromInt(price),
		VATRate:     types.NewMoneyFromInt(vat),
	}
}

func validInvoice(items ...Line) *Invoice {
	inv := New(TypePurchase, id.New(), "ABC Teknoloji", time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC))
	inv.Items = items
	return inv
}

func TestRecalculateTotals(t *testing.T) {
	tests := []struct {
		name       string
		items      []Line
		subtotal   string
		totalVAT   string
		grandTotal string
	}{
		{
			name:       "single line 18 percent",
			items:      []Line{line("Laptop Bilgisayar", 5, 1700, 18)},
			subtotal:   "8500",
			totalVAT:   "1530",
			grandTotal: "10030",
		},
		{
			name:       "single line larger quantity",
			items:      []Line{line("İnşaat Malzemesi", 10, 1575, 18)},
			subtotal:   "15750",
			totalVAT:   "2835",
			grandTotal: "18585",
		},
		{
			name:       "zero vat contributes nothing",
			items:      []Line{line("Kitap", 3, 100, 0)},
			subtotal:   "300",
			totalVAT:   "0",
			grandTotal: "300",
		},
		{
			name: "mixed rates sum per line",
			items: []Line{
				line("Laptop Bilgisayar", 5, 1700, 18),
				line("Kitap", 3, 100, 0),
			},
			subtotal:   "8800",
			totalVAT:   "1530",
			grandTotal: "10330",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := validInvoice(tt.items...)
			inv.RecalculateTotals()

			if got := inv.Subtotal.String(); got != tt.subtotal {
				t.Errorf("subtotal = %s, want %s", got, tt.subtotal)
			}
			if got := inv.TotalVAT.String(); got != tt.totalVAT {
				t.Errorf("totalVat = %s, want %s", got, tt.totalVAT)
			}
			if got := inv.GrandTotal.String(); got != tt.grandTotal {
				t.Errorf("grandTotal = %s, want %s", got, tt.grandTotal)
			}
			if !inv.GrandTotal.Equal(inv.Subtotal.Add(inv.TotalVAT)) {
				t.Error("grandTotal != subtotal + totalVat")
			}
		})
	}
}

func TestRecalculateTotals_FractionalQuantity(t *testing.T) {
	inv := validInvoice(Line{
		Description: "Kablo",
		Quantity:    types.MustMoney("2.5"),
		UnitPrice:   types.MustMoney("10.40"),
		VATRate:     types.NewMoneyFromInt(18),
	})
	inv.RecalculateTotals()

	if got := inv.Subtotal.String(); got != "26" {
		t.Errorf("subtotal = %s, want 26", got)
	}
	if got := inv.TotalVAT.String(); got != "4.68" {
		t.Errorf("totalVat = %s, want 4.68", got)
	}
	if got := inv.GrandTotal.String(); got != "30.68" {
		t.Errorf("grandTotal = %s, want 30.68", got)
	}
}

func TestAssignLineIDs(t *testing.T) {
	inv := validInvoice(
		line("first", 1, 10, 18),
		line("second", 2, 20, 18),
		line("third", 3, 30, 18),
	)
	inv.AssignLineIDs()

	for i, want := range []string{"1", "2", "3"} {
		if inv.Items[i].LineID != want {
			t.Errorf("items[%d].LineID = %s, want %s", i, inv.Items[i].LineID, want)
		}
	}
	// line totals follow from quantity and price, caller input is discarded
	if got := inv.Items[1].Total.String(); got != "40" {
		t.Errorf("items[1].Total = %s, want 40", got)
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(inv *Invoice)
		wantErr bool
	}{
		{"valid", func(inv *Invoice) {}, false},
		{"bad type", func(inv *Invoice) { inv.Type = "refund" }, true},
		{"bad status", func(inv *Invoice) { inv.Status = "void" }, true},
		{"zero date", func(inv *Invoice) { inv.Date = time.Time{} }, true},
		{"nil customer", func(inv *Invoice) { inv.CustomerID = id.Nil() }, true},
		{"no items", func(inv *Invoice) { inv.Items = nil }, true},
		{"empty description", func(inv *Invoice) { inv.Items[0].Description = "" }, true},
		{"zero quantity", func(inv *Invoice) { inv.Items[0].Quantity = types.Zero() }, true},
		{"negative price", func(inv *Invoice) { inv.Items[0].UnitPrice = types.NewMoneyFromInt(-1) }, true},
		{"vat above 100", func(inv *Invoice) { inv.Items[0].VATRate = types.NewMoneyFromInt(101) }, true},
		{"negative vat", func(inv *Invoice) { inv.Items[0].VATRate = types.NewMoneyFromInt(-1) }, true},
		{"vat boundary 100", func(inv *Invoice) { inv.Items[0].VATRate = types.NewMoneyFromInt(100) }, false},
		{"free line", func(inv *Invoice) { inv.Items[0].UnitPrice = types.Zero() }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := validInvoice(line("Laptop Bilgisayar", 5, 1700, 18))
			tt.mutate(inv)

			err := inv.Validate(ctx)
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPatchApply(t *testing.T) {
	inv := validInvoice(line("Laptop Bilgisayar", 5, 1700, 18))
	inv.AssignLineIDs()
	inv.RecalculateTotals()

	paid := StatusPaid
	if replaced := (Patch{Status: &paid}).Apply(inv); replaced {
		t.Error("status-only patch reported items replaced")
	}
	if inv.Status != StatusPaid {
		t.Errorf("status = %s, want paid", inv.Status)
	}
	if got := inv.GrandTotal.String(); got != "10030" {
		t.Errorf("grandTotal changed to %s on status patch", got)
	}

	items := []Line{line("Kitap", 3, 100, 0)}
	if replaced := (Patch{Items: &items}).Apply(inv); !replaced {
		t.Error("items patch did not report items replaced")
	}
	if len(inv.Items) != 1 || inv.Items[0].Description != "Kitap" {
		t.Errorf("items not replaced: %+v", inv.Items)
	}
}

func TestNumberPrefix(t *testing.T) {
	if got := NumberPrefix(TypeSales); got != "SAT" {
		t.Errorf("sales prefix = %s, want SAT", got)
	}
	if got := NumberPrefix(TypePurchase); got != "ALI" {
		t.Errorf("purchase prefix = %s, want ALI", got)
	}
}
