// Package invoice provides the Invoice document: purchase and sales
// invoices with VAT line items and derived totals.
package invoice

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"defter/internal/core/apperror"
	"defter/internal/core/id"
	"defter/internal/core/types"
)

// Type discriminates purchase and sales invoices.
type Type string

const (
	TypePurchase Type = "purchase"
	TypeSales    Type = "sales"
)

// Status is the payment state of an invoice.
type Status string

const (
	StatusDraft Status = "draft"
	StatusPaid  Status = "paid"
)

var vatRateMax = decimal.NewFromInt(100)

// Line is one invoice line item.
type Line struct {
	// LineID is assigned positionally at creation: "1", "2", ...
	LineID string `db:"line_id" json:"id"`

	Description string `db:"description" json:"description"`

	// Quantity must be at least 1 (integer or decimal)
	Quantity types.Money `db:"quantity" json:"quantity"`

	// UnitPrice must be non-negative
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// VATRate is a percentage, 0-100 inclusive
	VATRate types.Money `db:"vat_rate" json:"vatRate"`

	// Total is the extended amount, always recomputed, never trusted
	// from input
	Total types.Money `db:"total" json:"total"`
}

// ExtendedAmount returns quantity * unitPrice, the line's pre-tax amount.
func (l Line) ExtendedAmount() types.Money {
	return l.Quantity.Mul(l.UnitPrice)
}

// VATAmount returns the line's VAT contribution:
// quantity * unitPrice * vatRate / 100.
func (l Line) VATAmount() types.Money {
	return l.ExtendedAmount().Mul(l.VATRate).Div(vatRateMax)
}

// Invoice represents a purchase or sales invoice.
type Invoice struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Number is the human-readable document number (ALI-2024-001),
	// assigned once at creation and immutable thereafter
	Number string `db:"number" json:"number"`

	// Date is the issue date
	Date time.Time `db:"date" json:"date"`

	// Customer reference plus a denormalized name snapshot, so the
	// invoice stays readable after the customer record changes
	CustomerID   id.ID  `db:"customer_id" json:"customerId"`
	CustomerName string `db:"customer_name" json:"customerName"`

	Type   Type   `db:"type" json:"type"`
	Status Status `db:"status" json:"status"`

	// Derived totals, recomputed from Items on every create and on every
	// update that replaces the items
	Subtotal   types.Money `db:"subtotal" json:"subtotal"`
	TotalVAT   types.Money `db:"total_vat" json:"totalVat"`
	GrandTotal types.Money `db:"grand_total" json:"grandTotal"`

	// Items is the ordered table part, at least one line
	Items []Line `db:"-" json:"items"`
}

// New creates an invoice shell with a generated ID. Number and totals are
// assigned by the service.
func New(invType Type, customerID id.ID, customerName string, date time.Time) *Invoice {
	return &Invoice{
		ID:           id.New(),
		Date:         date,
		CustomerID:   customerID,
		CustomerName: customerName,
		Type:         invType,
		Status:       StatusDraft,
		Items:        make([]Line, 0),
	}
}

// AssignLineIDs numbers the lines positionally and recomputes each line
// total from quantity and unit price.
func (inv *Invoice) AssignLineIDs() {
	for i := range inv.Items {
		inv.Items[i].LineID = strconv.Itoa(i + 1)
		inv.Items[i].Total = inv.Items[i].ExtendedAmount()
	}
}

// RecalculateTotals derives subtotal, total VAT and grand total from the
// items. Summation follows item order; no rounding is applied.
func (inv *Invoice) RecalculateTotals() {
	subtotal := types.Zero()
	totalVAT := types.Zero()

	for _, line := range inv.Items {
		subtotal = subtotal.Add(line.ExtendedAmount())
		totalVAT = totalVAT.Add(line.VATAmount())
	}

	inv.Subtotal = subtotal
	inv.TotalVAT = totalVAT
	inv.GrandTotal = subtotal.Add(totalVAT)
}

// Validate checks entity invariants.
func (inv *Invoice) Validate(ctx context.Context) error {
	if inv.Type != TypePurchase && inv.Type != TypeSales {
		return apperror.NewValidation("invalid invoice type").
			WithDetail("field", "type").
			WithDetail("value", string(inv.Type))
	}

	if inv.Status != StatusDraft && inv.Status != StatusPaid {
		return apperror.NewValidation("invalid invoice status").
			WithDetail("field", "status").
			WithDetail("value", string(inv.Status))
	}

	if inv.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	if id.IsNil(inv.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if len(inv.Items) == 0 {
		return apperror.NewValidation("at least one item is required").
			WithDetail("field", "items")
	}

	for i, line := range inv.Items {
		if line.Description == "" {
			return apperror.NewValidation("description is required").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity.LessThan(decimal.NewFromInt(1)) {
			return apperror.NewValidation("quantity must be at least 1").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
		if line.VATRate.IsNegative() || line.VATRate.GreaterThan(vatRateMax) {
			return apperror.NewValidation("vat rate must be between 0 and 100").
				WithDetail("field", "items").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// Patch is an explicit optional-field update. Totals are recomputed only
// when Items is present; Number is never part of a patch.
type Patch struct {
	Date         *time.Time
	CustomerID   *id.ID
	CustomerName *string
	Type         *Type
	Status       *Status
	Items        *[]Line
}

// Apply merges the patch onto the invoice. Reports whether the items were
// replaced, in which case the caller must renumber lines and recompute
// totals.
func (p Patch) Apply(inv *Invoice) (itemsReplaced bool) {
	if p.Date != nil {
		inv.Date = *p.Date
	}
	if p.CustomerID != nil {
		inv.CustomerID = *p.CustomerID
	}
	if p.CustomerName != nil {
		inv.CustomerName = *p.CustomerName
	}
	if p.Type != nil {
		inv.Type = *p.Type
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
	if p.Items != nil {
		inv.Items = *p.Items
		itemsReplaced = true
	}
	return itemsReplaced
}

// NumberPrefix returns the document number prefix for an invoice type.
func NumberPrefix(t Type) string {
	if t == TypeSales {
		return "SAT"
	}
	return "ALI"
}
