// Package customer provides the Customer catalog.
// Customers are the business partners invoices are issued to or received from.
package customer

import (
	"context"
	"regexp"
	"time"

	"defter/internal/core/apperror"
	"defter/internal/core/id"
	"defter/internal/core/types"
)

// Pre-compiled regex patterns for validation
var (
	taxIDRE = regexp.MustCompile(`^[0-9]{10,11}$`)
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Customer represents a business partner.
type Customer struct {
	// ID is the primary key (UUIDv7), immutable after creation
	ID id.ID `db:"id" json:"id"`

	// Name is the display name
	Name string `db:"name" json:"name"`

	// TaxID is the tax/national identifier: 10 digits for companies,
	// 11 for individuals
	TaxID string `db:"tax_id" json:"taxId"`

	// Optional contact details
	Email   *string `db:"email" json:"email,omitempty"`
	Phone   *string `db:"phone" json:"phone,omitempty"`
	Address *string `db:"address" json:"address,omitempty"`

	// Balance is the running account balance. Positive means the customer
	// owes us, negative means we owe them. Maintained outside this core.
	Balance types.Money `db:"balance" json:"balance"`

	// LastInvoiceDate is the issue date of the most recent invoice, if any
	LastInvoiceDate *time.Time `db:"last_invoice_date" json:"lastInvoiceDate,omitempty"`
}

// New creates a Customer with a generated ID and zero balance.
func New(name, taxID string) *Customer {
	return &Customer{
		ID:      id.New(),
		Name:    name,
		TaxID:   taxID,
		Balance: types.Zero(),
	}
}

// Validate checks entity invariants.
func (c *Customer) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}

	if !taxIDRE.MatchString(c.TaxID) {
		return apperror.NewValidation("tax id must be 10 or 11 digits").
			WithDetail("field", "taxId")
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

// Patch is an explicit optional-field update: only non-nil fields are
// applied, so a caller can never clear a field by accident. Balance and
// LastInvoiceDate are touched only when explicitly included.
type Patch struct {
	Name            *string
	TaxID           *string
	Email           *string
	Phone           *string
	Address         *string
	Balance         *types.Money
	LastInvoiceDate *time.Time
}

// Apply merges the patch onto the customer.
func (p Patch) Apply(c *Customer) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.TaxID != nil {
		c.TaxID = *p.TaxID
	}
	if p.Email != nil {
		c.Email = p.Email
	}
	if p.Phone != nil {
		c.Phone = p.Phone
	}
	if p.Address != nil {
		c.Address = p.Address
	}
	if p.Balance != nil {
		c.Balance = *p.Balance
	}
	if p.LastInvoiceDate != nil {
		c.LastInvoiceDate = p.LastInvoiceDate
	}
}
