package dto

import (
	"defter/internal/core/apperror"
	"defter/internal/core/id"
	"defter/internal/core/types"
	"defter/internal/domain/documents/invoice"
)

// --- Request DTOs ---

// LineRequest is one line item in a create/update request. The line id and
// total are system-derived and not accepted here.
type LineRequest struct {
	Description string      `json:"description" binding:"required"`
	Quantity    types.Money `json:"quantity" binding:"required"`
	UnitPrice   types.Money `json:"unitPrice"`
	VATRate     types.Money `json:"vatRate"`
}

func (r LineRequest) toLine() invoice.Line {
	return invoice.Line{
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		VATRate:     r.VATRate,
	}
}

// CreateInvoiceRequest is the request body for creating an invoice.
// Number and the three totals are system-owned and not accepted here.
type CreateInvoiceRequest struct {
	Date         string         `json:"date" binding:"required"`
	CustomerID   string         `json:"customerId" binding:"required"`
	CustomerName string         `json:"customerName" binding:"required"`
	Type         invoice.Type   `json:"type" binding:"required"`
	Status       invoice.Status `json:"status"`
	Items        []LineRequest  `json:"items" binding:"required,min=1"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateInvoiceRequest) ToEntity() (*invoice.Invoice, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, apperror.NewValidation("invalid customer id format").
			WithDetail("field", "customerId")
	}

	inv := invoice.New(r.Type, customerID, r.CustomerName, date)
	if r.Status != "" {
		inv.Status = r.Status
	}
	for _, line := range r.Items {
		inv.Items = append(inv.Items, line.toLine())
	}
	return inv, nil
}

// UpdateInvoiceRequest is the request body for a partial invoice update.
// Absent fields leave the stored value untouched; the document number is
// immutable and never accepted.
type UpdateInvoiceRequest struct {
	Date         *string         `json:"date"`
	CustomerID   *string         `json:"customerId"`
	CustomerName *string         `json:"customerName"`
	Type         *invoice.Type   `json:"type"`
	Status       *invoice.Status `json:"status"`
	Items        *[]LineRequest  `json:"items"`
}

// ToPatch converts the request to a domain patch.
func (r *UpdateInvoiceRequest) ToPatch() (invoice.Patch, error) {
	p := invoice.Patch{
		CustomerName: r.CustomerName,
		Type:         r.Type,
		Status:       r.Status,
	}

	if r.Date != nil {
		t, err := ParseDate(*r.Date)
		if err != nil {
			return invoice.Patch{}, err
		}
		p.Date = &t
	}

	if r.CustomerID != nil {
		cid, err := id.Parse(*r.CustomerID)
		if err != nil {
			return invoice.Patch{}, apperror.NewValidation("invalid customer id format").
				WithDetail("field", "customerId")
		}
		p.CustomerID = &cid
	}

	if r.Items != nil {
		lines := make([]invoice.Line, 0, len(*r.Items))
		for _, line := range *r.Items {
			lines = append(lines, line.toLine())
		}
		p.Items = &lines
	}

	return p, nil
}

// --- Response DTOs ---

// LineResponse is one line item in an invoice response.
type LineResponse struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Quantity    types.Money `json:"quantity"`
	UnitPrice   types.Money `json:"unitPrice"`
	VATRate     types.Money `json:"vatRate"`
	Total       types.Money `json:"total"`
}

// InvoiceResponse is the response body for an invoice.
type InvoiceResponse struct {
	ID           string         `json:"id"`
	Number       string         `json:"number"`
	Date         string         `json:"date"`
	CustomerID   string         `json:"customerId"`
	CustomerName string         `json:"customerName"`
	Type         invoice.Type   `json:"type"`
	Status       invoice.Status `json:"status"`
	Subtotal     types.Money    `json:"subtotal"`
	TotalVAT     types.Money    `json:"totalVat"`
	GrandTotal   types.Money    `json:"grandTotal"`
	Items        []LineResponse `json:"items"`
}

// FromInvoice creates response DTO from domain entity.
func FromInvoice(inv *invoice.Invoice) *InvoiceResponse {
	items := make([]LineResponse, len(inv.Items))
	for i, line := range inv.Items {
		items[i] = LineResponse{
			ID:          line.LineID,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			VATRate:     line.VATRate,
			Total:       line.Total,
		}
	}

	return &InvoiceResponse{
		ID:           inv.ID.String(),
		Number:       inv.Number,
		Date:         FormatDate(inv.Date),
		CustomerID:   inv.CustomerID.String(),
		CustomerName: inv.CustomerName,
		Type:         inv.Type,
		Status:       inv.Status,
		Subtotal:     inv.Subtotal,
		TotalVAT:     inv.TotalVAT,
		GrandTotal:   inv.GrandTotal,
		Items:        items,
	}
}

// FromInvoices maps a list of invoices.
func FromInvoices(invoices []*invoice.Invoice) []*InvoiceResponse {
	out := make([]*InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		out[i] = FromInvoice(inv)
	}
	return out
}
