package dto

import (
	"defter/internal/core/types"
	"defter/internal/domain/catalogs/customer"
)

// --- Request DTOs ---

// CreateCustomerRequest is the request body for creating a customer.
// Identifier, balance and last invoice date are system-owned and not
// accepted here.
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	TaxID   string  `json:"taxId" binding:"required"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.New(r.Name, r.TaxID)
	c.Email = r.Email
	c.Phone = r.Phone
	c.Address = r.Address
	return c
}

// UpdateCustomerRequest is the request body for a partial customer update.
// Absent fields leave the stored value untouched.
type UpdateCustomerRequest struct {
	Name            *string      `json:"name"`
	TaxID           *string      `json:"taxId"`
	Email           *string      `json:"email"`
	Phone           *string      `json:"phone"`
	Address         *string      `json:"address"`
	Balance         *types.Money `json:"balance"`
	LastInvoiceDate *string      `json:"lastInvoiceDate"`
}

// ToPatch converts the request to a domain patch.
func (r *UpdateCustomerRequest) ToPatch() (customer.Patch, error) {
	p := customer.Patch{
		Name:    r.Name,
		TaxID:   r.TaxID,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Balance: r.Balance,
	}
	if r.LastInvoiceDate != nil {
		t, err := ParseDate(*r.LastInvoiceDate)
		if err != nil {
			return customer.Patch{}, err
		}
		p.LastInvoiceDate = &t
	}
	return p, nil
}

// --- Response DTOs ---

// CustomerResponse is the response body for a customer.
type CustomerResponse struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	TaxID           string      `json:"taxId"`
	Email           *string     `json:"email,omitempty"`
	Phone           *string     `json:"phone,omitempty"`
	Address         *string     `json:"address,omitempty"`
	Balance         types.Money `json:"balance"`
	LastInvoiceDate *string     `json:"lastInvoiceDate,omitempty"`
}

// FromCustomer creates response DTO from domain entity.
func FromCustomer(c *customer.Customer) *CustomerResponse {
	resp := &CustomerResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		TaxID:   c.TaxID,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
		Balance: c.Balance,
	}
	if c.LastInvoiceDate != nil {
		d := FormatDate(*c.LastInvoiceDate)
		resp.LastInvoiceDate = &d
	}
	return resp
}

// FromCustomers maps a list of customers.
func FromCustomers(customers []*customer.Customer) []*CustomerResponse {
	out := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = FromCustomer(c)
	}
	return out
}
