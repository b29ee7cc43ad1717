package customer

import (
	"context"
	"fmt"

	"defter/internal/core/apperror"
	"defter/internal/core/id"
	"defter/internal/core/types"
)

// Service provides business logic for the Customer catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new customer. The ID is always generated
// here and the balance starts at zero regardless of caller input.
func (s *Service) Create(ctx context.Context, c *Customer) (*Customer, error) {
	c.ID = id.New()
	c.Balance = types.Zero()
	c.LastInvoiceDate = nil

	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByTaxID(ctx, c.TaxID, c.ID)
	if err != nil {
		return nil, fmt.Errorf("check tax id: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("customer", "taxId", c.TaxID)
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

// GetByID retrieves a customer by ID.
func (s *Service) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", customerID.String())
		}
		return nil, err
	}
	return c, nil
}

// List returns all customers in creation order.
func (s *Service) List(ctx context.Context) ([]*Customer, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update to an existing customer.
func (s *Service) Update(ctx context.Context, customerID id.ID, patch Patch) (*Customer, error) {
	c, err := s.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	patch.Apply(c)

	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	if patch.TaxID != nil {
		exists, err := s.repo.ExistsByTaxID(ctx, c.TaxID, c.ID)
		if err != nil {
			return nil, fmt.Errorf("check tax id: %w", err)
		}
		if exists {
			return nil, apperror.NewDuplicate("customer", "taxId", c.TaxID)
		}
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return c, nil
}

// Delete removes a customer and reports whether a record existed.
// Invoices referencing the customer are kept: they carry their own
// name snapshot.
func (s *Service) Delete(ctx context.Context, customerID id.ID) (bool, error) {
	return s.repo.Delete(ctx, customerID)
}
