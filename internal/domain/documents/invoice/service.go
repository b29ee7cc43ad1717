package invoice

import (
	"context"
	"fmt"

	"defter/internal/core/apperror"
	"defter/internal/core/id"
	"defter/pkg/numerator"
)

// Service provides business logic for invoice documents.
type Service struct {
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new invoice service.
func NewService(repo Repository, num *numerator.Service) *Service {
	return &Service{
		repo:      repo,
		numerator: num,
	}
}

// Create validates and persists a new invoice. The ID, document number,
// line IDs and totals are always assigned here, never taken from the caller.
func (s *Service) Create(ctx context.Context, inv *Invoice) (*Invoice, error) {
	inv.ID = id.New()
	inv.AssignLineIDs()
	inv.RecalculateTotals()

	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}

	cfg := numerator.DefaultConfig(NumberPrefix(inv.Type))
	number, err := s.numerator.Next(ctx, cfg, inv.Date)
	if err != nil {
		return nil, fmt.Errorf("assign number: %w", err)
	}
	inv.Number = number

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return inv, nil
}

// GetByID retrieves an invoice by ID.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, err
	}
	return inv, nil
}

// List returns all invoices in creation order.
func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update to an existing invoice. The document
// number is immutable. Totals are fully recomputed when the patch replaces
// the items and preserved verbatim otherwise.
func (s *Service) Update(ctx context.Context, invoiceID id.ID, patch Patch) (*Invoice, error) {
	inv, err := s.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if patch.Apply(inv) {
		inv.AssignLineIDs()
		inv.RecalculateTotals()
	}

	if err := inv.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	return inv, nil
}

// Delete removes an invoice and reports whether a record existed. Sequence
// counters are untouched, so the removed number is never reissued.
func (s *Service) Delete(ctx context.Context, invoiceID id.ID) (bool, error) {
	return s.repo.Delete(ctx, invoiceID)
}
