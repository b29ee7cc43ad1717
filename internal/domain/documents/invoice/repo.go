package invoice

import (
	"context"

	"defter/internal/core/id"
)

// Repository defines operations for invoice documents.
// Implementations must signal a missing record with apperror.CodeNotFound.
type Repository interface {
	// List returns all invoices in creation order, lines included.
	List(ctx context.Context) ([]*Invoice, error)

	// GetByID retrieves an invoice with its lines.
	GetByID(ctx context.Context, id id.ID) (*Invoice, error)

	// Create inserts a new invoice with its lines.
	Create(ctx context.Context, inv *Invoice) error

	// Update replaces the stored invoice and its lines.
	Update(ctx context.Context, inv *Invoice) error

	// Delete removes an invoice by ID and reports whether a record existed.
	Delete(ctx context.Context, id id.ID) (bool, error)

	// Count returns the total number of invoices.
	Count(ctx context.Context) (int64, error)

	// CountByType returns the number of invoices of one type.
	CountByType(ctx context.Context, t Type) (int64, error)
}
