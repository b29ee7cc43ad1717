package customer

import (
	"context"

	"defter/internal/core/id"
)

// Repository defines the interface for Customer persistence.
// Implementations must signal a missing record with apperror.CodeNotFound.
type Repository interface {
	// List returns all customers in creation order.
	List(ctx context.Context) ([]*Customer, error)

	// GetByID retrieves a customer by ID.
	GetByID(ctx context.Context, id id.ID) (*Customer, error)

	// Create inserts a new customer.
	Create(ctx context.Context, c *Customer) error

	// Update replaces the stored customer.
	Update(ctx context.Context, c *Customer) error

	// Delete removes a customer by ID and reports whether a record existed.
	Delete(ctx context.Context, id id.ID) (bool, error)

	// ExistsByTaxID checks whether another customer already uses the tax id.
	ExistsByTaxID(ctx context.Context, taxID string, excludeID id.ID) (bool, error)

	// Count returns the number of customers.
	Count(ctx context.Context) (int64, error)
}
