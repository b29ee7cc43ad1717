// Package memory provides in-memory repository implementations.
// The store exclusively owns its records: values are deep-copied on the
// way in and out, so callers never share mutable state with the store.
package memory

import (
	"context"
	"sync"

	"defter/internal/core/apperror"
	"defter/internal/core/id"
	"defter/internal/domain/catalogs/customer"
)

// CustomerRepo implements customer.Repository in process memory.
type CustomerRepo struct {
	mu      sync.RWMutex
	records map[id.ID]*customer.Customer
	order   []id.ID
}

// NewCustomerRepo creates an empty in-memory customer repository.
func NewCustomerRepo() *CustomerRepo {
	return &CustomerRepo{
		records: make(map[id.ID]*customer.Customer),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	cp := *c
	if c.Email != nil {
		v := *c.Email
		cp.Email = &v
	}
	if c.Phone != nil {
		v := *c.Phone
		cp.Phone = &v
	}
	if c.Address != nil {
		v := *c.Address
		cp.Address = &v
	}
	if c.LastInvoiceDate != nil {
		v := *c.LastInvoiceDate
		cp.LastInvoiceDate = &v
	}
	return &cp
}

// List returns all customers in creation order.
func (r *CustomerRepo) List(ctx context.Context) ([]*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*customer.Customer, 0, len(r.order))
	for _, cid := range r.order {
		out = append(out, copyCustomer(r.records[cid]))
	}
	return out, nil
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepo) GetByID(ctx context.Context, cid id.ID) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.records[cid]
	if !ok {
		return nil, apperror.NewNotFound("customer", cid.String())
	}
	return copyCustomer(c), nil
}

// Create inserts a new customer.
func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[c.ID]; ok {
		return apperror.NewConflict("customer already exists").WithDetail("id", c.ID.String())
	}
	r.records[c.ID] = copyCustomer(c)
	r.order = append(r.order, c.ID)
	return nil
}

// Update replaces the stored customer.
func (r *CustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[c.ID]; !ok {
		return apperror.NewNotFound("customer", c.ID.String())
	}
	r.records[c.ID] = copyCustomer(c)
	return nil
}

// Delete removes a customer and reports whether a record existed.
func (r *CustomerRepo) Delete(ctx context.Context, cid id.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[cid]; !ok {
		return false, nil
	}
	delete(r.records, cid)
	for i, oid := range r.order {
		if oid == cid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// ExistsByTaxID checks whether another customer already uses the tax id.
func (r *CustomerRepo) ExistsByTaxID(ctx context.Context, taxID string, excludeID id.ID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.records {
		if c.TaxID == taxID && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of customers.
func (r *CustomerRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.records)), nil
}

var _ customer.Repository = (*CustomerRepo)(nil)
