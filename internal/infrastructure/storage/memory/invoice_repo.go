package memory

import (
	"context"
	"sync"

	"defter/internal/core/apperror"
	"defter/internal/core/id"
	"defter/internal/domain/documents/invoice"
)

// InvoiceRepo implements invoice.Repository in process memory.
type InvoiceRepo struct {
	mu      sync.RWMutex
	records map[id.ID]*invoice.Invoice
	order   []id.ID
}

// NewInvoiceRepo creates an empty in-memory invoice repository.
func NewInvoiceRepo() *InvoiceRepo {
	return &InvoiceRepo{
		records: make(map[id.ID]*invoice.Invoice),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	cp := *inv
	cp.Items = make([]invoice.Line, len(inv.Items))
	copy(cp.Items, inv.Items)
	return &cp
}

// List returns all invoices in creation order.
func (r *InvoiceRepo) List(ctx context.Context) ([]*invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*invoice.Invoice, 0, len(r.order))
	for _, iid := range r.order {
		out = append(out, copyInvoice(r.records[iid]))
	}
	return out, nil
}

// GetByID retrieves an invoice with its lines.
func (r *InvoiceRepo) GetByID(ctx context.Context, iid id.ID) (*invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.records[iid]
	if !ok {
		return nil, apperror.NewNotFound("invoice", iid.String())
	}
	return copyInvoice(inv), nil
}

// Create inserts a new invoice.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[inv.ID]; ok {
		return apperror.NewConflict("invoice already exists").WithDetail("id", inv.ID.String())
	}
	r.records[inv.ID] = copyInvoice(inv)
	r.order = append(r.order, inv.ID)
	return nil
}

// Update replaces the stored invoice.
func (r *InvoiceRepo) Update(ctx context.Context, inv *invoice.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[inv.ID]; !ok {
		return apperror.NewNotFound("invoice", inv.ID.String())
	}
	r.records[inv.ID] = copyInvoice(inv)
	return nil
}

// Delete removes an invoice and reports whether a record existed.
func (r *InvoiceRepo) Delete(ctx context.Context, iid id.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[iid]; !ok {
		return false, nil
	}
	delete(r.records, iid)
	for i, oid := range r.order {
		if oid == iid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// Count returns the total number of invoices.
func (r *InvoiceRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.records)), nil
}

// CountByType returns the number of invoices of one type.
func (r *InvoiceRepo) CountByType(ctx context.Context, t invoice.Type) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, inv := range r.records {
		if inv.Type == t {
			n++
		}
	}
	return n, nil
}

var _ invoice.Repository = (*InvoiceRepo)(nil)
