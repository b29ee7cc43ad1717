package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"defter/internal/core/apperror"
	"defter/internal/core/id"
	"defter/internal/domain/catalogs/customer"
)

const customersTable = "customers"

var customerCols = []string{
	"id", "name", "tax_id", "email", "phone", "address", "balance", "last_invoice_date",
}

// CustomerRepo implements customer.Repository on PostgreSQL.
type CustomerRepo struct {
	txm *TxManager
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *TxManager) *CustomerRepo {
	return &CustomerRepo{txm: txm}
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *CustomerRepo) baseSelect() squirrel.SelectBuilder {
	return builder().Select(customerCols...).From(customersTable)
}

// List returns all customers in creation order. IDs are UUIDv7, so
// ordering by id is ordering by creation time.
func (r *CustomerRepo) List(ctx context.Context) ([]*customer.Customer, error) {
	sql, args, err := r.baseSelect().OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var out []*customer.Customer
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return out, nil
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepo) GetByID(ctx context.Context, cid id.ID) (*customer.Customer, error) {
	sql, args, err := r.baseSelect().Where(squirrel.Eq{"id": cid}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var c customer.Customer
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &c, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("customer", cid.String())
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Create inserts a new customer.
func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	sql, args, err := builder().
		Insert(customersTable).
		Columns(customerCols...).
		Values(c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.Balance, c.LastInvoiceDate).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// Update replaces the stored customer.
func (r *CustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	sql, args, err := builder().
		Update(customersTable).
		SetMap(map[string]any{
			"name":              c.Name,
			"tax_id":            c.TaxID,
			"email":             c.Email,
			"phone":             c.Phone,
			"address":           c.Address,
			"balance":           c.Balance,
			"last_invoice_date": c.LastInvoiceDate,
		}).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", c.ID.String())
	}
	return nil
}

// Delete removes a customer and reports whether a record existed.
func (r *CustomerRepo) Delete(ctx context.Context, cid id.ID) (bool, error) {
	sql, args, err := builder().
		Delete(customersTable).
		Where(squirrel.Eq{"id": cid}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("delete customer: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// ExistsByTaxID checks whether another customer already uses the tax id.
func (r *CustomerRepo) ExistsByTaxID(ctx context.Context, taxID string, excludeID id.ID) (bool, error) {
	sql, args, err := builder().
		Select("1").
		From(customersTable).
		Where(squirrel.Eq{"tax_id": taxID}).
		Where(squirrel.NotEq{"id": excludeID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build select: %w", err)
	}

	var one int
	err = r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check tax id: %w", err)
	}
	return true, nil
}

// Count returns the number of customers.
func (r *CustomerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

var _ customer.Repository = (*CustomerRepo)(nil)
