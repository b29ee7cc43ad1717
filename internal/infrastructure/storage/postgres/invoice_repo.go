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
	"defter/internal/core/types"
	"defter/internal/domain/documents/invoice"
)

const (
	invoicesTable     = "invoices"
	invoiceLinesTable = "invoice_lines"
)

var invoiceCols = []string{
	"id", "number", "date", "customer_id", "customer_name",
	"type", "status", "subtotal", "total_vat", "grand_total",
}

// lineRow is the invoice_lines table shape. The domain Line has no invoice
// reference of its own, the table part belongs to the document.
type lineRow struct {
	InvoiceID   id.ID       `db:"invoice_id"`
	LineID      string      `db:"line_id"`
	LineNo      int         `db:"line_no"`
	Description string      `db:"description"`
	Quantity    types.Money `db:"quantity"`
	UnitPrice   types.Money `db:"unit_price"`
	VATRate     types.Money `db:"vat_rate"`
	Total       types.Money `db:"total"`
}

func (lr lineRow) toLine() invoice.Line {
	return invoice.Line{
		LineID:      lr.LineID,
		Description: lr.Description,
		Quantity:    lr.Quantity,
		UnitPrice:   lr.UnitPrice,
		VATRate:     lr.VATRate,
		Total:       lr.Total,
	}
}

// InvoiceRepo implements invoice.Repository on PostgreSQL.
type InvoiceRepo struct {
	txm *TxManager
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txm *TxManager) *InvoiceRepo {
	return &InvoiceRepo{txm: txm}
}

func (r *InvoiceRepo) baseSelect() squirrel.SelectBuilder {
	return builder().Select(invoiceCols...).From(invoicesTable)
}

// List returns all invoices in creation order, lines included.
func (r *InvoiceRepo) List(ctx context.Context) ([]*invoice.Invoice, error) {
	sql, args, err := r.baseSelect().OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var out []*invoice.Invoice
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	lineSQL, lineArgs, err := builder().
		Select("invoice_id", "line_id", "line_no", "description", "quantity", "unit_price", "vat_rate", "total").
		From(invoiceLinesTable).
		OrderBy("invoice_id", "line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build line select: %w", err)
	}

	var rows []lineRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, lineSQL, lineArgs...); err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}

	byInvoice := make(map[id.ID][]invoice.Line, len(out))
	for _, lr := range rows {
		byInvoice[lr.InvoiceID] = append(byInvoice[lr.InvoiceID], lr.toLine())
	}
	for _, inv := range out {
		inv.Items = byInvoice[inv.ID]
	}
	return out, nil
}

// GetByID retrieves an invoice with its lines.
func (r *InvoiceRepo) GetByID(ctx context.Context, iid id.ID) (*invoice.Invoice, error) {
	sql, args, err := r.baseSelect().Where(squirrel.Eq{"id": iid}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var inv invoice.Invoice
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &inv, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("invoice", iid.String())
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	lines, err := r.getLines(ctx, iid)
	if err != nil {
		return nil, err
	}
	inv.Items = lines
	return &inv, nil
}

func (r *InvoiceRepo) getLines(ctx context.Context, iid id.ID) ([]invoice.Line, error) {
	sql, args, err := builder().
		Select("invoice_id", "line_id", "line_no", "description", "quantity", "unit_price", "vat_rate", "total").
		From(invoiceLinesTable).
		Where(squirrel.Eq{"invoice_id": iid}).
		OrderBy("line_no").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build line select: %w", err)
	}

	var rows []lineRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}

	lines := make([]invoice.Line, 0, len(rows))
	for _, lr := range rows {
		lines = append(lines, lr.toLine())
	}
	return lines, nil
}

// Create inserts a new invoice with its lines in one transaction.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		sql, args, err := builder().
			Insert(invoicesTable).
			Columns(invoiceCols...).
			Values(inv.ID, inv.Number, inv.Date, inv.CustomerID, inv.CustomerName,
				inv.Type, inv.Status, inv.Subtotal, inv.TotalVAT, inv.GrandTotal).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("insert invoice: %w", err)
		}
		return r.insertLines(ctx, inv)
	})
}

// Update replaces the stored invoice and its lines in one transaction.
func (r *InvoiceRepo) Update(ctx context.Context, inv *invoice.Invoice) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		sql, args, err := builder().
			Update(invoicesTable).
			SetMap(map[string]any{
				"date":          inv.Date,
				"customer_id":   inv.CustomerID,
				"customer_name": inv.CustomerName,
				"type":          inv.Type,
				"status":        inv.Status,
				"subtotal":      inv.Subtotal,
				"total_vat":     inv.TotalVAT,
				"grand_total":   inv.GrandTotal,
			}).
			Where(squirrel.Eq{"id": inv.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update: %w", err)
		}

		result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperror.NewNotFound("invoice", inv.ID.String())
		}

		delSQL, delArgs, err := builder().
			Delete(invoiceLinesTable).
			Where(squirrel.Eq{"invoice_id": inv.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build line delete: %w", err)
		}
		if _, err := r.txm.GetQuerier(ctx).Exec(ctx, delSQL, delArgs...); err != nil {
			return fmt.Errorf("delete invoice lines: %w", err)
		}
		return r.insertLines(ctx, inv)
	})
}

func (r *InvoiceRepo) insertLines(ctx context.Context, inv *invoice.Invoice) error {
	if len(inv.Items) == 0 {
		return nil
	}

	q := builder().
		Insert(invoiceLinesTable).
		Columns("invoice_id", "line_id", "line_no", "description", "quantity", "unit_price", "vat_rate", "total")
	for i, line := range inv.Items {
		q = q.Values(inv.ID, line.LineID, i+1, line.Description, line.Quantity, line.UnitPrice, line.VATRate, line.Total)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build line insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice lines: %w", err)
	}
	return nil
}

// Delete removes an invoice and reports whether a record existed.
// Lines are removed by the ON DELETE CASCADE constraint.
func (r *InvoiceRepo) Delete(ctx context.Context, iid id.ID) (bool, error) {
	sql, args, err := builder().
		Delete(invoicesTable).
		Where(squirrel.Eq{"id": iid}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("delete invoice: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// Count returns the total number of invoices.
func (r *InvoiceRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, "SELECT COUNT(*) FROM invoices").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// CountByType returns the number of invoices of one type.
func (r *InvoiceRepo) CountByType(ctx context.Context, t invoice.Type) (int64, error) {
	var n int64
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, "SELECT COUNT(*) FROM invoices WHERE type = $1", string(t)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoices by type: %w", err)
	}
	return n, nil
}

var _ invoice.Repository = (*InvoiceRepo)(nil)
