package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defter/internal/core/apperror"
	"defter/internal/core/id"
	"defter/internal/core/types"
	"defter/internal/domain/documents/invoice"
)

func testInvoice(number string, invType invoice.Type) *invoice.Invoice {
	inv := invoice.New(invType, id.New(), "ABC Teknoloji", time.Date(2024, 11, 15, 0, 0, 0, 0, time.UTC))
	inv.Number = number
	inv.Items = []invoice.Line{{
		Description: "Laptop Bilgisayar",
		Quantity:    types.NewMoneyFromInt(5),
		UnitPrice:   types.NewMoneyFromInt(1700),
		VATRate:     types.NewMoneyFromInt(18),
	}}
	inv.AssignLineIDs()
	inv.RecalculateTotals()
	return inv
}

func TestInvoiceRepo_CreateGet(t *testing.T) {
	repo := NewInvoiceRepo()
	ctx := context.Background()

	inv := testInvoice("ALI-2024-001", invoice.TypePurchase)
	require.NoError(t, repo.Create(ctx, inv))

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "ALI-2024-001", got.Number)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "8500", got.Subtotal.String())
	assert.Equal(t, "10030", got.GrandTotal.String())
}

func TestInvoiceRepo_StoreOwnsItems(t *testing.T) {
	repo := NewInvoiceRepo()
	ctx := context.Background()

	inv := testInvoice("ALI-2024-001", invoice.TypePurchase)
	require.NoError(t, repo.Create(ctx, inv))

	inv.Items[0].Description = "mutated"

	got, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop Bilgisayar", got.Items[0].Description)

	got.Items[0].Description = "mutated again"
	again, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop Bilgisayar", again.Items[0].Description)
}

func TestInvoiceRepo_Delete(t *testing.T) {
	repo := NewInvoiceRepo()
	ctx := context.Background()

	inv := testInvoice("ALI-2024-001", invoice.TypePurchase)
	require.NoError(t, repo.Create(ctx, inv))

	deleted, err := repo.Delete(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, inv.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.GetByID(ctx, inv.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestInvoiceRepo_CountByType(t *testing.T) {
	repo := NewInvoiceRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testInvoice("ALI-2024-001", invoice.TypePurchase)))
	require.NoError(t, repo.Create(ctx, testInvoice("ALI-2024-002", invoice.TypePurchase)))
	require.NoError(t, repo.Create(ctx, testInvoice("SAT-2024-001", invoice.TypeSales)))

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	purchases, err := repo.CountByType(ctx, invoice.TypePurchase)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purchases)

	sales, err := repo.CountByType(ctx, invoice.TypeSales)
	require.NoError(t, err)
	assert.Equal(t, int64(1), sales)
}

func TestSequences(t *testing.T) {
	seqs := NewSequences()
	ctx := context.Background()

	n, err := seqs.Next(ctx, "ALI_2024")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, seqs.Advance(ctx, "ALI_2024", 5))
	n, err = seqs.Next(ctx, "ALI_2024")
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)

	// Advance never moves a counter backwards
	require.NoError(t, seqs.Advance(ctx, "ALI_2024", 2))
	n, err = seqs.Next(ctx, "ALI_2024")
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
