package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defter/internal/core/apperror"
	"defter/internal/core/id"
	"defter/internal/core/types"
)

type fakeRepo struct {
	byID  map[id.ID]*Customer
	order []id.ID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[id.ID]*Customer)}
}

func (r *fakeRepo) List(ctx context.Context) ([]*Customer, error) {
	out := make([]*Customer, 0, len(r.order))
	for _, cid := range r.order {
		out = append(out, r.byID[cid])
	}
	return out, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, cid id.ID) (*Customer, error) {
	c, ok := r.byID[cid]
	if !ok {
		return nil, apperror.NewNotFound("customer", cid.String())
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) Create(ctx context.Context, c *Customer) error {
	r.byID[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, c *Customer) error {
	if _, ok := r.byID[c.ID]; !ok {
		return apperror.NewNotFound("customer", c.ID.String())
	}
	r.byID[c.ID] = c
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, cid id.ID) (bool, error) {
	if _, ok := r.byID[cid]; !ok {
		return false, nil
	}
	delete(r.byID, cid)
	for i, oid := range r.order {
		if oid == cid {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *fakeRepo) ExistsByTaxID(ctx context.Context, taxID string, excludeID id.ID) (bool, error) {
	for _, c := range r.byID {
		if c.TaxID == taxID && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

func TestServiceCreate_GeneratesIDAndZeroBalance(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	in := New("ABC Teknoloji", "1234567890")
	in.Balance = types.NewMoneyFromInt(9999) // caller input is discarded
	staleID := in.ID

	created, err := svc.Create(ctx, in)
	require.NoError(t, err)

	assert.False(t, id.IsNil(created.ID))
	assert.NotEqual(t, staleID, created.ID)
	assert.True(t, created.Balance.IsZero())
	assert.Nil(t, created.LastInvoiceDate)
}

func TestServiceCreate_DuplicateTaxID(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, New("ABC Teknoloji", "1234567890"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, New("Başka Firma", "1234567890"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
}

func TestServiceCreate_Invalid(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), New("", "1234567890"))
	require.Error(t, err)
	assert.True(t, apperror.IsAppError(err))
}

func TestServiceUpdate_PartialPatch(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, New("ABC Teknoloji", "1234567890"))
	require.NoError(t, err)

	phone := "0532 123 45 67"
	updated, err := svc.Update(ctx, created.ID, Patch{Phone: &phone})
	require.NoError(t, err)

	assert.Equal(t, "ABC Teknoloji", updated.Name)
	assert.Equal(t, "1234567890", updated.TaxID)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
}

func TestServiceUpdate_TaxIDCollision(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, New("ABC Teknoloji", "1234567890"))
	require.NoError(t, err)

	second, err := svc.Create(ctx, New("XYZ İnşaat", "9876543210"))
	require.NoError(t, err)

	taken := "1234567890"
	_, err = svc.Update(ctx, second.ID, Patch{TaxID: &taken})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)

	// re-submitting your own tax id is not a collision
	own := "9876543210"
	_, err = svc.Update(ctx, second.ID, Patch{TaxID: &own})
	assert.NoError(t, err)
}

func TestServiceDelete(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, New("ABC Teknoloji", "1234567890"))
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = svc.GetByID(ctx, created.ID)
	assert.True(t, apperror.IsNotFound(err))
}
