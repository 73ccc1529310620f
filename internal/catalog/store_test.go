package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSource struct {
	products []domain.Product
	err      error
	calls    int
}

func (f *fakeSource) ListProducts(context.Context, domain.ListQuery) ([]domain.Product, error) {
	f.calls++
	return f.products, f.err
}

type fakeMutator struct {
	nextID  int64
	err     error
	created []domain.ProductForm
}

func (m *fakeMutator) Create(_ context.Context, form domain.ProductForm) (domain.Product, error) {
	if m.err != nil {
		return domain.Product{}, m.err
	}
	m.nextID++
	m.created = append(m.created, form)
	return domain.Product{ID: m.nextID, Name: form.Name, Slug: form.Slug}, nil
}

func (m *fakeMutator) Update(_ context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	if m.err != nil {
		return domain.Product{}, m.err
	}
	p := domain.Product{ID: id, Name: "patched"}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	return p, nil
}

func (m *fakeMutator) Delete(context.Context, int64) error {
	return m.err
}

func seeded() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Tee", Slug: "tee", Price: 2800, Category: domain.CategoryTops, Featured: true},
		{ID: 2, Name: "Cargo", Slug: "cargo", Price: 6200, Category: domain.CategoryBottoms},
		{ID: 3, Name: "Beanie", Slug: "beanie", Price: 1900, Category: domain.CategoryAccessories, Featured: true},
	}
}

func loadedStore(t *testing.T, m *fakeMutator) *Store {
	t.Helper()
	s := NewStore(&fakeSource{products: seeded()}, m, zap.NewNop())
	s.Load(context.Background())
	require.Equal(t, 3, s.Len())
	return s
}

func TestLoad_ServerOrderAndLookups(t *testing.T) {
	s := loadedStore(t, &fakeMutator{})

	list := s.List()
	assert.Equal(t, "tee", list[0].Slug)
	assert.Equal(t, "beanie", list[2].Slug)

	p, ok := s.GetByID(2)
	require.True(t, ok)
	assert.Equal(t, "cargo", p.Slug)

	p, ok = s.GetBySlug("beanie")
	require.True(t, ok)
	assert.Equal(t, int64(3), p.ID)

	_, ok = s.GetByID(99)
	assert.False(t, ok)
	_, ok = s.GetBySlug("nope")
	assert.False(t, ok)
}

func TestLoad_FailureLeavesStoreEmpty(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	s := NewStore(src, &fakeMutator{}, zap.NewNop())

	s.Load(context.Background())

	assert.Zero(t, s.Len())
	assert.Empty(t, s.List())
	assert.Equal(t, 1, src.calls)
}

func TestList_ReturnsCopy(t *testing.T) {
	s := loadedStore(t, &fakeMutator{})
	list := s.List()
	list[0].Name = "mutated"

	p, _ := s.GetByID(1)
	assert.Equal(t, "Tee", p.Name)
}

func TestAdd_AppendsAfterConfirmation(t *testing.T) {
	m := &fakeMutator{nextID: 10}
	s := loadedStore(t, m)

	created, err := s.Add(context.Background(), domain.ProductForm{Name: "Jacket", Slug: "jacket"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, "jacket", s.List()[3].Slug)
}

func TestMutationFailure_LeavesLocalState(t *testing.T) {
	m := &fakeMutator{err: domain.ErrDuplicateSlug}
	s := loadedStore(t, m)
	before := s.List()

	_, err := s.Add(context.Background(), domain.ProductForm{Name: "Tee", Slug: "tee"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSlug)

	m.err = domain.ErrUnauthorized
	_, err = s.Update(context.Background(), 1, domain.ProductPatch{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	m.err = domain.ErrProductNotFound
	assert.ErrorIs(t, s.Remove(context.Background(), 1), domain.ErrProductNotFound)

	assert.Equal(t, before, s.List())
}

func TestUpdate_ReplacesInPlace(t *testing.T) {
	s := loadedStore(t, &fakeMutator{})
	price := int64(999)

	updated, err := s.Update(context.Background(), 2, domain.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(999), updated.Price)

	list := s.List()
	assert.Equal(t, int64(2), list[1].ID)
	assert.Equal(t, int64(999), list[1].Price)
	assert.Equal(t, 3, len(list))
}

func TestRemove_DropsEntry(t *testing.T) {
	s := loadedStore(t, &fakeMutator{})

	require.NoError(t, s.Remove(context.Background(), 1))
	_, ok := s.GetByID(1)
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}
