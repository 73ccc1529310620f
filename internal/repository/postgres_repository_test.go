package repository

import (
	"context"
	"os"
	"testing"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live database only when POSTGRES_TEST_DSN is set.
func newPostgresRepo(t *testing.T) *PostgresRepository {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}
	db, err := NewPostgresDB(dsn)
	require.NoError(t, err)
	require.NoError(t, db.Exec("TRUNCATE products, users RESTART IDENTITY").Error)
	return NewPostgresRepository(db)
}

func TestPostgres_ProductLifecycle(t *testing.T) {
	ctx := context.Background()
	r := newPostgresRepo(t)

	rec := record("tee", 2999)
	require.NoError(t, r.CreateProduct(ctx, rec))
	require.NotZero(t, rec.ID)

	assert.ErrorIs(t, r.CreateProduct(ctx, record("tee", 1)), domain.ErrDuplicateSlug)

	name := "Tee v2"
	updated, err := r.UpdateProduct(ctx, rec.ID, domain.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, int64(2999), updated.PriceCents)

	list, err := r.ListProducts(ctx, domain.ListQuery{Q: "V2"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, r.DeleteProduct(ctx, rec.ID))
	assert.ErrorIs(t, r.DeleteProduct(ctx, rec.ID), domain.ErrProductNotFound)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now`, escapeLike("50% off_now"))
}
