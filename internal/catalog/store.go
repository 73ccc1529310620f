// Package catalog holds the client's view of the product catalog. The
// server stays the source of truth: local state changes only after the
// server confirms a mutation.
package catalog

import (
	"context"
	"sync"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"go.uber.org/zap"
)

// Source fetches the product collection.
type Source interface {
	ListProducts(ctx context.Context, q domain.ListQuery) ([]domain.Product, error)
}

// Mutator performs confirmed catalog mutations against the server.
type Mutator interface {
	Create(ctx context.Context, form domain.ProductForm) (domain.Product, error)
	Update(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type Store struct {
	mu       sync.Mutex
	products []domain.Product

	source  Source
	mutator Mutator
	logger  *zap.Logger
}

func NewStore(source Source, mutator Mutator, logger *zap.Logger) *Store {
	return &Store{
		source:  source,
		mutator: mutator,
		logger:  logger,
	}
}

// Load fetches the full catalog once. A failed fetch is logged and leaves
// the current contents untouched; it is never returned to the caller.
func (s *Store) Load(ctx context.Context) {
	products, err := s.source.ListProducts(ctx, domain.ListQuery{})
	if err != nil {
		s.logger.Error("Failed to load products", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	s.logger.Debug("Catalog loaded", zap.Int("products", len(products)))
}

// List returns the products in server order.
func (s *Store) List() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

func (s *Store) GetByID(id int64) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (s *Store) GetBySlug(slug string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Slug == slug {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Add creates the product remotely and appends the confirmed result.
func (s *Store) Add(ctx context.Context, form domain.ProductForm) (domain.Product, error) {
	created, err := s.mutator.Create(ctx, form)
	if err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	s.products = append(s.products, created)
	s.mu.Unlock()
	return created, nil
}

// Update patches the product remotely and replaces the local entry in place.
func (s *Store) Update(ctx context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	updated, err := s.mutator.Update(ctx, id, patch)
	if err != nil {
		return domain.Product{}, err
	}

	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// Remove deletes the product remotely and drops the local entry.
func (s *Store) Remove(ctx context.Context, id int64) error {
	if err := s.mutator.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.products[:0:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()
	return nil
}
