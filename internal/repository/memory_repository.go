package repository

import (
	"context"
	"sync"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

// MemoryRepository keeps products and users in process memory. It backs
// local runs and tests.
type MemoryRepository struct {
	mu         sync.RWMutex
	products   map[int64]domain.ProductRecord
	slugs      map[string]int64
	users      map[string]domain.User
	nextID     int64
	nextUserID int64
	now        func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		products: make(map[int64]domain.ProductRecord),
		slugs:    make(map[string]int64),
		users:    make(map[string]domain.User),
		now:      time.Now,
	}
}

func (r *MemoryRepository) ListProducts(_ context.Context, q domain.ListQuery) ([]domain.ProductRecord, error) {
	r.mu.RLock()
	records := make([]domain.ProductRecord, 0, len(r.products))
	for _, rec := range r.products {
		records = append(records, rec)
	}
	r.mu.RUnlock()
	return q.Apply(records), nil
}

func (r *MemoryRepository) GetProduct(_ context.Context, id int64) (*domain.ProductRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &rec, nil
}

func (r *MemoryRepository) CreateProduct(_ context.Context, rec *domain.ProductRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.slugs[rec.Slug]; taken {
		return domain.ErrDuplicateSlug
	}
	r.nextID++
	now := r.now().UnixMilli()
	rec.ID = r.nextID
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.products[rec.ID] = *rec
	r.slugs[rec.Slug] = rec.ID
	return nil
}

func (r *MemoryRepository) UpdateProduct(_ context.Context, id int64, patch domain.UpdateProductRequest) (*domain.ProductRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	oldSlug := rec.Slug
	patch.ApplyTo(&rec)
	if rec.Slug != oldSlug {
		if _, taken := r.slugs[rec.Slug]; taken {
			return nil, domain.ErrDuplicateSlug
		}
		delete(r.slugs, oldSlug)
		r.slugs[rec.Slug] = id
	}
	rec.UpdatedAt = r.now().UnixMilli()
	r.products[id] = rec
	return &rec, nil
}

func (r *MemoryRepository) DeleteProduct(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	delete(r.slugs, rec.Slug)
	return nil
}

func (r *MemoryRepository) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) CreateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.users[user.Username]; taken {
		return domain.ErrDuplicateUser
	}
	r.nextUserID++
	user.ID = r.nextUserID
	user.CreatedAt = r.now().UnixMilli()
	r.users[user.Username] = *user
	return nil
}
