package service

import (
	"context"
	"strings"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"github.com/cloud-wave-best-zizon/storefront-service/internal/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductRepository interface {
	ListProducts(ctx context.Context, q domain.ListQuery) ([]domain.ProductRecord, error)
	GetProduct(ctx context.Context, id int64) (*domain.ProductRecord, error)
	CreateProduct(ctx context.Context, rec *domain.ProductRecord) error
	UpdateProduct(ctx context.Context, id int64, patch domain.UpdateProductRequest) (*domain.ProductRecord, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type ProductService struct {
	repo      ProductRepository
	publisher events.Publisher
	logger    *zap.Logger
}

func NewProductService(repo ProductRepository, publisher events.Publisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *ProductService) List(ctx context.Context, q domain.ListQuery) ([]domain.ProductRecord, error) {
	q.Q = strings.TrimSpace(q.Q)
	q.Category = strings.TrimSpace(q.Category)
	q.Sort = domain.ParseSortOrder(string(q.Sort))
	return s.repo.ListProducts(ctx, q)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.ProductRecord, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, req domain.CreateProductRequest, requestID string) (*domain.ProductRecord, error) {
	rec, err := validateCreate(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateProduct(ctx, rec); err != nil {
		s.logger.Error("Failed to save product",
			zap.String("slug", rec.Slug),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, err
	}

	s.publish(ctx, events.ProductCreated, rec.ID, rec, requestID)

	s.logger.Info("Product created successfully",
		zap.Int64("product_id", rec.ID),
		zap.String("slug", rec.Slug),
		zap.Int64("price_cents", rec.PriceCents))

	return rec, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, req domain.UpdateProductRequest, requestID string) (*domain.ProductRecord, error) {
	patch, err := validateUpdate(req)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.UpdateProduct(ctx, id, patch)
	if err != nil {
		s.logger.Error("Failed to update product",
			zap.Int64("product_id", id),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, err
	}

	s.publish(ctx, events.ProductUpdated, rec.ID, rec, requestID)

	s.logger.Info("Product updated successfully", zap.Int64("product_id", id))
	return rec, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64, requestID string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		s.logger.Error("Failed to delete product",
			zap.Int64("product_id", id),
			zap.String("request_id", requestID),
			zap.Error(err))
		return err
	}

	s.publish(ctx, events.ProductDeleted, id, nil, requestID)

	s.logger.Info("Product deleted successfully", zap.Int64("product_id", id))
	return nil
}

// SeedDefaults fills an empty catalog with the starter products.
func (s *ProductService) SeedDefaults(ctx context.Context) (int, error) {
	existing, err := s.repo.ListProducts(ctx, domain.ListQuery{})
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	seeded := 0
	for _, p := range domain.DefaultProducts() {
		rec := domain.NewProductRecord(p)
		if err := s.repo.CreateProduct(ctx, &rec); err != nil {
			return seeded, err
		}
		seeded++
	}
	s.logger.Info("Catalog seeded", zap.Int("products", seeded))
	return seeded, nil
}

// publish is best effort: the mutation is already committed.
func (s *ProductService) publish(ctx context.Context, typ events.ProductEventType, id int64, rec *domain.ProductRecord, requestID string) {
	event := events.ProductEvent{
		EventID:   uuid.New().String(),
		Type:      typ,
		ProductID: id,
		Product:   rec,
		Timestamp: time.Now(),
		RequestID: requestID,
	}
	if err := s.publisher.PublishProductEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish event",
			zap.Int64("product_id", id),
			zap.String("type", string(typ)),
			zap.Error(err))
	}
}
