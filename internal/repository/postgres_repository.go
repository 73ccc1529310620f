package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresRepository is the relational backend.
type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgresDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.AutoMigrate(&domain.ProductRecord{}, &domain.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return db, nil
}

func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListProducts(ctx context.Context, q domain.ListQuery) ([]domain.ProductRecord, error) {
	tx := r.db.WithContext(ctx).Model(&domain.ProductRecord{})
	if q.Q != "" {
		like := "%" + escapeLike(q.Q) + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}

	switch q.Sort {
	case domain.SortPriceAsc:
		tx = tx.Order("price_cents ASC")
	case domain.SortPriceDesc:
		tx = tx.Order("price_cents DESC")
	case domain.SortNameAsc:
		tx = tx.Order("name ASC")
	case domain.SortNameDesc:
		tx = tx.Order("name DESC")
	default:
		tx = tx.Order("created_at DESC").Order("id DESC")
	}

	var records []domain.ProductRecord
	if err := tx.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return records, nil
}

func (r *PostgresRepository) GetProduct(ctx context.Context, id int64) (*domain.ProductRecord, error) {
	var rec domain.ProductRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *PostgresRepository) CreateProduct(ctx context.Context, rec *domain.ProductRecord) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := slugAvailable(tx, rec.Slug, 0); err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	return mapUniqueViolation(err, domain.ErrDuplicateSlug)
}

func (r *PostgresRepository) UpdateProduct(ctx context.Context, id int64, patch domain.UpdateProductRequest) (*domain.ProductRecord, error) {
	var rec domain.ProductRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProductNotFound
			}
			return err
		}
		if patch.Slug != nil && *patch.Slug != rec.Slug {
			if err := slugAvailable(tx, *patch.Slug, id); err != nil {
				return err
			}
		}
		patch.ApplyTo(&rec)
		return tx.Save(&rec).Error
	})
	if err != nil {
		return nil, mapUniqueViolation(err, domain.ErrDuplicateSlug)
	}
	return &rec, nil
}

func (r *PostgresRepository) DeleteProduct(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.ProductRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	return mapUniqueViolation(err, domain.ErrDuplicateUser)
}

func slugAvailable(tx *gorm.DB, slug string, selfID int64) error {
	var count int64
	err := tx.Model(&domain.ProductRecord{}).
		Where("slug = ? AND id <> ?", slug, selfID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrDuplicateSlug
	}
	return nil
}

// mapUniqueViolation turns a concurrent unique-index hit into the domain
// conflict error.
func mapUniqueViolation(err, conflict error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}
	return err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
