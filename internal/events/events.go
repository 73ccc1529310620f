package events

import (
	"context"
	"time"

	"github.com/cloud-wave-best-zizon/storefront-service/internal/domain"
)

type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

// ProductEvent is published after a catalog mutation is committed.
type ProductEvent struct {
	EventID   string                `json:"event_id"`
	Type      ProductEventType      `json:"type"`
	ProductID int64                 `json:"product_id"`
	Product   *domain.ProductRecord `json:"product,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
	RequestID string                `json:"request_id,omitempty"`
}

type Publisher interface {
	PublishProductEvent(ctx context.Context, event ProductEvent) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// NopPublisher drops events. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishProductEvent(context.Context, ProductEvent) error { return nil }
func (NopPublisher) HealthCheck(context.Context) error                       { return nil }
func (NopPublisher) Close() error                                            { return nil }
