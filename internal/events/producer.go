package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the part of kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ProductEventProducer struct {
	writer  MessageWriter
	brokers []string
	logger  *zap.Logger
}

func NewProductEventProducer(brokers, topic string, logger *zap.Logger) *ProductEventProducer {
	addrs := strings.Split(brokers, ",")
	writer := &kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}

	return &ProductEventProducer{
		writer:  writer,
		brokers: addrs,
		logger:  logger,
	}
}

func productEventKey(id int64) []byte {
	return []byte(fmt.Sprintf("PRODUCT#%d", id))
}

func (p *ProductEventProducer) PublishProductEvent(ctx context.Context, event ProductEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal product event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   productEventKey(event.ProductID),
		Value: eventBytes,
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish product event",
			zap.String("event_id", event.EventID),
			zap.Error(err))
		return err
	}

	p.logger.Info("Product event published",
		zap.String("event_id", event.EventID),
		zap.String("type", string(event.Type)),
		zap.Int64("product_id", event.ProductID))

	return nil
}

// HealthCheck dials the first broker.
func (p *ProductEventProducer) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return err
	}
	return conn.Close()
}

func (p *ProductEventProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
