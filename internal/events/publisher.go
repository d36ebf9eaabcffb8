package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"dealsync/internal/logger"
	"dealsync/internal/promo"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Topic carries one event per handled product webhook.
const Topic = "reconciliation-events"

// TypeReconciled is the event type emitted after a reconciliation pass.
const TypeReconciled = "promo.reconciled"

// ReconciliationEvent is the audit record of one webhook invocation:
// the decisions planned and the per-decision outcomes, in the same order.
type ReconciliationEvent struct {
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	ProductID int64            `json:"product_id"`
	Decisions []promo.Decision `json:"decisions"`
	Results   []promo.Result   `json:"results"`
	Timestamp time.Time        `json:"timestamp"`
}

// Publisher emits reconciliation events for downstream consumers.
type Publisher interface {
	PublishReconciliation(ctx context.Context, event ReconciliationEvent) error
}

type KafkaPublisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewKafkaPublisher(brokers string, logger *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger,
	}
}

// PublishReconciliation writes the event keyed by product id, so all events
// for one product land on the same partition in delivery order.
func (p *KafkaPublisher) PublishReconciliation(ctx context.Context, event ReconciliationEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Type == "" {
		event.Type = TypeReconciled
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ProductID, 10)),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error {
	p.logger.Debug("Closing event publisher")
	return p.writer.Close()
}
