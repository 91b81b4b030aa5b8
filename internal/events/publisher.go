// Package events publishes compliance events to Kafka. Publishing is
// best-effort: the verification workflow treats failures as non-fatal, and a
// circuit breaker keeps a dead broker from stalling uploads.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"github.com/Nishasathish105/ai-compliance-platform/internal/config"
)

// VerificationCompletedEvent is emitted after a successful verification run.
type VerificationCompletedEvent struct {
	EventID      uuid.UUID `json:"event_id"`
	DocumentID   uuid.UUID `json:"document_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	RiskScore    int       `json:"risk_score"`
	IsFraudulent bool      `json:"is_fraudulent"`
	Timestamp    time.Time `json:"timestamp"`
}

// AlertRaisedEvent is emitted when a fraud alert is created.
type AlertRaisedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	AlertID    uuid.UUID `json:"alert_id"`
	AlertType  string    `json:"alert_type"`
	Severity   string    `json:"severity"`
	DocumentID uuid.UUID `json:"document_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher sends events to the configured topics.
type Publisher interface {
	PublishVerificationCompleted(ctx context.Context, ev VerificationCompletedEvent) error
	PublishAlertRaised(ctx context.Context, ev AlertRaisedEvent) error
	Close() error
}

// KafkaPublisher implements Publisher with a sarama sync producer wrapped in
// a circuit breaker.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	breaker  *gobreaker.CircuitBreaker
	cfg      *config.KafkaConfig
}

// NewKafkaPublisher connects a sync producer to the configured brokers.
func NewKafkaPublisher(cfg *config.KafkaConfig) (*KafkaPublisher, error) {
	sc := sarama.NewConfig()
	sc.Producer.Return.Successes = true
	sc.Producer.RequiredAcks = sarama.WaitForLocal
	sc.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(cfg.Brokers, sc)
	if err != nil {
		return nil, err
	}
	return newKafkaPublisher(producer, cfg), nil
}

func newKafkaPublisher(producer sarama.SyncProducer, cfg *config.KafkaConfig) *KafkaPublisher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "kafka-publisher",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &KafkaPublisher{producer: producer, breaker: breaker, cfg: cfg}
}

// PublishVerificationCompleted emits to the verifications topic, keyed by
// document id so downstream consumers can deduplicate re-verifications.
func (p *KafkaPublisher) PublishVerificationCompleted(ctx context.Context, ev VerificationCompletedEvent) error {
	return p.publish(ctx, p.cfg.VerificationsTopic, ev.DocumentID.String(), ev)
}

// PublishAlertRaised emits to the alerts topic.
func (p *KafkaPublisher) PublishAlertRaised(ctx context.Context, ev AlertRaisedEvent) error {
	return p.publish(ctx, p.cfg.AlertsTopic, ev.DocumentID.String(), ev)
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, key string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = p.breaker.Execute(func() (any, error) {
		_, _, sendErr := p.producer.SendMessage(&sarama.ProducerMessage{
			Topic: topic,
			Key:   sarama.StringEncoder(key),
			Value: sarama.ByteEncoder(raw),
		})
		return nil, sendErr
	})
	return err
}

// Close shuts down the producer.
func (p *KafkaPublisher) Close() error { return p.producer.Close() }

// NopPublisher discards events; used when Kafka is not configured and in tests.
type NopPublisher struct{}

func (NopPublisher) PublishVerificationCompleted(context.Context, VerificationCompletedEvent) error {
	return nil
}
func (NopPublisher) PublishAlertRaised(context.Context, AlertRaisedEvent) error { return nil }
func (NopPublisher) Close() error                                               { return nil }
