package events

import (
	"context"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Nishasathish105/ai-compliance-platform/internal/config"
)

func testKafkaConfig() *config.KafkaConfig {
	return &config.KafkaConfig{
		VerificationsTopic: "compliance.verifications.completed",
		AlertsTopic:        "compliance.alerts.raised",
	}
}

func TestKafkaPublisher_PublishVerificationCompleted(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	p := newKafkaPublisher(producer, testKafkaConfig())
	defer p.Close()

	docID := uuid.New()
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(raw []byte) error {
		require.Contains(t, string(raw), docID.String())
		return nil
	})

	err := p.PublishVerificationCompleted(context.Background(), VerificationCompletedEvent{
		EventID:      uuid.New(),
		DocumentID:   docID,
		OwnerID:      uuid.New(),
		RiskScore:    92,
		IsFraudulent: true,
		Timestamp:    time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestKafkaPublisher_PublishAlertRaised_SendErr(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	p := newKafkaPublisher(producer, testKafkaConfig())
	defer p.Close()

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := p.PublishAlertRaised(context.Background(), AlertRaisedEvent{
		EventID:    uuid.New(),
		AlertID:    uuid.New(),
		AlertType:  "high_risk_document",
		Severity:   "critical",
		DocumentID: uuid.New(),
		Timestamp:  time.Now().UTC(),
	})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestKafkaPublisher_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	p := newKafkaPublisher(producer, testKafkaConfig())
	defer p.Close()

	for i := 0; i < 5; i++ {
		producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
		err := p.PublishAlertRaised(context.Background(), AlertRaisedEvent{DocumentID: uuid.New()})
		require.Error(t, err)
	}

	// The breaker is open now; no further sends reach the producer.
	err := p.PublishAlertRaised(context.Background(), AlertRaisedEvent{DocumentID: uuid.New()})
	require.Error(t, err)
}

func TestKafkaPublisher_CancelledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	p := newKafkaPublisher(producer, testKafkaConfig())
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.PublishVerificationCompleted(ctx, VerificationCompletedEvent{})
	require.ErrorIs(t, err, context.Canceled)
}
