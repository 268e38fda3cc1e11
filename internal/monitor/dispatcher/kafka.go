package dispatcher

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
)

// KafkaDispatcher publishes structured notifications to a security-events
// topic for self-hosted deployments without SNS. Records are keyed by the
// originating account so one account's incidents stay ordered on a partition.
type KafkaDispatcher struct {
	client *kgo.Client
	topic  string
}

// NewKafka creates a Kafka-backed dispatcher over an existing client.
func NewKafka(client *kgo.Client, topic string) (*KafkaDispatcher, error) {
	if client == nil {
		return nil, fmt.Errorf("kafka client is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}
	return &KafkaDispatcher{client: client, topic: topic}, nil
}

// Dispatch produces synchronously; there is exactly one notification per
// invocation and the host owns retries.
func (d *KafkaDispatcher) Dispatch(ctx context.Context, payload models.NotificationPayload) error {
	if err := d.client.ProduceSync(ctx, d.newRecord(payload)).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", d.topic, err)
	}
	return nil
}

// newRecord maps a notification onto the wire record: account-keyed, the
// structured body as the value, severity and subject as headers so consumers
// can route without decoding.
func (d *KafkaDispatcher) newRecord(payload models.NotificationPayload) *kgo.Record {
	return &kgo.Record{
		Topic: d.topic,
		Key:   []byte(payload.AccountID),
		Value: payload.StructuredBody,
		Headers: []kgo.RecordHeader{
			{Key: "severity", Value: []byte(payload.Severity.String())},
			{Key: "subject", Value: []byte(payload.Subject)},
		},
	}
}
