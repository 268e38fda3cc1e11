package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/Specter099/aws-iam-root-user-activity-monitor/internal/monitor/models"
)

// SNSAPI is the slice of the SNS client the dispatcher uses.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSDispatcher publishes to an SNS topic with per-protocol message bodies:
// email subscribers receive the text rendering, programmatic subscribers the
// structured one.
type SNSDispatcher struct {
	client   SNSAPI
	topicARN string
}

// NewSNS creates an SNS-backed dispatcher for the given topic.
func NewSNS(client SNSAPI, topicARN string) (*SNSDispatcher, error) {
	if client == nil {
		return nil, fmt.Errorf("sns client is required")
	}
	if topicARN == "" {
		return nil, fmt.Errorf("sns topic ARN is required")
	}
	return &SNSDispatcher{client: client, topicARN: topicARN}, nil
}

// Dispatch publishes the notification. Channel errors return unwrapped SDK
// errors; the service layer tags them as dispatch failures.
func (d *SNSDispatcher) Dispatch(ctx context.Context, payload models.NotificationPayload) error {
	structured := string(payload.StructuredBody)
	message, err := json.Marshal(map[string]string{
		"default":    structured,
		"email":      payload.TextBody,
		"email-json": structured,
	})
	if err != nil {
		return fmt.Errorf("encode sns message: %w", err)
	}

	_, err = d.client.Publish(ctx, &sns.PublishInput{
		TopicArn:         aws.String(d.topicARN),
		Subject:          aws.String(payload.Subject),
		Message:          aws.String(string(message)),
		MessageStructure: aws.String("json"),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"severity": {
				DataType:    aws.String("String"),
				StringValue: aws.String(payload.Severity.String()),
			},
			"account": {
				DataType:    aws.String("String"),
				StringValue: aws.String(payload.AccountID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", d.topicARN, err)
	}
	return nil
}
