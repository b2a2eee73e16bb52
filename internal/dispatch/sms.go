// internal/dispatch/sms.go
package dispatch

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"order-alerts/internal/common/logger"
)

// SNSService is the slice of the SNS client used here, defined for mocking.
type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SMSNotifier publishes a one-line alert summary to an ops phone number.
// Best effort: failures are logged and never surface.
type SMSNotifier struct {
	client    SNSService
	recipient string
	log       logger.Logger
}

func NewSMSNotifier(ctx context.Context, region, recipient string, log logger.Logger) (*SMSNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SMSNotifier{
		client:    sns.NewFromConfig(cfg),
		recipient: recipient,
		log:       log,
	}, nil
}

// NewSMSNotifierWithClient injects a client, used by tests.
func NewSMSNotifierWithClient(client SNSService, recipient string, log logger.Logger) *SMSNotifier {
	return &SMSNotifier{client: client, recipient: recipient, log: log}
}

func (n *SMSNotifier) Notify(ctx context.Context, text string) {
	if n == nil || n.client == nil || n.recipient == "" {
		return
	}

	_, err := n.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(n.recipient),
		Message:     aws.String(text),
	})
	if err != nil {
		n.log.Warn("sms notification failed", map[string]interface{}{
			"recipient": n.recipient,
			"error":     err.Error(),
		})
	}
}
