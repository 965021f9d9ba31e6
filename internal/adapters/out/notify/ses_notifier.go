// Package notify adapts the outbound notifier port to Amazon SES.
package notify

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

const notificationSubject = "Delivery update"

// SESNotifier sends customer notifications as plain-text email through
// Amazon SES. Callers treat notification failures as non-fatal, so the
// notifier reports errors and never retries on its own.
type SESNotifier struct {
	client *sesv2.Client
	from   string
	logger *zap.Logger
}

// NewSESNotifier creates a notifier for the given region and sender address.
// AWS credentials load from the environment.
func NewSESNotifier(ctx context.Context, region string, fromEmail string, logger *zap.Logger) (*SESNotifier, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}

	return &SESNotifier{
		client: sesv2.NewFromConfig(cfg),
		from:   fromEmail,
		logger: logger,
	}, nil
}

// Notify sends one plain-text email to the recipient contact.
func (n *SESNotifier) Notify(ctx context.Context, recipientContact string, message string) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.from),
		Destination: &types.Destination{
			ToAddresses: []string{recipientContact},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(notificationSubject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(message),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return err
	}

	n.logger.Debug("notification sent", zap.String("recipient", recipientContact))
	return nil
}
