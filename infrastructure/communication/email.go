package communication

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type EmailInfo struct {
	From    string
	To      []string
	Subject string
	Text    string
}

// SendEmail delivers a plain-text mail via SES; used for the weekly
// attendance summary.
func SendEmail(ctx context.Context, info *EmailInfo) error {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}
	client := ses.NewFromConfig(cfg)

	_, err = client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(info.From),
		Destination: &types.Destination{
			ToAddresses: info.To,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(info.Subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(info.Text)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
