package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// ReminderService sends review-due reminder emails via Amazon SES.
type ReminderService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewReminderService creates a new reminder service. With no from-address
// configured the service is created disabled and every send is a logged
// no-op, so local setups need no AWS credentials.
func NewReminderService(awsRegion, fromEmail, fromName string) (*ReminderService, error) {
	if fromEmail == "" {
		log.Println("Reminder emails disabled: SES_FROM_EMAIL not configured")
		return &ReminderService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Reminder emails enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &ReminderService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether reminder emails will actually be sent.
func (s *ReminderService) IsEnabled() bool {
	return s.enabled
}

// SendDueReminder emails the user that dueCount words are waiting for
// review.
func (s *ReminderService) SendDueReminder(ctx context.Context, toEmail string, dueCount int) error {
	if !s.enabled {
		log.Printf("Skipping reminder email (service disabled): %d due words for %s", dueCount, toEmail)
		return nil
	}

	subject := fmt.Sprintf("You have %d word(s) ready for review", dueCount)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Time to review!</h2>
	<p>You have <strong>%d word(s)</strong> due for review today.</p>
	<p>A few minutes now keeps your streak alive and your vocabulary fresh.</p>
	<p style="font-size: 12px; color: #666;">This is an automated reminder. Please do not reply.</p>
</body>
</html>
`, dueCount)
	textBody := fmt.Sprintf(`Time to review!

You have %d word(s) due for review today.

A few minutes now keeps your streak alive and your vocabulary fresh.

---
This is an automated reminder. Please do not reply.
`, dueCount)

	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send reminder to %s: %w", toEmail, err)
	}

	log.Printf("Reminder email sent: to=%s, due=%d", toEmail, dueCount)
	return nil
}
