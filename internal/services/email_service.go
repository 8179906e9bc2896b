package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/soundreach/backoffice/internal/models"
)

// EmailService sends operational email for contact-form submissions.
type EmailService interface {
	SendContactNotification(ctx context.Context, submission *models.ContactSubmission) error
	SendContactAutoReply(ctx context.Context, submission *models.ContactSubmission) error
}

// AWSSESEmailService sends email using AWS SES.
type AWSSESEmailService struct {
	sesClient    *ses.Client
	fromAddress  string
	adminAddress string
	logger       *slog.Logger
}

func NewAWSSESEmailService(region, fromAddress, adminAddress string, logger *slog.Logger) (*AWSSESEmailService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESEmailService{
		sesClient:    ses.NewFromConfig(cfg),
		fromAddress:  fromAddress,
		adminAddress: adminAddress,
		logger:       logger,
	}, nil
}

// SendContactNotification notifies the admin inbox of a new submission.
func (s *AWSSESEmailService) SendContactNotification(ctx context.Context, submission *models.ContactSubmission) error {
	body := fmt.Sprintf(
		"New contact form submission\n\nFrom: %s <%s>\nSubject: %s\n\n%s\n\nReceived: %s\n",
		submission.Name, submission.Email, submission.Subject, submission.Message,
		submission.CreatedAt.Format("2006-01-02 15:04:05 MST"),
	)

	return s.send(ctx, s.adminAddress, "New contact: "+submission.Subject, body, submission.Email)
}

// SendContactAutoReply acknowledges receipt to the submitter.
func (s *AWSSESEmailService) SendContactAutoReply(ctx context.Context, submission *models.ContactSubmission) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nThanks for reaching out. We received your message and will reply as soon as we can.\n\nYour message:\n%s\n\nThis is an automated reply; please do not respond to this email.\n",
		submission.Name, submission.Message,
	)

	return s.send(ctx, submission.Email, "We received your message", body, "")
}

func (s *AWSSESEmailService) send(ctx context.Context, to, subject, textBody, replyTo string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(textBody)},
			},
		},
	}

	if replyTo != "" {
		input.ReplyToAddresses = []string{replyTo}
	}

	if _, err := s.sesClient.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email sent", slog.String("subject", subject))
	return nil
}
