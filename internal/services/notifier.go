package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	pkglogger "github.com/BradenHooton/parliament/pkg/logger"
)

const (
	NoticeCreated = "created"
	NoticeRotated = "rotated"
	NoticeRevoked = "revoked"
)

// ProvisioningNotice tells a legislator their account changed. It never carries the secret.
type ProvisioningNotice struct {
	Kind        string
	LoginName   string
	DisplayName string
	Email       string
}

// Notifier delivers provisioning notices
type Notifier interface {
	Notify(ctx context.Context, notice ProvisioningNotice) error
}

// LogNotifier writes notices to the log instead of sending them
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, notice ProvisioningNotice) error {
	n.logger.Info("account notice",
		slog.String("kind", notice.Kind),
		slog.String("login", pkglogger.MaskLogin(notice.LoginName)),
		slog.String("email", pkglogger.SanitizedEmail(notice.Email)))
	return nil
}

// sesAPI is the part of the SES client the notifier uses
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESNotifier e-mails notices through AWS SES
type SESNotifier struct {
	client      sesAPI
	fromAddress string
	logger      *slog.Logger
}

func NewSESNotifier(ctx context.Context, region, fromAddress string, logger *slog.Logger) (*SESNotifier, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESNotifier{
		client:      ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		logger:      logger,
	}, nil
}

func (n *SESNotifier) Notify(ctx context.Context, notice ProvisioningNotice) error {
	if notice.Email == "" {
		n.logger.Info("account notice skipped: no e-mail on file", slog.String("login", pkglogger.MaskLogin(notice.LoginName)))
		return nil
	}

	subject, body := renderNotice(notice)

	input := &ses.SendEmailInput{
		Source: aws.String(n.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{notice.Email},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	}

	result, err := n.client.SendEmail(ctx, input)
	if err != nil {
		n.logger.Error("failed to send account notice via SES",
			slog.String("email", pkglogger.SanitizedEmail(notice.Email)),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Info("account notice sent",
		slog.String("kind", notice.Kind),
		slog.String("message_id", aws.ToString(result.MessageId)))
	return nil
}

func renderNotice(notice ProvisioningNotice) (string, string) {
	switch notice.Kind {
	case NoticeCreated:
		return "Your parliament records account was created", fmt.Sprintf(
			"Dear %s,\n\nAn account with the login %q was created for you. Your administrator will give you the password separately.\n",
			notice.DisplayName, notice.LoginName)
	case NoticeRotated:
		return "Your parliament records password was changed", fmt.Sprintf(
			"Dear %s,\n\nThe password for the login %q was changed by an administrator. Contact them if you did not expect this.\n",
			notice.DisplayName, notice.LoginName)
	default:
		return "Your parliament records account was removed", fmt.Sprintf(
			"Dear %s,\n\nThe login %q has been removed and can no longer sign in.\n",
			notice.DisplayName, notice.LoginName)
	}
}
