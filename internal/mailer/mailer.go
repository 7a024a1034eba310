package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional mail. The booking flow never blocks on it;
// only the password-reset flow uses it.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

type SendgridMailer struct {
	client *sendgrid.Client
	from   string
}

func NewSendgridMailer(apiKey, from string) *SendgridMailer {
	return &SendgridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

func (m *SendgridMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	from := mail.NewEmail("BikeBay", m.from)
	recipient := mail.NewEmail("", to)
	subject := "Password Reset Request"
	plain := fmt.Sprintf("Reset your password: %s", resetURL)
	html := fmt.Sprintf(`<p>Click <a href="%s">here</a> to reset your password. This link expires in 1 hour.</p>`, resetURL)

	message := mail.NewSingleEmail(from, subject, recipient, plain, html)
	res, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send reset email: %v", err)
	}
	if res.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected reset email: status %d", res.StatusCode)
	}

	return nil
}

// LogMailer logs the reset link instead of sending it. Used in development
// when no SendGrid key is configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	m.logger.Info("password reset requested", "to", to, "reset_url", resetURL)
	return nil
}
