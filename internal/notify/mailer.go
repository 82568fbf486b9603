package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	"github.com/nexus/workspace/internal/logging"
	"github.com/nexus/workspace/internal/models"
)

// LogMailer only logs the message. It is the default when no mail provider
// is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to models.User, subject, body string) error {
	logging.Component("mail").WithFields(logrus.Fields{
		"to":      to.Name,
		"email":   to.Email,
		"subject": subject,
	}).Info(body)
	return nil
}

type SendGridMailer struct {
	client *sendgrid.Client
	from   string
}

func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, to models.User, subject, body string) error {
	if to.Email == "" {
		return fmt.Errorf("send email: user %s has no address", to.ID)
	}
	message := mail.NewSingleEmail(
		mail.NewEmail("Nexus", m.from),
		subject,
		mail.NewEmail(to.Name, to.Email),
		body,
		"",
	)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send email (sendgrid): %w", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("send email (sendgrid): status %d", resp.StatusCode)
	}
	return nil
}
