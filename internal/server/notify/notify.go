// Package notify sends account notifications to users.
package notify

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/meanblog/internal/server/models"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Notifier is told about account events. Failures are reported to the
// caller, which decides whether they matter.
type Notifier interface {
	Welcome(ctx context.Context, user *models.User) error
}

// Nop drops every notification. Used when mail is not configured.
type Nop struct{}

func (Nop) Welcome(context.Context, *models.User) error { return nil }

type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridNotifier delivers notifications through the SendGrid API.
type SendGridNotifier struct {
	client mailSender
	from   *mail.Email
}

func NewSendGridNotifier(apiKey, from string) *SendGridNotifier {
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("meanblog", from),
	}
}

// New returns a SendGrid notifier when an API key and sender are configured
// and a no-op otherwise.
func New(apiKey, from string) Notifier {
	if apiKey == "" || from == "" {
		return Nop{}
	}
	return NewSendGridNotifier(apiKey, from)
}

func (n *SendGridNotifier) Welcome(ctx context.Context, user *models.User) error {
	to := mail.NewEmail(user.Username, user.Email)
	subject := "Welcome to meanblog"
	plain := fmt.Sprintf("Hi %s, your account has been registered.", user.Username)
	html := fmt.Sprintf("<p>Hi <strong>%s</strong>, your account has been registered.</p>", user.Username)

	resp, err := n.client.SendWithContext(ctx, mail.NewSingleEmail(n.from, subject, to, plain, html))
	if err != nil {
		return fmt.Errorf("error sending welcome mail: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("error sending welcome mail: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
