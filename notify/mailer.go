package notify

import (
	"context"
	"fmt"

	"github.com/rakesh3649/Fitness/configs"
	"github.com/wneessen/go-mail"
)

// Message is one HTML email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Mailer delivers a message or reports why it could not.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer sends through an authenticated SMTP relay, upgrading to TLS
// when the server offers it.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(cfg configs.EmailConfig) (*SMTPMailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("notify: smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.Sender()}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mm := mail.NewMsg()
	if err := mm.From(m.from); err != nil {
		return fmt.Errorf("notify: from %q: %w", m.from, err)
	}
	if err := mm.To(msg.To...); err != nil {
		return fmt.Errorf("notify: to %v: %w", msg.To, err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("notify: send %q: %w", msg.Subject, err)
	}
	return nil
}
