package mailer

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

// Mailer delivers a message to a single recipient. Callers treat delivery
// as best-effort: a failed send is logged and never fails the operation
// that queued it.
type Mailer interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
}

// SMTPMailer sends through a configured SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer creates a Mailer that delivers through the given relay.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send composes a text+HTML message and delivers it synchronously.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	if htmlBody != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)
	}

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
	)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}

// LogMailer logs instead of sending. It stands in when no SMTP relay is
// configured, e.g. in local development.
type LogMailer struct{}

// Send logs the message envelope and drops the body.
func (LogMailer) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("No SMTP relay configured, skipping mail delivery")
	return nil
}
