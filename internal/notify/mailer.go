package notify

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"github.com/ecowash/ecowash-backend/internal/config"
)

// Message is one outgoing HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers messages.  Implementations must be safe for concurrent
// use.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// NewMailer returns an SMTP mailer, or a LogMailer when no relay is
// configured.
func NewMailer(cfg config.MailConfig) Mailer {
	if cfg.Disabled {
		log.Warn("mail: EMAIL_HOST not set, notifications will only be logged")
		return LogMailer{}
	}
	return &SMTPMailer{cfg: cfg}
}

// SMTPMailer sends through an authenticated relay, upgrading to TLS when
// the server offers STARTTLS.  Each Send dials its own connection.
type SMTPMailer struct {
	cfg config.MailConfig
}

func (s *SMTPMailer) Send(ctx context.Context, m Message) error {
	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.FromAddress); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextHTML, m.HTML)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail send: %w", err)
	}
	return nil
}

// LogMailer records messages in the log instead of sending them.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, m Message) error {
	log.WithFields(log.Fields{"to": m.To, "subject": m.Subject}).Info("mail: delivery disabled, message dropped")
	return nil
}
