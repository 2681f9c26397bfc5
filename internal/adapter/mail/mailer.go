// Package mail sends report status emails over SMTP.
package mail

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"

	"github.com/heartmarshall/ireporter-backend/internal/config"
	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer renders and sends status emails.
type Mailer struct {
	log    *slog.Logger
	from   string
	sender sender
}

// New creates an SMTP mailer from config. When mail is disabled the
// returned mailer only logs what it would have sent.
func New(log *slog.Logger, cfg config.MailConfig) *Mailer {
	m := &Mailer{
		log:  log.With("adapter", "mail"),
		from: cfg.From,
	}
	if cfg.Enabled {
		m.sender = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

// SendStatusEmail notifies a report owner that an admin changed the status.
func (m *Mailer) SendStatusEmail(ctx context.Context, to domain.User, change domain.StatusChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body, err := RenderStatusEmail(to.Name, change)
	if err != nil {
		return fmt.Errorf("mail.SendStatusEmail: %w", err)
	}

	if m.sender == nil {
		m.log.InfoContext(ctx, "mail disabled, skipping status email",
			slog.String("to", to.Email),
			slog.String("subject", subject),
		)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetAddressHeader("To", to.Email, to.Name)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail.SendStatusEmail: send to %s: %w", to.Email, err)
	}

	m.log.InfoContext(ctx, "status email sent",
		slog.String("to", to.Email),
		slog.String("kind", change.Kind.String()),
		slog.Int64("report_id", change.ReportID),
	)
	return nil
}
