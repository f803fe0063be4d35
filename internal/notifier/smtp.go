package notifier

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// MailSender sends composed messages; *mail.Dialer satisfies it
type MailSender interface {
	DialAndSend(m ...*mail.Message) error
}

// SMTPNotifier sends email through an SMTP server
type SMTPNotifier struct {
	sender MailSender
	from   string
	logger *zap.Logger
}

// NewSMTPNotifier creates a notifier that dials the SMTP server for every message
func NewSMTPNotifier(host string, port int, username, password, from string, logger *zap.Logger) *SMTPNotifier {
	return NewSMTPNotifierWithSender(mail.NewDialer(host, port, username, password), from, logger)
}

// NewSMTPNotifierWithSender creates a notifier on top of an existing sender
func NewSMTPNotifierWithSender(sender MailSender, from string, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		sender: sender,
		from:   from,
		logger: logger,
	}
}

// Send composes a plain text message and delivers it
func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	// mail.v2 has no context support, so only an already cancelled send is skipped
	if err := ctx.Err(); err != nil {
		return err
	}

	m := mail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.sender.DialAndSend(m); err != nil {
		n.logger.Error("failed to send email", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
