package notifier

import (
	"context"

	"go.uber.org/zap"
)

// LogNotifier writes messages to the log instead of sending them.
// Intended for local development where no SMTP server is available.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the message
func (n *LogNotifier) Send(_ context.Context, to, subject, body string) error {
	n.logger.Info("email not sent, logging instead",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
