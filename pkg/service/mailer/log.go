package mailer

import (
	"context"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
)

// logMailer writes outbound mail to the log instead of delivering it.
// Used in local development when no SMTP relay is configured.
type logMailer struct{}

// NewLog creates a mailer that logs messages instead of sending them
func NewLog() interfaces.Mailer {
	return &logMailer{}
}

func (m *logMailer) Send(ctx context.Context, to, subject, body string) error {
	logging.From(ctx).Info("mail (log backend, not delivered)",
		"to", to,
		"subject", subject,
		"body", body)
	return nil
}
