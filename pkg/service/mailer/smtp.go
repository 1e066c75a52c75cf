package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// smtpMailer delivers mail through a plain SMTP relay
type smtpMailer struct {
	addr string // host:port
	from string
	auth smtp.Auth
}

// Option is a functional option for SMTP mailer configuration
type Option func(*smtpMailer)

// WithAuth sets PLAIN authentication credentials for the relay
func WithAuth(username, password, host string) Option {
	return func(m *smtpMailer) {
		m.auth = smtp.PlainAuth("", username, password, host)
	}
}

// NewSMTP creates a mailer that sends through the given SMTP relay address
func NewSMTP(addr, from string, opts ...Option) (interfaces.Mailer, error) {
	if addr == "" {
		return nil, goerr.New("SMTP address is required")
	}
	if from == "" {
		return nil, goerr.New("sender address is required")
	}

	m := &smtpMailer{
		addr: addr,
		from: from,
	}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Send delivers one message. net/smtp has no context support, so cancellation
// only takes effect before the dial.
func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "context cancelled before send")
	}
	if to == "" {
		return goerr.New("recipient address is required")
	}

	msg := buildMessage(m.from, to, subject, body)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, msg); err != nil {
		return goerr.Wrap(err, "failed to send mail",
			goerr.V("addr", m.addr), goerr.V("to", to), goerr.V("subject", subject))
	}

	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}
