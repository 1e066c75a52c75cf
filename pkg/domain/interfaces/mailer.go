package interfaces

import "context"

// Mailer defines the interface for outbound email delivery.
// Delivery is an external collaborator concern; the automation core only
// resolves the recipient and hands off the message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Notifier defines the interface for ops notifications about automation
// failures. Implementations must be best-effort; errors are logged, never
// propagated into the evaluation path.
type Notifier interface {
	NotifyFailure(ctx context.Context, entry NotifyFailureInput) error
}

// NotifyFailureInput carries the context of a failed automation run
type NotifyFailureInput struct {
	AutomationID   string
	AutomationName string
	ProjectID      string
	ProjectName    string
	Trigger        string
	Error          string
}
