package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/doorstep-hq/doorstep/pkg/service/notify"
	"github.com/doorstep-hq/doorstep/pkg/utils/logging"
)

// Notify holds CLI flags for the failure notification channel
type Notify struct {
	slackToken   string
	slackChannel string
}

// Flags returns CLI flags for notification configuration
func (x *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token for failure notifications",
			Category:    "Notification",
			Sources:     cli.EnvVars("DOORSTEP_SLACK_BOT_TOKEN"),
			Destination: &x.slackToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for failure notifications (e.g. #onboarding-alerts)",
			Category:    "Notification",
			Sources:     cli.EnvVars("DOORSTEP_SLACK_CHANNEL"),
			Destination: &x.slackChannel,
		},
	}
}

func (x Notify) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("slack-bot-token.len", len(x.slackToken)),
		slog.String("slack-channel", x.slackChannel),
	)
}

// Configure returns a notifier when Slack is configured, otherwise nil.
// A nil notifier is valid; automation failures are then only logged.
func (x *Notify) Configure() (interfaces.Notifier, error) {
	if x.slackToken == "" {
		logging.Default().Info("Slack not configured, automation failures are logged only")
		return nil, nil
	}
	if x.slackChannel == "" {
		return nil, goerr.New("slack-channel is required when slack-bot-token is set")
	}

	notifier, err := notify.New(x.slackToken, x.slackChannel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack notifier")
	}
	logging.Default().Info("Slack failure notifications enabled", "channel", x.slackChannel)
	return notifier, nil
}
