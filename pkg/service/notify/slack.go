package notify

import (
	"context"
	"fmt"

	"github.com/doorstep-hq/doorstep/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// slackNotifier posts automation failure notices to an ops channel
type slackNotifier struct {
	api     *slack.Client
	channel string
}

// New creates a Slack notifier with the provided bot token and channel ID
func New(token, channel string) (interfaces.Notifier, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channel == "" {
		return nil, goerr.New("Slack channel is required")
	}

	return &slackNotifier{
		api:     slack.New(token),
		channel: channel,
	}, nil
}

// NotifyFailure posts a failure notice to the configured channel
func (n *slackNotifier) NotifyFailure(ctx context.Context, input interfaces.NotifyFailureInput) error {
	blocks := buildFailureBlocks(input)

	_, _, err := n.api.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(fmt.Sprintf("Automation failed: %s", input.AutomationName), false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post Slack message",
			goerr.V("channel", n.channel), goerr.V("automation_id", input.AutomationID))
	}

	return nil
}

func buildFailureBlocks(input interfaces.NotifyFailureInput) []slack.Block {
	header := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, ":rotating_light: Automation failed", true, false),
	)

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Rule:*\n%s", input.AutomationName), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Trigger:*\n%s", input.Trigger), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Project:*\n%s", input.ProjectName), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Project ID:*\n%s", input.ProjectID), false, false),
	}

	return []slack.Block{
		header,
		slack.NewSectionBlock(nil, fields, nil),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Error:*\n```%s```", input.Error), false, false),
			nil, nil,
		),
	}
}
