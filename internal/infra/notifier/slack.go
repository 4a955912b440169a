package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SlackNotifier sends alerts to a Slack channel via Incoming Webhook,
// formatted with Block Kit.
type SlackNotifier struct {
	webhook *webhookClient
}

// NewSlackNotifier creates a Slack notifier for the given Incoming Webhook URL.
func NewSlackNotifier(webhookURL string, timeout time.Duration) *SlackNotifier {
	return &SlackNotifier{webhook: newWebhookClient(webhookURL, timeout)}
}

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string      `json:"type"`
	Text     *slackText  `json:"text,omitempty"`
	Elements []slackText `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Notify posts the alert as a section block with a context line naming the
// component.
func (n *SlackNotifier) Notify(ctx context.Context, alert Alert) error {
	payload := slackPayload{
		Text: fmt.Sprintf("[%s] %s", alert.Component, alert.Message),
		Blocks: []slackBlock{
			{
				Type: "section",
				Text: &slackText{Type: "mrkdwn", Text: fmt.Sprintf(":warning: %s", alert.Message)},
			},
			{
				Type: "context",
				Elements: []slackText{
					{Type: "mrkdwn", Text: fmt.Sprintf("component: `%s`", alert.Component)},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}
	return n.webhook.post(ctx, "slack", body)
}
