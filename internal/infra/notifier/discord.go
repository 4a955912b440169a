package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// alertEmbedColor is the Discord embed sidebar color (red).
const alertEmbedColor = 0xE74C3C

// DiscordNotifier sends alerts to a Discord channel via webhook, formatted
// as an embed.
type DiscordNotifier struct {
	webhook *webhookClient
}

// NewDiscordNotifier creates a Discord notifier for the given webhook URL.
func NewDiscordNotifier(webhookURL string, timeout time.Duration) *DiscordNotifier {
	return &DiscordNotifier{webhook: newWebhookClient(webhookURL, timeout)}
}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

// Notify posts the alert as a single embed titled by the component.
func (n *DiscordNotifier) Notify(ctx context.Context, alert Alert) error {
	payload := discordPayload{
		Embeds: []discordEmbed{
			{
				Title:       fmt.Sprintf("Alert: %s", alert.Component),
				Description: alert.Message,
				Color:       alertEmbedColor,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal discord payload: %w", err)
	}
	return n.webhook.post(ctx, "discord", body)
}
