package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/amishk599/jobfeed/internal/model"
)

// Ensure DiscordNotifier implements model.Notifier.
var _ model.Notifier = (*DiscordNotifier)(nil)

// DiscordNotifier posts each listing as an embed to a Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	opts       MessageOptions
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewDiscordNotifier returns a notifier that posts to the given webhook.
func NewDiscordNotifier(webhookURL string, opts MessageOptions, httpClient *http.Client, logger *slog.Logger) *DiscordNotifier {
	return &DiscordNotifier{
		webhookURL: webhookURL,
		opts:       opts,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

// Notify sends one embed. Any non-2xx response is an error; Discord answers
// 204 No Content on success.
func (d *DiscordNotifier) Notify(ctx context.Context, l model.Listing) error {
	msg := buildMessage(l, d.opts, d.now())

	body, err := json.Marshal(buildDiscordPayload(msg))
	if err != nil {
		return fmt.Errorf("marshal discord payload: %w", err)
	}

	if err := postJSON(ctx, d.httpClient, d.webhookURL, body); err != nil {
		return fmt.Errorf("post to discord: %w", err)
	}
	d.logger.Info("discord message sent", "employer", msg.Employer, "title", msg.Title)
	return nil
}

// Embed payload types.

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title     string         `json:"title"`
	URL       string         `json:"url"`
	Fields    []discordField `json:"fields"`
	Footer    discordFooter  `json:"footer"`
	Timestamp string         `json:"timestamp"`
}

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordFooter struct {
	Text string `json:"text"`
}

func buildDiscordPayload(m message) discordPayload {
	return discordPayload{
		Embeds: []discordEmbed{{
			Title: m.headline(),
			URL:   m.Link,
			Fields: []discordField{
				{Name: "Source", Value: m.Source, Inline: false},
				{Name: "Location", Value: "📍 " + m.Location, Inline: true},
				{Name: "Age", Value: m.Age, Inline: true},
			},
			Footer:    discordFooter{Text: m.Footer},
			Timestamp: m.Timestamp.Format(time.RFC3339),
		}},
	}
}
