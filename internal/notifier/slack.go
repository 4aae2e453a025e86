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

// Ensure SlackNotifier implements model.Notifier.
var _ model.Notifier = (*SlackNotifier)(nil)

// SlackNotifier sends listing alerts to a Slack channel via Incoming Webhooks.
type SlackNotifier struct {
	webhookURL string
	opts       MessageOptions
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewSlackNotifier returns a notifier that posts each listing to Slack via webhook.
func NewSlackNotifier(webhookURL string, opts MessageOptions, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		opts:       opts,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
}

// Notify sends the listing as a single Block Kit message. A 429 is returned
// as an error like any other non-2xx status; retrying is the caller's call.
func (s *SlackNotifier) Notify(ctx context.Context, l model.Listing) error {
	msg := buildMessage(l, s.opts, s.now())

	body, err := json.Marshal(buildSlackPayload(msg))
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}

	if err := postJSON(ctx, s.httpClient, s.webhookURL, body); err != nil {
		return fmt.Errorf("post to slack: %w", err)
	}
	s.logger.Info("slack message sent", "employer", msg.Employer, "title", msg.Title)
	return nil
}

// Block Kit payload types.

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string         `json:"type"`
	Text     *slackText     `json:"text,omitempty"`
	Fields   []slackText    `json:"fields,omitempty"`
	Elements []slackElement `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackElement struct {
	Type  string    `json:"type"`
	Text  slackText `json:"text"`
	URL   string    `json:"url"`
	Style string    `json:"style"`
}

func buildSlackPayload(m message) slackPayload {
	return slackPayload{Blocks: []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: m.headline()},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Location:*\n📍 " + m.Location},
				{Type: "mrkdwn", Text: "*Age:*\n" + m.Age},
			},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Source:*\n" + m.Source},
			},
		},
		{
			Type: "actions",
			Elements: []slackElement{
				{
					Type:  "button",
					Text:  slackText{Type: "plain_text", Text: "Apply Now"},
					URL:   m.Link,
					Style: "primary",
				},
			},
		},
		{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: "_" + m.Footer + "_ · " + m.Timestamp.Format(time.RFC1123)},
		},
		{Type: "divider"},
	}}
}
