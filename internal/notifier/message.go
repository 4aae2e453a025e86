package notifier

import (
	"context"
	"strings"
	"time"

	"github.com/amishk599/jobfeed/internal/model"
)

// Defaults for MessageOptions fields left empty.
const (
	DefaultSourceLabel = "Zapply (New-Grad-Data-Science-Jobs-2026)"
	DefaultHomepageURL = "https://github.com/zapplyjobs/New-Grad-Data-Science-Jobs-2026"
	DefaultFooter      = "Keep pushing — you’ve got this!"
)

// MessageOptions holds the static parts of every alert.
type MessageOptions struct {
	SourceLabel string // shown in the Source field
	HomepageURL string // link used when a listing has no apply link
	Footer      string
}

func (o MessageOptions) withDefaults() MessageOptions {
	if o.SourceLabel == "" {
		o.SourceLabel = DefaultSourceLabel
	}
	if o.HomepageURL == "" {
		o.HomepageURL = DefaultHomepageURL
	}
	if o.Footer == "" {
		o.Footer = DefaultFooter
	}
	return o
}

// message is the sink-independent content of one alert.
type message struct {
	Employer  string
	Title     string
	Link      string
	Source    string
	Location  string
	Age       string
	Footer    string
	Timestamp time.Time
}

func (m message) headline() string {
	return m.Employer + " — " + m.Title
}

func buildMessage(l model.Listing, opts MessageOptions, now time.Time) message {
	opts = opts.withDefaults()
	return message{
		Employer:  orDefault(string(l.Employer), "Unknown Company"),
		Title:     orDefault(string(l.Title), "Analyst Role"),
		Link:      orDefault(string(l.ApplyURL), opts.HomepageURL),
		Source:    opts.SourceLabel,
		Location:  formatLocation(l),
		Age:       orDefault(string(l.PostedAt), "N/A"),
		Footer:    opts.Footer,
		Timestamp: now.UTC(),
	}
}

// formatLocation renders "City, State", either part alone, or "Unknown".
func formatLocation(l model.Listing) string {
	city := strings.TrimSpace(string(l.City))
	state := strings.TrimSpace(string(l.State))
	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	case state != "":
		return state
	default:
		return "Unknown"
	}
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}

// SendTestMessage sends a dummy listing to verify the integration works.
func SendTestMessage(ctx context.Context, n model.Notifier) error {
	testListing := model.Listing{
		Employer: "JobFeed Test",
		Title:    "Test Notification — Integration Verified",
		City:     "Everywhere",
		ApplyURL: DefaultHomepageURL,
		PostedAt: "just now",
	}
	return n.Notify(ctx, testListing)
}
