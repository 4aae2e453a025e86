package notifier

import (
	"context"
	"log/slog"

	"github.com/amishk599/jobfeed/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes listings to the given logger as structured messages.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each listing via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs employer, title, location, link and age.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(_ context.Context, l model.Listing) error {
	n.logger.Info("new listing",
		"employer", string(l.Employer),
		"title", string(l.Title),
		"location", formatLocation(l),
		"url", string(l.ApplyURL),
		"posted_at", string(l.PostedAt),
	)
	return nil
}
