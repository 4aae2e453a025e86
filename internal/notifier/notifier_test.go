package notifier

import (
	"io"
	"log/slog"
	"time"

	"github.com/amishk599/jobfeed/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func sampleListing(title, employer string) model.Listing {
	return model.Listing{
		Employer: model.FieldString(employer),
		Title:    model.FieldString(title),
		City:     "New York",
		State:    "NY",
		ApplyURL: "https://example.com/apply",
		PostedAt: "3d",
	}
}
