package notifier

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/amishk599/jobfeed/internal/model"
)

func TestLogNotifier_Notify_returnsNil(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	if err := n.Notify(context.Background(), sampleListing("Data Analyst", "Acme")); err != nil {
		t.Errorf("Notify() = %v, want nil", err)
	}

	out := buf.String()
	for _, want := range []string{"new listing", "employer=Acme", `title="Data Analyst"`, `location="New York, NY"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestLogNotifier_Notify_emptyListing(t *testing.T) {
	n := NewLogNotifier(discardLogger())
	if err := n.Notify(context.Background(), model.Listing{}); err != nil {
		t.Errorf("Notify(empty) = %v, want nil", err)
	}
}
