package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/amishk599/jobfeed/internal/model"
)

type recordingNotifier struct {
	calls []time.Time
}

func (n *recordingNotifier) Notify(_ context.Context, _ model.Listing) error {
	n.calls = append(n.calls, time.Now())
	return nil
}

func TestPacedNotifier_FirstDeliveryImmediate(t *testing.T) {
	inner := &recordingNotifier{}
	n := NewPacedNotifier(inner, 5*time.Second)

	start := time.Now()
	if err := n.Notify(context.Background(), model.Listing{}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected first delivery to be near-instant, got %v", elapsed)
	}
}

func TestPacedNotifier_EnforcesMinInterval(t *testing.T) {
	inner := &recordingNotifier{}
	n := NewPacedNotifier(inner, 100*time.Millisecond)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := n.Notify(ctx, model.Listing{}); err != nil {
			t.Fatalf("notify %d: %v", i, err)
		}
	}

	if len(inner.calls) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(inner.calls))
	}
	for i := 1; i < len(inner.calls); i++ {
		// Allow 20ms for timer jitter.
		if gap := inner.calls[i].Sub(inner.calls[i-1]); gap < 80*time.Millisecond {
			t.Errorf("gap %d = %v, want >= 80ms", i, gap)
		}
	}
}

func TestPacedNotifier_ZeroIntervalDisablesPacing(t *testing.T) {
	inner := &recordingNotifier{}
	n := NewPacedNotifier(inner, 0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := n.Notify(ctx, model.Listing{}); err != nil {
			t.Fatalf("notify %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected no pacing, took %v", elapsed)
	}
}

func TestPacedNotifier_ContextCancellation(t *testing.T) {
	inner := &recordingNotifier{}
	n := NewPacedNotifier(inner, 5*time.Second) // long delay

	// First call consumes the burst.
	if err := n.Notify(context.Background(), model.Listing{}); err != nil {
		t.Fatalf("first notify: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	if err := n.Notify(ctx, model.Listing{}); err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
	if len(inner.calls) != 1 {
		t.Errorf("inner notifier should not be called after cancellation, got %d calls", len(inner.calls))
	}
}
