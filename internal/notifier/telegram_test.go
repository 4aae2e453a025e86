package notifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// fakeBotAPI serves getMe and sendMessage like the Telegram Bot API.
type fakeBotAPI struct {
	sendOK bool
	chatID string
	text   string
	mode   string
	sends  int
}

func (f *fakeBotAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"jobfeed","username":"jobfeed_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			f.sends++
			r.ParseForm()
			f.chatID = r.FormValue("chat_id")
			f.text = r.FormValue("text")
			f.mode = r.FormValue("parse_mode")
			if !f.sendOK {
				w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
				return
			}
			w.Write([]byte(`{"ok":true,"result":{"message_id":10,"date":1700000000,"chat":{"id":42,"type":"private"}}}`))
		default:
			http.NotFound(w, r)
		}
	}
}

func newTestTelegram(t *testing.T, fake *fakeBotAPI) *TelegramNotifier {
	t.Helper()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	bot, err := tgbotapi.NewBotAPIWithClient("test-token", srv.URL+"/bot%s/%s", srv.Client())
	if err != nil {
		t.Fatalf("NewBotAPIWithClient: %v", err)
	}
	n := NewTelegramNotifier(bot, 42, MessageOptions{}, discardLogger())
	n.now = func() time.Time { return fixedNow }
	return n
}

func TestTelegramNotifier_SendsHTMLMessage(t *testing.T) {
	fake := &fakeBotAPI{sendOK: true}
	n := newTestTelegram(t, fake)

	listing := sampleListing("Data Analyst <Remote>", "Acme & Co")
	if err := n.Notify(context.Background(), listing); err != nil {
		t.Fatalf("Notify() = %v", err)
	}

	if fake.chatID != "42" {
		t.Errorf("chat_id = %q, want 42", fake.chatID)
	}
	if fake.mode != tgbotapi.ModeHTML {
		t.Errorf("parse_mode = %q, want HTML", fake.mode)
	}
	if !strings.Contains(fake.text, "<b>Acme &amp; Co — Data Analyst &lt;Remote&gt;</b>") {
		t.Errorf("text not escaped or missing headline: %q", fake.text)
	}
	if !strings.Contains(fake.text, `<a href="https://example.com/apply">Apply Now</a>`) {
		t.Errorf("text missing apply link: %q", fake.text)
	}
}

func TestTelegramNotifier_APIErrorIsReturned(t *testing.T) {
	fake := &fakeBotAPI{sendOK: false}
	n := newTestTelegram(t, fake)

	if err := n.Notify(context.Background(), sampleListing("Data Analyst", "Acme")); err == nil {
		t.Fatal("expected error when the Bot API reports ok=false")
	}
}

func TestTelegramNotifier_CancelledContext(t *testing.T) {
	fake := &fakeBotAPI{sendOK: true}
	n := newTestTelegram(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := n.Notify(ctx, sampleListing("Data Analyst", "Acme")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if fake.sends != 0 {
		t.Errorf("expected no sendMessage calls, got %d", fake.sends)
	}
}
