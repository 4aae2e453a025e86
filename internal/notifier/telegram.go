package notifier

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/amishk599/jobfeed/internal/model"
)

// Ensure TelegramNotifier implements model.Notifier.
var _ model.Notifier = (*TelegramNotifier)(nil)

// TelegramNotifier sends each listing as an HTML message to a Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	opts   MessageOptions
	logger *slog.Logger
	now    func() time.Time
}

// NewTelegramBot connects to the Bot API with the given token. It calls
// getMe, so a bad token fails here rather than on the first delivery.
func NewTelegramBot(token string, client *http.Client) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return bot, nil
}

// NewTelegramNotifier returns a notifier posting to chatID through bot.
func NewTelegramNotifier(bot *tgbotapi.BotAPI, chatID int64, opts MessageOptions, logger *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// Notify sends one message. The Bot API client has no context support, so
// ctx is only checked before sending.
func (t *TelegramNotifier) Notify(ctx context.Context, l model.Listing) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send to telegram: %w", err)
	}

	m := buildMessage(l, t.opts, t.now())
	msg := tgbotapi.NewMessage(t.chatID, telegramText(m))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send to telegram: %w", err)
	}
	t.logger.Info("telegram message sent", "employer", m.Employer, "title", m.Title)
	return nil
}

func telegramText(m message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", html.EscapeString(m.headline()))
	fmt.Fprintf(&b, "📍 %s\n", html.EscapeString(m.Location))
	fmt.Fprintf(&b, "🕒 %s\n", html.EscapeString(m.Age))
	fmt.Fprintf(&b, "🏷 %s\n", html.EscapeString(m.Source))
	fmt.Fprintf(&b, "🔗 <a href=\"%s\">Apply Now</a>\n", html.EscapeString(m.Link))
	fmt.Fprintf(&b, "<i>%s</i>", html.EscapeString(m.Footer))
	return b.String()
}
