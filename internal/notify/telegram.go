// Package notify delivers earning notifications to Telegram.
package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"earn_webapp/internal/logger"
	"earn_webapp/internal/postback"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends an HTML message to the account's chat, or to the
// fallback channel when the account never linked Telegram.
type TelegramNotifier struct {
	sender       Sender
	fallbackChat int64
	log          *slog.Logger
}

// NewTelegramNotifier authorizes the bot token. fallbackChat may be 0.
func NewTelegramNotifier(token string, fallbackChat int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	n := NewWithSender(bot, fallbackChat)
	n.log.Info("notifier bot authorized", "username", bot.Self.UserName)
	return n, nil
}

func NewWithSender(s Sender, fallbackChat int64) *TelegramNotifier {
	return &TelegramNotifier{
		sender:       s,
		fallbackChat: fallbackChat,
		log:          logger.With("component", "telegram_notifier"),
	}
}

func (t *TelegramNotifier) NotifyEarning(ctx context.Context, n postback.EarningNotification) error {
	chatID := t.fallbackChat
	if n.ChatID != nil && *n.ChatID != 0 {
		chatID = *n.ChatID
	}
	if chatID == 0 {
		t.log.Debug("no telegram chat for recipient, skipping", "recipient", n.Recipient)
		return nil
	}

	msg := tgbotapi.NewMessage(chatID, FormatEarning(n))
	msg.ParseMode = "HTML"

	// Send has no context parameter; the goroutine is abandoned on timeout.
	errc := make(chan error, 1)
	go func() {
		_, err := t.sender.Send(msg)
		errc <- err
	}()
	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("telegram send to %d: %w", chatID, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FormatEarning renders the notification body in Telegram HTML.
func FormatEarning(n postback.EarningNotification) string {
	var b strings.Builder
	b.WriteString("💰 <b>Earning credited</b>\n\n")
	fmt.Fprintf(&b, "Amount: <b>%s%s</b>\n", html.EscapeString(n.Currency), n.Amount.StringFixed(2))
	fmt.Fprintf(&b, "Event: %s\n", html.EscapeString(n.EventName))
	fmt.Fprintf(&b, "Campaign: %s\n", html.EscapeString(n.CampaignName))
	fmt.Fprintf(&b, "Account: <code>%s</code>\n", html.EscapeString(n.Recipient))
	fmt.Fprintf(&b, "🕐 %s %s", n.Date, n.Time)
	return b.String()
}

// Noop drops every notification. Used when NOTIFY_ENABLED is false or no
// bot token is configured.
type Noop struct{}

func (Noop) NotifyEarning(context.Context, postback.EarningNotification) error { return nil }
