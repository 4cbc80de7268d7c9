package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"earn_webapp/internal/logger"
	"earn_webapp/internal/postback"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu    sync.Mutex
	sent  []tgbotapi.MessageConfig
	err   error
	block chan struct{}
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, f.err
}

func sample(chatID *int64) postback.EarningNotification {
	return postback.EarningNotification{
		Recipient:    "9876543210@ybl",
		ChatID:       chatID,
		Amount:       decimal.NewFromInt(25),
		Currency:     "₹",
		EventName:    "Trail Purchase",
		CampaignName: "Story <TV>",
		Date:         "05/03/2026",
		Time:         "12:00:05 am",
	}
}

func TestNotifyEarningUsesAccountChat(t *testing.T) {
	logger.Discard()
	s := &fakeSender{}
	n := NewWithSender(s, -100)

	chat := int64(42)
	require.NoError(t, n.NotifyEarning(context.Background(), sample(&chat)))

	require.Len(t, s.sent, 1)
	assert.Equal(t, int64(42), s.sent[0].ChatID)
	assert.Equal(t, "HTML", s.sent[0].ParseMode)
	assert.Contains(t, s.sent[0].Text, "₹25.00")
	assert.Contains(t, s.sent[0].Text, "Story &lt;TV&gt;")
}

func TestNotifyEarningFallsBackToChannel(t *testing.T) {
	logger.Discard()
	s := &fakeSender{}
	n := NewWithSender(s, -100)

	require.NoError(t, n.NotifyEarning(context.Background(), sample(nil)))
	require.Len(t, s.sent, 1)
	assert.Equal(t, int64(-100), s.sent[0].ChatID)
}

func TestNotifyEarningWithoutAnyChatIsNoop(t *testing.T) {
	logger.Discard()
	s := &fakeSender{}
	n := NewWithSender(s, 0)

	require.NoError(t, n.NotifyEarning(context.Background(), sample(nil)))
	assert.Empty(t, s.sent)
}

func TestNotifyEarningSendError(t *testing.T) {
	logger.Discard()
	s := &fakeSender{err: errors.New("Too Many Requests: retry after 5")}
	n := NewWithSender(s, -100)

	err := n.NotifyEarning(context.Background(), sample(nil))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "retry after"))
}

func TestNotifyEarningHonoursDeadline(t *testing.T) {
	logger.Discard()
	s := &fakeSender{block: make(chan struct{})}
	defer close(s.block)
	n := NewWithSender(s, -100)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := n.NotifyEarning(ctx, sample(nil))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFormatEarning(t *testing.T) {
	text := FormatEarning(sample(nil))
	assert.True(t, strings.HasPrefix(text, "💰 <b>Earning credited</b>"))
	assert.Contains(t, text, "<code>9876543210@ybl</code>")
	assert.Contains(t, text, "05/03/2026 12:00:05 am")
}

func TestNoop(t *testing.T) {
	var n postback.Notifier = Noop{}
	assert.NoError(t, n.NotifyEarning(context.Background(), sample(nil)))
}
