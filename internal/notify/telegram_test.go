package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	sent []tgbotapi.Chattable
	err  error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: len(b.sent)}, b.err
}

func TestTelegramNotify(t *testing.T) {
	bot := &fakeBot{}
	tg := NewTelegram("token", 42).WithBot(bot)

	require.NoError(t, tg.Notify(context.Background(), "Disk Space Report", "Servername: nas\n"))
	require.Len(t, bot.sent, 1)

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.EqualValues(t, 42, msg.ChatID)
	assert.Equal(t, "Disk Space Report\n\nServername: nas\n", msg.Text)
}

func TestTelegramTruncatesLongReports(t *testing.T) {
	bot := &fakeBot{}
	tg := NewTelegram("token", 1).WithBot(bot)

	require.NoError(t, tg.Notify(context.Background(), "s", strings.Repeat("x", 5000)))
	msg := bot.sent[0].(tgbotapi.MessageConfig)
	assert.Len(t, msg.Text, maxMessageLen)
}

func TestTelegramKeepsMultiByteReportsIntact(t *testing.T) {
	bot := &fakeBot{}
	tg := NewTelegram("token", 1).WithBot(bot)

	body := "Servername: größe\n" + strings.Repeat("ä", 3000)
	require.NoError(t, tg.Notify(context.Background(), "s", body))
	msg := bot.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, "s\n\n"+body, msg.Text)

	require.NoError(t, tg.Notify(context.Background(), "s", strings.Repeat("ä", 5000)))
	msg = bot.sent[1].(tgbotapi.MessageConfig)
	assert.True(t, utf8.ValidString(msg.Text))
	assert.Equal(t, maxMessageLen, utf8.RuneCountInString(msg.Text))
}

func TestTelegramErrors(t *testing.T) {
	err := NewTelegram("token", 0).WithBot(&fakeBot{}).Notify(context.Background(), "s", "b")
	assert.Error(t, err)

	boom := errors.New("forbidden")
	err = NewTelegram("token", 1).WithBot(&fakeBot{err: boom}).Notify(context.Background(), "s", "b")
	assert.ErrorIs(t, err, boom)

	tg := NewTelegram("token", 1)
	tg.newBot = func(string) (BotAPI, error) { return nil, errors.New("unauthorized") }
	err = tg.Notify(context.Background(), "s", "b")
	assert.ErrorContains(t, err, "telegram login")
}
