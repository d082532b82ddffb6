package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"hddwarn/internal/format"
)

// maxMessageLen is Telegram's limit for a single text message.
const maxMessageLen = 4096

// BotAPI abstracts the Telegram bot methods used here.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram mirrors reports to a single chat.
type Telegram struct {
	token  string
	chatID int64
	bot    BotAPI
	newBot func(token string) (BotAPI, error)
}

// NewTelegram returns a notifier that logs in lazily on first use.
func NewTelegram(token string, chatID int64) *Telegram {
	return &Telegram{token: token, chatID: chatID, newBot: newBotAPI}
}

// WithBot returns a copy of t that sends through bot.
func (t *Telegram) WithBot(bot BotAPI) *Telegram {
	cp := *t
	cp.bot = bot
	return &cp
}

func (t *Telegram) Name() string { return "telegram" }

// Notify sends subject and body as one plain-text message.
func (t *Telegram) Notify(ctx context.Context, subject, body string) error {
	if t.chatID == 0 {
		return errors.New("telegram chat_id not set")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.bot == nil {
		bot, err := t.newBot(t.token)
		if err != nil {
			return fmt.Errorf("telegram login: %w", err)
		}
		t.bot = bot
	}

	text := format.Truncate(subject+"\n\n"+body, maxMessageLen)
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func newBotAPI(token string) (BotAPI, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, err
	}
	return bot, nil
}
