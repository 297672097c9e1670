// Package bot wraps the Telegram API for outbound notifications.
package bot

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// SendError reports a notification that could not be delivered.
type SendError struct {
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send telegram message: %v", e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// Bot sends notifications to a single Telegram chat. It is outbound-only:
// it never polls for updates and handles no commands.
type Bot struct {
	api    telegramAPI
	chatID int64
	log    *slog.Logger
}

// New creates a Bot with the given Telegram token and target chat.
func New(token string, chatID int64, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return newWithAPI(api, chatID, log), nil
}

func newWithAPI(api telegramAPI, chatID int64, log *slog.Logger) *Bot {
	return &Bot{
		api:    api,
		chatID: chatID,
		log:    log,
	}
}

// SendMessage sends a text message to the configured chat. Any transport or
// API failure is wrapped into a SendError.
func (b *Bot) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		return &SendError{Err: err}
	}
	b.log.Debug("sent message", "chat_id", b.chatID, "text", text)
	return nil
}
