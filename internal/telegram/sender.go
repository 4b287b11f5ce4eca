package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// SendText sends a plain text message, optionally with an inline keyboard.
func SendText(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) error {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// EditText edits a message in place, used for menu screens so navigation
// does not spam the chat. Falls back to sending a fresh message when the
// original can no longer be edited.
func EditText(ctx context.Context, b *bot.Bot, chatID int64, messageID int, text string, markup models.ReplyMarkup) error {
	params := &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}
	if _, err := b.EditMessageText(ctx, params); err != nil {
		return SendText(ctx, b, chatID, text, markup)
	}
	return nil
}

// SendStoredPhoto re-sends a previously stored photo by its file id.
func SendStoredPhoto(ctx context.Context, b *bot.Bot, chatID int64, fileID, caption string) error {
	_, err := b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileString{Data: fileID},
		Caption: caption,
	})
	if err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}
