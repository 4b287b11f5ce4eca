package handler

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	tg "github.com/gopaska/lookbot/internal/telegram"
)

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	// Session entry: a fresh /start always means fresh filters.
	h.sessions.Reset(chatID)

	text := "Вітаю! 👋\n\n" +
		"Я допоможу знайти речі з каналу бутика.\n" +
		"Оберіть фільтри — категорію, стиль, колір чи сезон — " +
		"і я надішлю фото, що підходять.\n\n" +
		"/filter — відкрити фільтри"

	markup := tg.InlineKeyboard(
		tg.ButtonRow(tg.InlineButton("🔍 Підібрати одяг", cbMenu)),
	)
	if err := tg.SendText(ctx, b, chatID, text, markup); err != nil {
		slog.Error("send welcome", "error", err, "chat_id", chatID)
	}
}

func (h *Handler) handleFilterCommand(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendTopMenu(ctx, update.Message.Chat.ID)
}
