package handler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/gopaska/lookbot/internal/domain"
	tg "github.com/gopaska/lookbot/internal/telegram"
)

// handleShowFiltered runs the current filter against the store.
func (h *Handler) handleShowFiltered(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.ack(ctx, update)
	chatID, _, ok := callbackChat(update)
	if !ok {
		return
	}
	h.deliverResults(ctx, chatID, h.sessions.Snapshot(chatID))
}

// handleShowAll ignores the selections and returns the most recent items.
func (h *Handler) handleShowAll(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.ack(ctx, update)
	chatID, _, ok := callbackChat(update)
	if !ok {
		return
	}
	h.deliverResults(ctx, chatID, domain.NewFilterState())
}

// deliverResults sends every matching photo with an attribute caption, or an
// explicit "nothing found" notice. Store errors are logged, never shown.
func (h *Handler) deliverResults(ctx context.Context, chatID int64, filter *domain.FilterState) {
	items, err := h.store.Find(ctx, filter, h.cfg.ResultLimit)
	if err != nil {
		slog.Error("find items", "error", err, "chat_id", chatID)
		if err := tg.SendText(ctx, h.bot, chatID, "Щось пішло не так, спробуйте пізніше 🙏", nil); err != nil {
			slog.Error("send failure notice", "error", err, "chat_id", chatID)
		}
		return
	}

	if len(items) == 0 {
		if err := tg.SendText(ctx, h.bot, chatID, "Нічого не знайдено за цими фільтрами 🤷", nil); err != nil {
			slog.Error("send empty notice", "error", err, "chat_id", chatID)
		}
		return
	}

	for _, item := range items {
		if err := tg.SendStoredPhoto(ctx, h.bot, chatID, item.FileID, itemCaption(item)); err != nil {
			slog.Error("send result photo", "error", err,
				"chat_id", chatID, "file_unique_id", item.FileUniqueID)
		}
	}
}

// itemCaption renders the known attributes as a short display line.
func itemCaption(item domain.Item) string {
	var parts []string
	for _, d := range domain.Dimensions {
		if v := item.Attributes.Get(d); v != domain.Unknown {
			parts = append(parts, d.ValueLabel(v))
		}
	}
	return strings.Join(parts, " · ")
}
