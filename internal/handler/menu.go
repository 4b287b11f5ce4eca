package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/gopaska/lookbot/internal/domain"
	tg "github.com/gopaska/lookbot/internal/telegram"
)

// topMenuView renders the top-level menu text and keyboard for the chat's
// current selections.
func (h *Handler) topMenuView(chatID int64) (string, *models.InlineKeyboardMarkup) {
	state := h.sessions.Snapshot(chatID)

	var sb strings.Builder
	sb.WriteString("🔍 Фільтри\n\n")
	for _, d := range domain.Dimensions {
		keys := state.Keys(d)
		if len(keys) == 0 {
			fmt.Fprintf(&sb, "%s: всі\n", d.Label())
			continue
		}
		labels := make([]string, 0, len(keys))
		for _, k := range keys {
			labels = append(labels, d.ValueLabel(k))
		}
		fmt.Fprintf(&sb, "%s: %s\n", d.Label(), strings.Join(labels, ", "))
	}
	sb.WriteString("\nОберіть вимір або покажіть результати.")

	var rows [][]models.InlineKeyboardButton
	for _, d := range domain.Dimensions {
		title := d.Label()
		if n := state.Count(d); n > 0 {
			title = fmt.Sprintf("%s (%d)", title, n)
		}
		rows = append(rows, tg.ButtonRow(tg.InlineButton(title, cbDimPrefix+d.Key())))
	}
	rows = append(rows, tg.ButtonRow(
		tg.InlineButton("👗 Показати", cbShow),
		tg.InlineButton("📦 Показати всі", cbShowAll),
	))
	rows = append(rows, tg.ButtonRow(tg.InlineButton("♻️ Скинути фільтри", cbReset)))

	return sb.String(), tg.InlineKeyboard(rows...)
}

// dimensionView renders one dimension's selection screen with ✅ marks.
func (h *Handler) dimensionView(chatID int64, d domain.Dimension) (string, *models.InlineKeyboardMarkup) {
	state := h.sessions.Snapshot(chatID)

	text := fmt.Sprintf("%s — оберіть один чи кілька варіантів:", d.Label())

	buttons := make([]models.InlineKeyboardButton, 0, len(d.Values()))
	for _, v := range d.Values() {
		title := v.Label
		if state.Selected(d, v.Key) {
			title = "✅ " + title
		}
		buttons = append(buttons, tg.InlineButton(title, cbTogPrefix+d.Key()+"_"+v.Key))
	}

	rows := tg.ButtonGrid(2, buttons...)
	rows = append(rows, tg.ButtonRow(tg.InlineButton("⬅️ Назад", cbMenu)))

	return text, tg.InlineKeyboard(rows...)
}

func (h *Handler) sendTopMenu(ctx context.Context, chatID int64) {
	text, markup := h.topMenuView(chatID)
	if err := tg.SendText(ctx, h.bot, chatID, text, markup); err != nil {
		slog.Error("send filter menu", "error", err, "chat_id", chatID)
	}
}

func (h *Handler) editToTopMenu(ctx context.Context, chatID int64, messageID int) {
	text, markup := h.topMenuView(chatID)
	if err := tg.EditText(ctx, h.bot, chatID, messageID, text, markup); err != nil {
		slog.Error("edit filter menu", "error", err, "chat_id", chatID)
	}
}

// handleBackToMenu returns to the top menu keeping every selection.
func (h *Handler) handleBackToMenu(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.ack(ctx, update)
	chatID, messageID, ok := callbackChat(update)
	if !ok {
		return
	}
	h.editToTopMenu(ctx, chatID, messageID)
}

// handleReset clears all selections and re-renders the top menu.
func (h *Handler) handleReset(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.ack(ctx, update)
	chatID, messageID, ok := callbackChat(update)
	if !ok {
		return
	}
	h.sessions.Reset(chatID)
	h.editToTopMenu(ctx, chatID, messageID)
}

// handleEnterDimension shows one dimension's selection screen. Navigation
// only; selections are untouched.
func (h *Handler) handleEnterDimension(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.ack(ctx, update)
	chatID, messageID, ok := callbackChat(update)
	if !ok {
		return
	}

	dimKey := strings.TrimPrefix(update.CallbackQuery.Data, cbDimPrefix)
	d, ok := domain.DimensionByKey(dimKey)
	if !ok {
		return
	}

	text, markup := h.dimensionView(chatID, d)
	if err := tg.EditText(ctx, b, chatID, messageID, text, markup); err != nil {
		slog.Error("edit dimension screen", "error", err, "chat_id", chatID)
	}
}

// handleToggle flips one value and re-renders the dimension screen.
func (h *Handler) handleToggle(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.ack(ctx, update)
	chatID, messageID, ok := callbackChat(update)
	if !ok {
		return
	}

	// flt_tog_<dimension>_<value>; value keys never contain underscores.
	payload := strings.TrimPrefix(update.CallbackQuery.Data, cbTogPrefix)
	dimKey, value, found := strings.Cut(payload, "_")
	if !found {
		return
	}
	d, ok := domain.DimensionByKey(dimKey)
	if !ok {
		return
	}

	h.sessions.Toggle(chatID, d, value)

	text, markup := h.dimensionView(chatID, d)
	if err := tg.EditText(ctx, b, chatID, messageID, text, markup); err != nil {
		slog.Error("edit dimension screen", "error", err, "chat_id", chatID)
	}
}
