package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Callback token protocol. Dimension and value suffixes are appended with
// underscores; anything that fails to parse back is ignored.
const (
	cbMenu      = "flt_menu"  // top menu, selections preserved
	cbReset     = "flt_reset" // clear all selections, back to top menu
	cbDimPrefix = "flt_dim_"  // flt_dim_<dimension>
	cbTogPrefix = "flt_tog_"  // flt_tog_<dimension>_<value>
	cbShow      = "flt_show"  // run the filtered query
	cbShowAll   = "flt_all"   // show everything regardless of selections
)

// Register registers all command and callback handlers on the bot instance.
func (h *Handler) Register() {
	// Commands
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, h.handleStart)
	h.bot.RegisterHandler(bot.HandlerTypeMessageText, "/filter", bot.MatchTypePrefix, h.handleFilterCommand)

	// Filter menu callbacks. Toggle before dimension: both share no prefix,
	// but registration order keeps routing unambiguous anyway.
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbTogPrefix, bot.MatchTypePrefix, h.handleToggle)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbDimPrefix, bot.MatchTypePrefix, h.handleEnterDimension)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbMenu, bot.MatchTypeExact, h.handleBackToMenu)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbReset, bot.MatchTypeExact, h.handleReset)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbShow, bot.MatchTypeExact, h.handleShowFiltered)
	h.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, cbShowAll, bot.MatchTypeExact, h.handleShowAll)

	// Note: channel posts are routed here from the default handler in main.
}

// ack answers the callback query so the client stops showing a spinner.
// Unrecognized tokens get nothing but this ack.
func (h *Handler) ack(ctx context.Context, update *models.Update) {
	if update.CallbackQuery != nil {
		h.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: update.CallbackQuery.ID,
		})
	}
}

// callbackChat extracts the chat and message the callback originated from.
func callbackChat(update *models.Update) (chatID int64, messageID int, ok bool) {
	if update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return 0, 0, false
	}
	msg := update.CallbackQuery.Message.Message
	return msg.Chat.ID, msg.ID, true
}
