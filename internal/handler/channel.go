package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/gopaska/lookbot/internal/service"
)

// HandleChannelPost feeds a channel post into the ingestion pipeline. Called
// from the default update handler; the bot library runs each update in its
// own goroutine, so a slow classification never blocks filter callbacks.
func (h *Handler) HandleChannelPost(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.ChannelPost
	if msg == nil {
		return
	}

	post := service.Post{
		ChannelUsername: msg.Chat.Username,
		MessageID:       int64(msg.ID),
		PostedAt:        time.Unix(int64(msg.Date), 0),
		Photos:          toPhotos(msg.Photo),
	}

	if err := h.ingestor.Process(ctx, post); err != nil {
		slog.Error("ingest channel post", "error", err, "message_id", msg.ID)
	}
}

func toPhotos(sizes []models.PhotoSize) []service.Photo {
	photos := make([]service.Photo, 0, len(sizes))
	for _, p := range sizes {
		photos = append(photos, service.Photo{
			FileID:       p.FileID,
			FileUniqueID: p.FileUniqueID,
			Width:        p.Width,
			Height:       p.Height,
		})
	}
	return photos
}
