package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	lookbot "github.com/gopaska/lookbot"
	"github.com/gopaska/lookbot/internal/config"
	"github.com/gopaska/lookbot/internal/handler"
	"github.com/gopaska/lookbot/internal/middleware"
	"github.com/gopaska/lookbot/internal/repository"
	"github.com/gopaska/lookbot/internal/service"
	"github.com/gopaska/lookbot/internal/telegram"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(lookbot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	store := repository.NewItemStore(pool)
	sessions := service.NewFilterSessions()
	vision := service.NewVisionService(cfg.OpenAIKey, cfg.OpenAIModel)

	// Handler pointer for use in the default handler closure
	var h *handler.Handler

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil {
				return
			}
			// Channel posts have no command surface; everything else that
			// reaches the default handler is ignored.
			if update.ChannelPost != nil {
				h.HandleChannelPost(ctx, b, update)
			}
		}),
	}
	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	ingestor := service.NewIngestor(cfg, store, vision,
		func(ctx context.Context, fileID string) (string, error) {
			return telegram.GetFileURL(ctx, b, fileID)
		})

	h = handler.New(handler.Deps{
		Bot:      b,
		Cfg:      cfg,
		Sessions: sessions,
		Store:    store,
		Ingestor: ingestor,
	})
	h.Register()

	// Retention sweep: once at startup, then periodically
	purge := func() {
		removed, err := store.PurgeOlderThan(ctx, cfg.RetentionWindow())
		if err != nil {
			slog.Error("purge old items", "error", err)
			return
		}
		if removed > 0 {
			slog.Info("old items purged", "count", removed)
		}
	}
	purge()

	go func() {
		ticker := time.NewTicker(config.PurgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				purge()
			}
		}
	}()

	slog.Info("starting bot",
		"channel", cfg.ChannelUsername,
		"retention_days", cfg.RetentionDays,
		"model", cfg.OpenAIModel,
	)
	b.Start(ctx)

	slog.Info("bot stopped gracefully")
}
