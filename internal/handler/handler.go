package handler

import (
	"github.com/go-telegram/bot"

	"github.com/gopaska/lookbot/internal/config"
	"github.com/gopaska/lookbot/internal/repository"
	"github.com/gopaska/lookbot/internal/service"
)

// Handler holds all dependencies needed by command and callback handlers.
type Handler struct {
	bot      *bot.Bot
	cfg      *config.Config
	sessions *service.FilterSessions
	store    *repository.ItemStore
	ingestor *service.Ingestor
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot      *bot.Bot
	Cfg      *config.Config
	Sessions *service.FilterSessions
	Store    *repository.ItemStore
	Ingestor *service.Ingestor
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:      deps.Bot,
		cfg:      deps.Cfg,
		sessions: deps.Sessions,
		store:    deps.Store,
		ingestor: deps.Ingestor,
	}
}
