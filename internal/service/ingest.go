package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gopaska/lookbot/internal/config"
	"github.com/gopaska/lookbot/internal/domain"
)

// Verdict is the ingestion gate's decision for one channel post.
type Verdict int

const (
	Allow Verdict = iota
	DropWrongSource
	DropNoImage
	DropTooOld
)

func (v Verdict) String() string {
	switch v {
	case Allow:
		return "allow"
	case DropWrongSource:
		return "wrong-source"
	case DropNoImage:
		return "no-image"
	case DropTooOld:
		return "too-old"
	}
	return "unknown"
}

// Photo is one resolution variant attached to a post.
type Photo struct {
	FileID       string
	FileUniqueID string
	Width        int
	Height       int
}

// Post is the ingestion pipeline's view of a channel post.
type Post struct {
	ChannelUsername string
	MessageID       int64
	PostedAt        time.Time
	Photos          []Photo
}

// classifier issues one vision request and returns the raw text answer.
type classifier interface {
	Classify(ctx context.Context, imageURL string) (string, error)
}

// itemWriter is the slice of the item store the pipeline needs.
type itemWriter interface {
	Upsert(ctx context.Context, item domain.Item) (bool, error)
}

// urlResolver turns a Telegram file id into a fetchable download URL.
type urlResolver func(ctx context.Context, fileID string) (string, error)

// Ingestor runs the channel-post pipeline: gate, classify, validate, store.
// Deduplication of redelivered posts is not tracked here; the store's unique
// media key already settles it.
type Ingestor struct {
	cfg        *config.Config
	store      itemWriter
	classifier classifier
	resolveURL urlResolver
}

func NewIngestor(cfg *config.Config, store itemWriter, c classifier, resolveURL urlResolver) *Ingestor {
	return &Ingestor{cfg: cfg, store: store, classifier: c, resolveURL: resolveURL}
}

// Eligibility decides whether a post qualifies for classification. Checks run
// in order: source channel, image presence, age against the retention window
// measured at receipt time.
func (in *Ingestor) Eligibility(post Post, now time.Time) Verdict {
	if !strings.EqualFold(strings.TrimPrefix(post.ChannelUsername, "@"), in.cfg.ChannelUsername) {
		return DropWrongSource
	}
	if len(post.Photos) == 0 {
		return DropNoImage
	}
	if now.Sub(post.PostedAt) > in.cfg.RetentionWindow() {
		return DropTooOld
	}
	return Allow
}

// bestPhoto picks the highest-resolution variant.
func bestPhoto(photos []Photo) Photo {
	best := photos[0]
	for _, p := range photos[1:] {
		if p.Width*p.Height > best.Width*best.Height {
			best = p
		}
	}
	return best
}

// Process runs one post through the pipeline. A classification failure never
// loses the photo: after the retry budget the item is stored with every
// attribute unknown. Only storage errors propagate.
func (in *Ingestor) Process(ctx context.Context, post Post) error {
	log := slog.With("ingest_id", uuid.NewString(), "message_id", post.MessageID)

	if verdict := in.Eligibility(post, time.Now()); verdict != Allow {
		log.Info("post dropped", "reason", verdict.String())
		return nil
	}

	photo := bestPhoto(post.Photos)
	attrs, raw := in.classify(ctx, log, photo)

	messageID := post.MessageID
	inserted, err := in.store.Upsert(ctx, domain.Item{
		FileUniqueID:   photo.FileUniqueID,
		FileID:         photo.FileID,
		MessageID:      &messageID,
		CapturedAt:     post.PostedAt,
		Attributes:     attrs,
		RawDescription: raw,
	})
	if err != nil {
		return err
	}

	if inserted {
		log.Info("item stored",
			"file_unique_id", photo.FileUniqueID,
			"category", attrs.Category,
			"style", attrs.Style,
			"color", attrs.Color,
			"season", attrs.Season,
		)
	} else {
		log.Info("duplicate post ignored", "file_unique_id", photo.FileUniqueID)
	}
	return nil
}

// classify resolves the photo URL and queries the vision service, retrying
// transient failures up to the configured budget. Any terminal failure
// degrades to all-unknown attributes.
func (in *Ingestor) classify(ctx context.Context, log *slog.Logger, photo Photo) (domain.Attributes, string) {
	imgURL, err := in.resolveURL(ctx, photo.FileID)
	if err != nil {
		log.Error("resolve photo url", "error", err)
		return domain.UnknownAttributes(), ""
	}

	var raw string
	for attempt := 0; ; attempt++ {
		raw, err = in.classifier.Classify(ctx, imgURL)
		if err == nil {
			break
		}
		if attempt >= in.cfg.ClassifyRetries || !isTransient(err) {
			log.Error("classification failed", "error", err, "attempts", attempt+1)
			return domain.UnknownAttributes(), ""
		}
		log.Warn("classification retry", "error", err, "attempt", attempt+1)
		select {
		case <-ctx.Done():
			return domain.UnknownAttributes(), ""
		case <-time.After(config.ClassifyRetryDelay):
		}
	}

	return ParseAttributes(raw), raw
}

func isTransient(err error) bool {
	return errors.Is(err, domain.ErrClassifierRated) ||
		errors.Is(err, domain.ErrClassifierDown) ||
		errors.Is(err, context.DeadlineExceeded)
}
