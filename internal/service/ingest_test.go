package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gopaska/lookbot/internal/config"
	"github.com/gopaska/lookbot/internal/domain"
)

type fakeStore struct {
	items []domain.Item
	err   error
}

func (f *fakeStore) Upsert(ctx context.Context, item domain.Item) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, existing := range f.items {
		if existing.FileUniqueID == item.FileUniqueID {
			return false, nil
		}
	}
	f.items = append(f.items, item)
	return true, nil
}

type fakeClassifier struct {
	out   string
	errs  []error // consumed per call, nil entries mean success
	calls int
}

func (f *fakeClassifier) Classify(ctx context.Context, imageURL string) (string, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return "", err
		}
	}
	return f.out, nil
}

func okResolver(ctx context.Context, fileID string) (string, error) {
	return "https://files.example/" + fileID, nil
}

func testConfig() *config.Config {
	return &config.Config{
		ChannelUsername: "boutique",
		RetentionDays:   35,
		ClassifyRetries: 0,
	}
}

func eligiblePost() Post {
	return Post{
		ChannelUsername: "boutique",
		MessageID:       42,
		PostedAt:        time.Now().Add(-10 * 24 * time.Hour),
		Photos: []Photo{
			{FileID: "small", FileUniqueID: "u1", Width: 90, Height: 120},
			{FileID: "big", FileUniqueID: "u1", Width: 900, Height: 1200},
		},
	}
}

func TestEligibility(t *testing.T) {
	in := NewIngestor(testConfig(), &fakeStore{}, &fakeClassifier{}, okResolver)
	now := time.Now()

	tests := []struct {
		name string
		post Post
		want Verdict
	}{
		{"eligible", eligiblePost(), Allow},
		{
			"channel username case and @ prefix tolerated",
			func() Post { p := eligiblePost(); p.ChannelUsername = "@BOUTIQUE"; return p }(),
			Allow,
		},
		{
			"wrong source",
			func() Post { p := eligiblePost(); p.ChannelUsername = "other_channel"; return p }(),
			DropWrongSource,
		},
		{
			"no image",
			func() Post { p := eligiblePost(); p.Photos = nil; return p }(),
			DropNoImage,
		},
		{
			"older than retention window",
			func() Post { p := eligiblePost(); p.PostedAt = now.Add(-36 * 24 * time.Hour); return p }(),
			DropTooOld,
		},
		{
			"just inside retention window",
			func() Post { p := eligiblePost(); p.PostedAt = now.Add(-34 * 24 * time.Hour); return p }(),
			Allow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := in.Eligibility(tt.post, now); got != tt.want {
				t.Errorf("Eligibility = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestProcessStoresClassifiedItem(t *testing.T) {
	store := &fakeStore{}
	clf := &fakeClassifier{out: "category=coat\nstyle=classic\ncolor=black\nseason=winter"}
	in := NewIngestor(testConfig(), store, clf, okResolver)

	if err := in.Process(context.Background(), eligiblePost()); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(store.items) != 1 {
		t.Fatalf("stored %d items, want 1", len(store.items))
	}
	item := store.items[0]

	if item.FileID != "big" {
		t.Errorf("classified file %q, want the highest-resolution variant", item.FileID)
	}
	if item.FileUniqueID != "u1" {
		t.Errorf("FileUniqueID = %q", item.FileUniqueID)
	}
	if item.MessageID == nil || *item.MessageID != 42 {
		t.Errorf("MessageID = %v, want 42", item.MessageID)
	}
	want := domain.Attributes{Category: "coat", Style: "classic", Color: "black", Season: "winter"}
	if item.Attributes != want {
		t.Errorf("Attributes = %+v, want %+v", item.Attributes, want)
	}
	if item.RawDescription == "" {
		t.Error("raw model output not kept for diagnostics")
	}
}

func TestProcessIneligiblePostWritesNothing(t *testing.T) {
	store := &fakeStore{}
	clf := &fakeClassifier{out: "category=coat"}
	in := NewIngestor(testConfig(), store, clf, okResolver)

	post := eligiblePost()
	post.ChannelUsername = "other_channel"

	if err := in.Process(context.Background(), post); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(store.items) != 0 {
		t.Fatalf("dropped post was stored: %+v", store.items)
	}
	if clf.calls != 0 {
		t.Errorf("classifier called %d times for a dropped post", clf.calls)
	}
}

func TestProcessClassifierFailureDegradesToUnknown(t *testing.T) {
	store := &fakeStore{}
	clf := &fakeClassifier{errs: []error{errors.New("boom")}}
	in := NewIngestor(testConfig(), store, clf, okResolver)

	if err := in.Process(context.Background(), eligiblePost()); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(store.items) != 1 {
		t.Fatalf("stored %d items, want 1 (photo must not be lost)", len(store.items))
	}
	if store.items[0].Attributes != domain.UnknownAttributes() {
		t.Errorf("Attributes = %+v, want all unknown", store.items[0].Attributes)
	}
}

func TestProcessRetriesTransientFailure(t *testing.T) {
	cfg := testConfig()
	cfg.ClassifyRetries = 1

	store := &fakeStore{}
	clf := &fakeClassifier{
		out:  "category=dress\nstyle=evening\ncolor=red\nseason=summer",
		errs: []error{domain.ErrClassifierRated, nil},
	}
	in := NewIngestor(cfg, store, clf, okResolver)

	if err := in.Process(context.Background(), eligiblePost()); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if clf.calls != 2 {
		t.Errorf("classifier called %d times, want 2 (one retry)", clf.calls)
	}
	if len(store.items) != 1 || store.items[0].Attributes.Category != "dress" {
		t.Errorf("retry result not stored: %+v", store.items)
	}
}

func TestProcessResolverFailureDegradesToUnknown(t *testing.T) {
	store := &fakeStore{}
	in := NewIngestor(testConfig(), store, &fakeClassifier{}, func(ctx context.Context, fileID string) (string, error) {
		return "", errors.New("telegram api down")
	})

	if err := in.Process(context.Background(), eligiblePost()); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(store.items) != 1 || store.items[0].Attributes != domain.UnknownAttributes() {
		t.Errorf("resolver failure did not degrade to unknown: %+v", store.items)
	}
}

func TestProcessStorageErrorPropagates(t *testing.T) {
	wantErr := errors.New("connection refused")
	in := NewIngestor(testConfig(), &fakeStore{err: wantErr}, &fakeClassifier{out: "category=coat"}, okResolver)

	if err := in.Process(context.Background(), eligiblePost()); !errors.Is(err, wantErr) {
		t.Fatalf("Process error = %v, want wrapped %v", err, wantErr)
	}
}

func TestProcessRedeliveryIsSilentNoop(t *testing.T) {
	store := &fakeStore{}
	clf := &fakeClassifier{out: "category=coat\nstyle=classic\ncolor=black\nseason=winter"}
	in := NewIngestor(testConfig(), store, clf, okResolver)

	post := eligiblePost()
	if err := in.Process(context.Background(), post); err != nil {
		t.Fatalf("first Process: %v", err)
	}
	if err := in.Process(context.Background(), post); err != nil {
		t.Fatalf("redelivered Process: %v", err)
	}

	if len(store.items) != 1 {
		t.Fatalf("redelivery created %d rows, want 1", len(store.items))
	}
}
