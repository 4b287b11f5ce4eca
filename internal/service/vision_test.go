package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gopaska/lookbot/internal/domain"
)

func newStubVision(t *testing.T, handler http.HandlerFunc) *VisionService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := NewVisionService("test-key", "gpt-4o-mini")
	s.baseURL = srv.URL
	return s
}

func TestClassifySendsPinnedRequest(t *testing.T) {
	var got chatRequest
	s := newStubVision(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "category: coat\nstyle: classic\ncolor: black\nseason: winter"}},
			},
		})
	})

	raw, err := s.Classify(context.Background(), "https://files.example/photo.jpg")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !strings.Contains(raw, "category: coat") {
		t.Errorf("raw = %q", raw)
	}

	if got.Temperature != 0 {
		t.Errorf("temperature = %v, want pinned 0", got.Temperature)
	}
	if got.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", got.Model)
	}
	if len(got.Messages) != 1 || len(got.Messages[0].Content) != 2 {
		t.Fatalf("unexpected message shape: %+v", got.Messages)
	}
	if got.Messages[0].Content[1].ImageURL == nil ||
		got.Messages[0].Content[1].ImageURL.URL != "https://files.example/photo.jpg" {
		t.Errorf("image part = %+v", got.Messages[0].Content[1])
	}
}

func TestClassifyPromptEnumeratesVocabularies(t *testing.T) {
	prompt := classifyPrompt()

	for _, d := range domain.Dimensions {
		if !strings.Contains(prompt, d.Key()+":") {
			t.Errorf("prompt missing dimension %s", d.Key())
		}
		for _, v := range d.Values() {
			if !strings.Contains(prompt, v.Key) {
				t.Errorf("prompt missing %s value %q", d.Key(), v.Key)
			}
		}
	}
}

func TestClassifyErrorTagging(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rate limited", http.StatusTooManyRequests, "{}", domain.ErrClassifierRated},
		{"server error", http.StatusBadGateway, "{}", domain.ErrClassifierDown},
		{"empty choices", http.StatusOK, `{"choices":[]}`, domain.ErrClassifierNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStubVision(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := s.Classify(context.Background(), "https://files.example/x.jpg")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Classify error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
