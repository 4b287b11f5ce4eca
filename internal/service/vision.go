package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gopaska/lookbot/internal/config"
	"github.com/gopaska/lookbot/internal/domain"
)

// VisionService classifies a photo with the OpenAI chat-completions API.
// Temperature is pinned to zero: the output feeds a validator that only
// accepts exact vocabulary members.
type VisionService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewVisionService(apiKey, model string) *VisionService {
	return &VisionService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    "https://api.openai.com/v1",
		httpClient: &http.Client{Timeout: config.ClassifyTimeout},
	}
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// classifyPrompt fixes the exact output shape. The model must answer with
// four `key: value` lines and must not invent values outside the lists.
func classifyPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are labeling one clothing-store photo. Answer with exactly four lines, ")
	sb.WriteString("each `key: value`, nothing else. For every key pick one value from its list, ")
	sb.WriteString("or the word unknown if you cannot tell. Never invent values outside the lists.\n")
	for _, d := range domain.Dimensions {
		keys := make([]string, 0, len(d.Values()))
		for _, v := range d.Values() {
			keys = append(keys, v.Key)
		}
		fmt.Fprintf(&sb, "%s: %s\n", d.Key(), strings.Join(keys, ", "))
	}
	return sb.String()
}

// Classify sends one vision request for the image at the given URL and
// returns the raw text answer. Transport and service failures come back as
// tagged errors; they never panic or escape past the ingest pipeline.
func (s *VisionService) Classify(ctx context.Context, imgURL string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: classifyPrompt()},
				{Type: "image_url", ImageURL: &imageURL{URL: imgURL}},
			},
		}},
		Temperature: 0,
		MaxTokens:   100,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("classify request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", domain.ErrClassifierRated
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w (status %d)", domain.ErrClassifierDown, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("classify request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return "", domain.ErrClassifierNoContent
	}

	return chatResp.Choices[0].Message.Content, nil
}
