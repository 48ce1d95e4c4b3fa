package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Oracle is the vision/text classifier the cascade talks to. AnalyzeImage
// opens a conversation around one photo and returns an opaque token;
// Continue asks a follow-up question in that conversation without resending
// the image. Answers are comma-separated food labels or the literal
// UnidentifiedLabel sentinel.
type Oracle interface {
	AnalyzeImage(ctx context.Context, prompt, base64Image string) (answer, token string, err error)
	Continue(ctx context.Context, token, prompt string) (string, error)
}

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

// OpenAIService implements Oracle against the chat completions API. The
// conversation token maps to the stored message history, so later cascade
// levels reuse what the model already saw.
type OpenAIService struct {
	apiKey string
	model  string
	client *http.Client

	mu            sync.Mutex
	conversations map[string][]chatMessage
}

func NewOpenAIService() (*OpenAIService, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}

	model := strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if model == "" {
		model = "o4-mini"
	}

	timeout := 90 * time.Second
	if v := os.Getenv("OPENAI_TIMEOUT_SECONDS"); v != "" {
		if sec, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && sec > 0 {
			timeout = time.Duration(sec) * time.Second
		}
	}

	return &OpenAIService{
		apiKey:        apiKey,
		model:         model,
		client:        &http.Client{Timeout: timeout},
		conversations: make(map[string][]chatMessage),
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *OpenAIService) AnalyzeImage(ctx context.Context, prompt, base64Image string) (string, string, error) {
	msg := chatMessage{
		Role: "user",
		Content: []map[string]any{
			{"type": "text", "text": prompt},
			{"type": "image_url", "image_url": map[string]any{
				"url":    "data:image/jpeg;base64," + base64Image,
				"detail": "low",
			}},
		},
	}

	answer, err := s.complete(ctx, []chatMessage{msg})
	if err != nil {
		return "", "", err
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.conversations[token] = []chatMessage{msg, {Role: "assistant", Content: answer}}
	s.mu.Unlock()
	return answer, token, nil
}

func (s *OpenAIService) Continue(ctx context.Context, token, prompt string) (string, error) {
	s.mu.Lock()
	history, ok := s.conversations[token]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("unknown conversation token %q", token)
	}

	messages := append(append([]chatMessage{}, history...), chatMessage{Role: "user", Content: prompt})
	answer, err := s.complete(ctx, messages)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.conversations[token] = append(messages, chatMessage{Role: "assistant", Content: answer})
	s.mu.Unlock()
	return answer, nil
}

func (s *OpenAIService) complete(ctx context.Context, messages []chatMessage) (string, error) {
	payload := map[string]any{
		"model":                 s.model,
		"messages":              messages,
		"max_completion_tokens": 1000,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIChatURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read openai response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("openai API error %d: %s", resp.StatusCode, string(raw))
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", fmt.Errorf("failed to parse openai JSON: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("openai response contained no choices")
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}
