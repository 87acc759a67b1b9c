// Package openai provides a translator adapter for OpenAI-compatible
// chat-completions APIs. The default base URL points at OpenRouter,
// which is what the locale project translates through in production.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wwm-locale/localetool/internal/core/domain"
	"github.com/wwm-locale/localetool/internal/core/ports/driven"
)

// Ensure Translator implements the interface.
var _ driven.Translator = (*Translator)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "google/gemini-2.0-flash-001"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the OpenAI-compatible translator.
type Config struct {
	// APIKey is the API key (required).
	APIKey string

	// BaseURL is the API base URL (default: OpenRouter).
	BaseURL string

	// Model is the model to use (default: google/gemini-2.0-flash-001).
	Model string

	// TargetLanguage is interpolated into the system prompt.
	TargetLanguage string

	// Timeout is the fallback request timeout when the caller's
	// context carries no deadline (default: 120s).
	Timeout time.Duration
}

// Translator translates single records through a chat-completions
// endpoint.
type Translator struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	model       string
	targetLang  string
	promptStore driven.PromptStore
}

// chatCompletionRequest is the /chat/completions request format.
type chatCompletionRequest struct {
	Model    string              `json:"model"`
	Messages []chatCompletionMsg `json:"messages"`
}

// chatCompletionMsg is the chat message format.
type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse is the /chat/completions response format.
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// defaultSystemPrompt is the fallback when no PromptStore is
// configured. %s is the target language.
const defaultSystemPrompt = `You are a translator for the game Where Winds Meets.
Translate the following text to %s accurately, not missing any source word, maintaining the game's tone and context.
Preserve any markup or placeholder tokens exactly as they appear.
Respond with the translated text only, no explanations.`

// NewTranslator creates a new OpenAI-compatible translator.
func NewTranslator(cfg Config) (*Translator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai: API key is required", domain.ErrConfiguration)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Translator{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		targetLang: cfg.TargetLanguage,
	}, nil
}

// Translate sends one record's text through the chat endpoint.
// Errors are classified into the domain taxonomy so the orchestrator
// can decide what to retry.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: t.model,
		Messages: []chatCompletionMsg{
			{Role: "system", Content: t.systemPrompt()},
			{Role: "user", Content: text},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		t.baseURL+"/chat/completions",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("X-Title", "localetool")

	resp, err := t.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", domain.ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("%w: %s", domain.ErrRateLimited, strings.TrimSpace(string(body)))
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrNetwork, resp.StatusCode, strings.TrimSpace(string(body)))
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("openai error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("openai error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("openai: no response choices returned")
	}

	return cleanResponse(chatResp.Choices[0].Message.Content), nil
}

// systemPrompt loads the prompt template, falling back to the embedded
// default, and fills in the target language.
func (t *Translator) systemPrompt() string {
	tmpl := defaultSystemPrompt
	if t.promptStore != nil {
		if p, err := t.promptStore.Load(driven.PromptTranslateSystem); err == nil {
			tmpl = p
		}
	}
	if strings.Contains(tmpl, "%s") {
		return fmt.Sprintf(tmpl, t.targetLang)
	}
	return tmpl
}

// cleanResponse strips markdown code fences some models wrap their
// output in.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if i := strings.Index(s, "\n"); i >= 0 && !strings.ContainsAny(s[:i], " \t") {
			// Drop a language tag on the opening fence.
			s = s[i+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// ModelName returns the model identifier being used.
func (t *Translator) ModelName() string {
	return t.model
}

// SetPromptStore sets the prompt store for loading the customisable
// system prompt. If not set, the embedded default is used.
func (t *Translator) SetPromptStore(store driven.PromptStore) {
	t.promptStore = store
}

// Ping validates the backend by checking the /models endpoint.
// This is a lightweight check that validates the API key without
// running inference.
func (t *Translator) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/models", http.NoBody)
	if err != nil {
		return fmt.Errorf("openai: create ping request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("openai: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("openai: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("openai: API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// Close releases resources.
func (t *Translator) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
