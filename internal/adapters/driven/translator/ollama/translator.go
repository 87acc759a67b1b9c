// Package ollama provides a translator adapter backed by a local
// Ollama instance, useful for offline or cost-free translation runs.
package ollama

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
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "qwen2.5:7b"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the Ollama translator.
type Config struct {
	// BaseURL is the Ollama API base URL (default: http://localhost:11434).
	BaseURL string

	// Model is the model to use.
	Model string

	// TargetLanguage is interpolated into the system prompt.
	TargetLanguage string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Translator translates records through Ollama's /api/chat endpoint.
type Translator struct {
	client      *http.Client
	baseURL     string
	model       string
	targetLang  string
	promptStore driven.PromptStore
}

// chatRequest is the Ollama /api/chat request format.
type chatRequest struct {
	Model    string    `json:"model"`
	Messages []chatMsg `json:"messages"`
	Stream   bool      `json:"stream"`
}

// chatMsg is the Ollama chat message format.
type chatMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the Ollama /api/chat response format.
type chatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Error string `json:"error,omitempty"`
}

const defaultSystemPrompt = `You are a translator for the game Where Winds Meets.
Translate the following text to %s accurately, not missing any source word, maintaining the game's tone and context.
Preserve any markup or placeholder tokens exactly as they appear.
Respond with the translated text only, no explanations.`

// NewTranslator creates a new Ollama translator.
func NewTranslator(cfg Config) (*Translator, error) {
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
		model:      cfg.Model,
		targetLang: cfg.TargetLanguage,
	}, nil
}

// Translate sends one record's text through /api/chat.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	reqBody := chatRequest{
		Model: t.model,
		Messages: []chatMsg{
			{Role: "system", Content: t.systemPrompt()},
			{Role: "user", Content: text},
		},
		Stream: false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		t.baseURL+"/api/chat",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
		return "", fmt.Errorf("ollama error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if chatResp.Error != "" {
		return "", fmt.Errorf("ollama error: %s", chatResp.Error)
	}

	return strings.TrimSpace(chatResp.Message.Content), nil
}

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

// ModelName returns the model identifier being used.
func (t *Translator) ModelName() string {
	return t.model
}

// SetPromptStore sets the prompt store for loading the customisable
// system prompt.
func (t *Translator) SetPromptStore(store driven.PromptStore) {
	t.promptStore = store
}

// Ping checks that the Ollama instance is reachable and the model is
// available locally.
func (t *Translator) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/api/tags", http.NoBody)
	if err != nil {
		return fmt.Errorf("ollama: create ping request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama: is it running at %s? %w", t.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama: API returned status %d", resp.StatusCode)
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return fmt.Errorf("ollama: decode tags response: %w", err)
	}

	for _, m := range tags.Models {
		if m.Name == t.model || strings.TrimSuffix(m.Name, ":latest") == t.model {
			return nil
		}
	}
	return fmt.Errorf("ollama: model %q not found locally (try: ollama pull %s)", t.model, t.model)
}

// Close releases resources.
func (t *Translator) Close() error {
	return nil
}
