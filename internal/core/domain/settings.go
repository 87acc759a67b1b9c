package domain

import (
	"fmt"
	"time"
)

// TranslatorProvider identifies the translation backend.
type TranslatorProvider string

// Available translation providers.
const (
	// ProviderOpenAI is any OpenAI-compatible chat-completions API,
	// including OpenRouter.
	ProviderOpenAI TranslatorProvider = "openai"

	// ProviderOllama is a local Ollama instance.
	ProviderOllama TranslatorProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p TranslatorProvider) IsValid() bool {
	switch p {
	case ProviderOpenAI, ProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p TranslatorProvider) RequiresAPIKey() bool {
	return p == ProviderOpenAI
}

// String returns the string representation.
func (p TranslatorProvider) String() string {
	return string(p)
}

// TranslatorSettings holds translation backend configuration.
type TranslatorSettings struct {
	// Provider is the translation backend.
	Provider TranslatorProvider

	// APIKey authenticates against the backend (OpenAI/OpenRouter).
	APIKey string

	// BaseURL is the API endpoint.
	BaseURL string

	// Model is the model identifier.
	Model string
}

// OrchestratorSettings configures the translation worker pool.
type OrchestratorSettings struct {
	// TargetLanguage is the language records are translated into.
	TargetLanguage string

	// Workers is the fixed worker pool size.
	Workers int

	// MaxAttempts is the per-job call budget, including the first.
	MaxAttempts int

	// RequestsPerSecond throttles calls across all workers.
	// 0 disables throttling.
	RequestsPerSecond float64

	// Burst is the rate limiter's burst size.
	Burst int

	// CallTimeout bounds a single translation call.
	CallTimeout time.Duration

	// Backoff is the wait policy between attempts.
	Backoff BackoffPolicy
}

// PackerSettings points at the external archive packer.
type PackerSettings struct {
	// Binary is the path to the packer executable.
	Binary string
}

// Settings is the complete validated configuration, built once at
// startup and passed in. Nothing reads configuration mid-run.
type Settings struct {
	Translator   TranslatorSettings
	Orchestrator OrchestratorSettings
	Packer       PackerSettings
}

// DefaultSettings returns settings with the stock OpenRouter backend
// and a conservative worker pool.
func DefaultSettings() Settings {
	return Settings{
		Translator: TranslatorSettings{
			Provider: ProviderOpenAI,
			BaseURL:  "https://openrouter.ai/api/v1",
			Model:    "google/gemini-2.0-flash-001",
		},
		Orchestrator: OrchestratorSettings{
			TargetLanguage:    "Vietnamese",
			Workers:           4,
			MaxAttempts:       3,
			RequestsPerSecond: 2.0,
			Burst:             4,
			CallTimeout:       120 * time.Second,
			Backoff:           DefaultBackoffPolicy(),
		},
		Packer: PackerSettings{
			Binary: "yanyun",
		},
	}
}

// Validate checks the settings needed before any translation job is
// dispatched. Failures wrap ErrConfiguration and are fatal at startup.
func (s *Settings) Validate() error {
	if !s.Translator.Provider.IsValid() {
		return fmt.Errorf("%w: unknown translator provider %q", ErrConfiguration, s.Translator.Provider)
	}
	if s.Translator.Provider.RequiresAPIKey() && s.Translator.APIKey == "" {
		return fmt.Errorf("%w: %s provider requires an API key", ErrConfiguration, s.Translator.Provider)
	}
	if s.Translator.Model == "" {
		return fmt.Errorf("%w: translator model is empty", ErrConfiguration)
	}
	if s.Orchestrator.TargetLanguage == "" {
		return fmt.Errorf("%w: target language is empty", ErrConfiguration)
	}
	if s.Orchestrator.Workers < 1 {
		return fmt.Errorf("%w: worker count must be at least 1, got %d", ErrConfiguration, s.Orchestrator.Workers)
	}
	if s.Orchestrator.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrConfiguration, s.Orchestrator.MaxAttempts)
	}
	if s.Orchestrator.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: requests per second must not be negative", ErrConfiguration)
	}
	return nil
}
