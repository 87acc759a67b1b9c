// Package translator provides a factory for creating translator
// adapters based on configured provider settings.
package translator

import (
	"context"
	"fmt"
	"time"

	"github.com/wwm-locale/localetool/internal/adapters/driven/translator/ollama"
	"github.com/wwm-locale/localetool/internal/adapters/driven/translator/openai"
	"github.com/wwm-locale/localetool/internal/core/domain"
	"github.com/wwm-locale/localetool/internal/core/ports/driven"
	"github.com/wwm-locale/localetool/internal/logger"
)

// pingTimeout bounds the validation check so a dead backend fails fast
// instead of hanging the command.
const pingTimeout = 5 * time.Second

// CreateTranslator creates a translator for the given settings. The
// returned translator is not validated; use CreateAndValidateTranslator
// to also check connectivity.
func CreateTranslator(ts domain.TranslatorSettings, target string, prompts driven.PromptStore) (driven.Translator, error) {
	if !ts.Provider.IsValid() {
		return nil, fmt.Errorf("%w: unknown translator provider %q", domain.ErrConfiguration, ts.Provider)
	}

	switch ts.Provider {
	case domain.ProviderOpenAI:
		t, err := openai.NewTranslator(openai.Config{
			APIKey:         ts.APIKey,
			BaseURL:        ts.BaseURL,
			Model:          ts.Model,
			TargetLanguage: target,
		})
		if err != nil {
			return nil, err
		}
		t.SetPromptStore(prompts)
		return t, nil

	case domain.ProviderOllama:
		t, err := ollama.NewTranslator(ollama.Config{
			BaseURL:        ts.BaseURL,
			Model:          ts.Model,
			TargetLanguage: target,
		})
		if err != nil {
			return nil, err
		}
		t.SetPromptStore(prompts)
		return t, nil

	default:
		return nil, fmt.Errorf("%w: unknown translator provider %q", domain.ErrConfiguration, ts.Provider)
	}
}

// CreateAndValidateTranslator creates a translator and pings the
// backend to verify it is reachable before any jobs are dispatched.
func CreateAndValidateTranslator(ctx context.Context, ts domain.TranslatorSettings, target string, prompts driven.PromptStore) (driven.Translator, error) {
	t, err := CreateTranslator(ts, target, prompts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	logger.Debug("Validating %s translator (model %s)", ts.Provider, t.ModelName())
	if err := t.Ping(pingCtx); err != nil {
		_ = t.Close()
		return nil, fmt.Errorf("translator validation failed: %w", err)
	}

	return t, nil
}
