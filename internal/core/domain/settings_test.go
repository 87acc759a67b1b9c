package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslatorProvider_IsValid(t *testing.T) {
	assert.True(t, ProviderOpenAI.IsValid())
	assert.True(t, ProviderOllama.IsValid())
	assert.False(t, TranslatorProvider("deepl").IsValid())
	assert.False(t, TranslatorProvider("").IsValid())
}

func TestTranslatorProvider_RequiresAPIKey(t *testing.T) {
	assert.True(t, ProviderOpenAI.RequiresAPIKey())
	assert.False(t, ProviderOllama.RequiresAPIKey())
}

func TestSettings_ValidateDefaultsNeedKey(t *testing.T) {
	s := DefaultSettings()

	// Defaults use the OpenAI-compatible provider, which needs a key
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))

	s.Translator.APIKey = "sk-test"
	assert.NoError(t, s.Validate())
}

func TestSettings_ValidateOllamaNeedsNoKey(t *testing.T) {
	s := DefaultSettings()
	s.Translator.Provider = ProviderOllama
	s.Translator.Model = "qwen2.5:7b"

	assert.NoError(t, s.Validate())
}

func TestSettings_ValidateRejectsBadValues(t *testing.T) {
	base := DefaultSettings()
	base.Translator.APIKey = "sk-test"

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"unknown provider", func(s *Settings) { s.Translator.Provider = "deepl" }},
		{"empty model", func(s *Settings) { s.Translator.Model = "" }},
		{"empty language", func(s *Settings) { s.Orchestrator.TargetLanguage = "" }},
		{"zero workers", func(s *Settings) { s.Orchestrator.Workers = 0 }},
		{"zero attempts", func(s *Settings) { s.Orchestrator.MaxAttempts = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfiguration))
		})
	}
}
