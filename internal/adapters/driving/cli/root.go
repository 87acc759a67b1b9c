// Package cli provides the cobra-based command-line interface. It is
// the driving adapter: commands wire driven adapters into the core
// services and translate flags into settings overrides.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wwm-locale/localetool/internal/adapters/driven/config/file"
	"github.com/wwm-locale/localetool/internal/adapters/driven/fragments"
	"github.com/wwm-locale/localetool/internal/adapters/driven/packer"
	"github.com/wwm-locale/localetool/internal/core/domain"
	"github.com/wwm-locale/localetool/internal/core/ports/driven"
	"github.com/wwm-locale/localetool/internal/core/ports/driving"
	"github.com/wwm-locale/localetool/internal/core/services"
	"github.com/wwm-locale/localetool/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// verbose enables debug logging.
var verbose bool

// Services wired by initServices. Commands that need them call
// initServices in their RunE; version and help stay dependency-free.
var (
	configStore     driven.ConfigStore
	promptStore     driven.PromptStore
	fragmentStore   driven.FragmentStore
	mergeService    driving.Merger
	workflowService driving.Workflow
	settings        domain.Settings
)

var rootCmd = &cobra.Command{
	Use:   "localetool",
	Short: "Locale patching and translation tool for Where Winds Meets",
	Long: `localetool manages locale text for the game Where Winds Meets.

It unpacks the game's locale archive into JSON fragment files, merges
translated patches over the original text by record id, drives batch
machine translation with retries and rate limiting, and packs the
merged result back into an archive the game can load.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices loads configuration and wires the core services.
// Safe to call from multiple commands; later calls are no-ops.
func initServices() error {
	if workflowService != nil {
		return nil
	}

	cs, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}
	configStore = cs

	ps, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("open prompt store: %w", err)
	}
	promptStore = ps

	settings = loadSettings(configStore)

	fragmentStore = fragments.NewStore()
	mergeService = services.NewMergeService()

	pk, err := packer.NewExecPacker(settings.Packer.Binary)
	if err != nil {
		return fmt.Errorf("configure packer: %w", err)
	}
	workflowService = services.NewWorkflowService(pk, fragmentStore, mergeService)

	return nil
}

// loadSettings builds the effective settings: defaults, then config
// file values, then environment variables. Flag overrides are applied
// by individual commands on top.
func loadSettings(cfg driven.ConfigStore) domain.Settings {
	s := domain.DefaultSettings()

	if v := cfg.GetString("translator.provider"); v != "" {
		s.Translator.Provider = domain.TranslatorProvider(v)
	}
	if v := cfg.GetString("translator.api_key"); v != "" {
		s.Translator.APIKey = v
	}
	if v := cfg.GetString("translator.base_url"); v != "" {
		s.Translator.BaseURL = v
	}
	if v := cfg.GetString("translator.model"); v != "" {
		s.Translator.Model = v
	}

	if v := cfg.GetString("orchestrator.target_language"); v != "" {
		s.Orchestrator.TargetLanguage = v
	}
	if v := cfg.GetInt("orchestrator.workers"); v > 0 {
		s.Orchestrator.Workers = v
	}
	if v := cfg.GetInt("orchestrator.max_attempts"); v > 0 {
		s.Orchestrator.MaxAttempts = v
	}
	if v := cfg.GetFloat("orchestrator.requests_per_second"); v > 0 {
		s.Orchestrator.RequestsPerSecond = v
	}
	if v := cfg.GetInt("orchestrator.burst"); v > 0 {
		s.Orchestrator.Burst = v
	}

	if v := cfg.GetString("packer.binary"); v != "" {
		s.Packer.Binary = v
	}

	// Environment wins over the config file for credentials
	if v := os.Getenv("LOCALETOOL_API_KEY"); v != "" {
		s.Translator.APIKey = v
	} else if v := os.Getenv("OR_API_KEY"); v != "" {
		s.Translator.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		s.Translator.BaseURL = v
	}

	return s
}
