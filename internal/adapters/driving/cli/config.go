package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage persistent configuration",
	Long: `View and set configuration stored in the localetool config file.

Keys use dot notation, e.g.:
  translator.provider              openai or ollama
  translator.api_key               API key for the translation backend
  translator.base_url              API base URL
  translator.model                 Model identifier
  orchestrator.target_language     Target language name
  orchestrator.workers             Worker pool size
  orchestrator.max_attempts        Attempts per record
  orchestrator.requests_per_second Rate limit across all workers
  packer.binary                    Path to the archive packer executable`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}

	cmd.Printf("Config file: %s\n\n", configStore.Path())

	cmd.Println("[translator]")
	cmd.Printf("  provider:  %s\n", settings.Translator.Provider)
	cmd.Printf("  model:     %s\n", settings.Translator.Model)
	cmd.Printf("  base_url:  %s\n", settings.Translator.BaseURL)
	if settings.Translator.APIKey != "" {
		cmd.Printf("  api_key:   %s\n", maskAPIKey(settings.Translator.APIKey))
	} else {
		cmd.Printf("  api_key:   (not set)\n")
	}
	cmd.Println()

	cmd.Println("[orchestrator]")
	cmd.Printf("  target_language:     %s\n", settings.Orchestrator.TargetLanguage)
	cmd.Printf("  workers:             %d\n", settings.Orchestrator.Workers)
	cmd.Printf("  max_attempts:        %d\n", settings.Orchestrator.MaxAttempts)
	cmd.Printf("  requests_per_second: %g\n", settings.Orchestrator.RequestsPerSecond)
	cmd.Println()

	cmd.Println("[packer]")
	cmd.Printf("  binary: %s\n", settings.Packer.Binary)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}

	key, raw := args[0], args[1]

	// Store numbers and booleans typed so reads round-trip
	var value any = raw
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		value = i
	} else if f, err := strconv.ParseFloat(raw, 64); err == nil {
		value = f
	} else if b, err := strconv.ParseBool(raw); err == nil {
		value = b
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	cmd.Printf("Set %s.\n", key)
	return nil
}

// maskAPIKey shows only the last few characters of a key.
func maskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
