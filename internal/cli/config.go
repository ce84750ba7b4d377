package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/newsroom/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage newsroom configuration",
	Long: `Manage newsroom configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (NEWSROOM_*, e.g. NEWSROOM_STORES_DATA_DIR)
3. Config file (~/.newsroom/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after defaults, config file, env vars and flags are merged.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.newsroom/config.yaml with every available option.`,
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", configFile)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file found (using defaults)\n\n")
	}

	yamlData, err := yaml.Marshal(appCfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "  Current Configuration")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	fmt.Fprintln(out, string(yamlData))
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	if appCfg.LLM.APIKey != "" {
		fmt.Fprintf(out, "LLM provider %q enabled (API key from environment)\n\n", appCfg.LLM.Provider)
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}
		path = filepath.Join(home, ".newsroom", "config.yaml")
	}
	return writeDefaultConfig(cmd, path)
}

// writeDefaultConfig creates path with the built-in defaults. An existing
// file is left untouched.
func writeDefaultConfig(cmd *cobra.Command, path string) (err error) {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "⚠ Config file already exists: %s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "  Use 'newsroom config show' to view it, or delete it first to recreate\n")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	yamlData, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	printf := func(format string, a ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(f, format, a...)
	}

	printf("# Newsroom Configuration File\n")
	printf("#\n")
	printf("# Configuration hierarchy (highest to lowest priority):\n")
	printf("#   1. CLI flags\n")
	printf("#   2. Environment variables (NEWSROOM_*)\n")
	printf("#   3. This config file\n")
	printf("#   4. Built-in defaults\n\n")
	printf("%s", yamlData)
	printf("\n# API keys belong in .env.local, never in this file:\n")
	printf("#   OPENAI_API_KEY=sk-...\n")
	if err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "\nTo view the configuration:\n  newsroom config show\n")
	return nil
}
