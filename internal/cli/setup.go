package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newsroom/internal/setup"
)

// validateSetupCmd represents the validate-setup command
var validateSetupCmd = &cobra.Command{
	Use:   "validate-setup",
	Short: "Check the working directory, API keys and network access",
	Long: `Validate-setup checks that the environment file, data directories,
skill definitions and the Hacker News API are all in place.

Exits with status 1 when any check fails.`,
	Args: cobra.NoArgs,
	RunE: runValidateSetup,
}

func init() {
	rootCmd.AddCommand(validateSetupCmd)
}

func runValidateSetup(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	base, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("error finding working directory: %w", err)
	}

	heading(out, "Newsroom - Setup Validation")
	v := setup.NewValidator(base, appCfg, newHackerNews(false), logger)
	report := v.Run(commandContext(cmd))
	setup.Print(out, report)

	if !report.OK() {
		return setup.ErrChecksFailed
	}
	return nil
}
