package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newsroom/internal/extract"
	"github.com/ppiankov/newsroom/internal/social"
)

var (
	socialEssay   string
	socialFormats string
)

// socialCmd represents the social command
var socialCmd = &cobra.Command{
	Use:   "social",
	Short: "Generate social posts from a finished essay",
	Long: `Social turns one essay into a numbered thread of short posts, a long-form
post and a newsletter teaser, and saves each under the social posts
directory together with metadata.json.

HTML essays are converted to Markdown first.

Example:
  newsroom social --essay content/essays/platform-teams.md
  newsroom social --essay content/essays/platform-teams.md --formats twitter,teaser`,
	Args: cobra.NoArgs,
	RunE: runSocial,
}

func init() {
	rootCmd.AddCommand(socialCmd)

	socialCmd.Flags().StringVar(&socialEssay, "essay", "", "path to essay file (markdown or HTML)")
	socialCmd.Flags().StringVar(&socialFormats, "formats", "all", "formats to generate: all, or a comma-separated list of twitter, linkedin, teaser")
	_ = socialCmd.MarkFlagRequired("essay")
}

func runSocial(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	formats, err := social.ParseFormats(socialFormats)
	if err != nil {
		return businessFailure(out, err)
	}
	essay, err := extract.ReadEssay(socialEssay)
	if err != nil {
		return businessFailure(out, err)
	}

	fmt.Fprintf(out, "\n%s\nSOCIAL REPURPOSE: %s\n%s\n\n", banner, essay.Title, banner)

	bundle := social.Generate(essay, formats, appCfg.Social)
	for _, f := range bundle.Formats {
		switch f {
		case social.FormatTwitter:
			fmt.Fprintf(out, "✓ Generated thread with %d posts\n", len(bundle.Thread))
		case social.FormatLinkedIn:
			fmt.Fprintf(out, "✓ Generated long-form post (%d characters)\n", len([]rune(bundle.LongPost)))
			if bundle.LongPostOverBudget {
				fmt.Fprintf(out, "⚠ Long-form post exceeds %d characters, consider trimming\n", appCfg.Social.LongPostOptimal)
			}
		case social.FormatTeaser:
			fmt.Fprintln(out, "✓ Generated newsletter teaser")
		}
	}

	name := strings.TrimSuffix(filepath.Base(socialEssay), filepath.Ext(socialEssay))
	paths, err := social.NewWriter(appCfg.Stores.SocialDir, logger).Save(name, bundle)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(out, "  saved %s\n", p)
	}

	fmt.Fprintf(out, "\n%s\n✓ Social content generated and saved\n%s\n\n", banner, banner)
	return nil
}
