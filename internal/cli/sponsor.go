package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newsroom/internal/sponsor"
)

var (
	spNiche    string
	spCount    int
	spCompany  string
	spTemplate string
	spFill     map[string]string
	spNote     string
)

// sponsorCmd represents the sponsor command
var sponsorCmd = &cobra.Command{
	Use:   "sponsor",
	Short: "Manage sponsor prospecting and outreach",
	Long: `Sponsor keeps the outreach pipeline: prospects, active and closed
sponsors, each record in exactly one stage.

Example:
  newsroom sponsor prospects --niche devops
  newsroom sponsor pitch --company "Acme Corp" --template value-first \
      --fill RELEVANT_TOPIC="incident review" --fill UPCOMING_TOPIC="on-call"
  newsroom sponsor status PROSPECT_20260101_000 contacted --note "Sent intro email"`,
}

var sponsorProspectsCmd = &cobra.Command{
	Use:   "prospects",
	Short: "Generate placeholder prospects for a niche and add them to the pipeline",
	Args:  cobra.NoArgs,
	RunE:  runSponsorProspects,
}

var sponsorPitchCmd = &cobra.Command{
	Use:   "pitch",
	Short: "Write a sponsorship pitch quoting the latest newsletter metrics",
	Long: `Pitch fills a template with the company name and the latest analytics
snapshot. Bracketed placeholders the template declares can be filled with
--fill KEY=VALUE; the rest stay in place for manual editing.`,
	Args: cobra.NoArgs,
	RunE: runSponsorPitch,
}

var sponsorStatusCmd = &cobra.Command{
	Use:   "status <prospect-id> <status>",
	Short: "Change a prospect's status, moving it to the matching stage",
	Long: `Status sets one of prospect, contacted, negotiating, active or closed.
Active records move to the active stage, closed ones to closed, the rest
stay with the prospects.`,
	Args: cobra.ExactArgs(2),
	RunE: runSponsorStatus,
}

func init() {
	rootCmd.AddCommand(sponsorCmd)
	sponsorCmd.AddCommand(sponsorProspectsCmd)
	sponsorCmd.AddCommand(sponsorPitchCmd)
	sponsorCmd.AddCommand(sponsorStatusCmd)

	sponsorProspectsCmd.Flags().StringVar(&spNiche, "niche", "developer-tools", "newsletter niche for targeting (developer-tools, ai-ml, devops, web3)")
	sponsorProspectsCmd.Flags().IntVar(&spCount, "count", sponsor.DefaultProspectCount, "maximum number of prospects")

	sponsorPitchCmd.Flags().StringVar(&spCompany, "company", "", "company name for the pitch")
	sponsorPitchCmd.Flags().StringVar(&spTemplate, "template", sponsor.DefaultTemplate, "pitch template ("+strings.Join(sponsor.TemplateNames(), ", ")+")")
	sponsorPitchCmd.Flags().StringToStringVar(&spFill, "fill", nil, "placeholder value, KEY=VALUE (repeatable)")
	_ = sponsorPitchCmd.MarkFlagRequired("company")

	sponsorStatusCmd.Flags().StringVar(&spNote, "note", "", "note to record with the change")
}

func runSponsorProspects(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	pipeline := sponsor.NewPipeline(files(), logger)

	prospects := sponsor.GenerateProspects(spNiche, spCount, pipeline.Now())
	if err := pipeline.AddProspects(prospects); err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ Added %d prospects for niche %s\n", len(prospects), spNiche)
	fmt.Fprintln(out, "\nTop 5 Prospects:")
	for i, p := range sponsor.TopByFit(prospects, 5) {
		fmt.Fprintf(out, "%d. %s (%s) - Fit Score: %d\n", i+1, p.CompanyName, p.Category, p.FitScore)
	}
	return nil
}

func runSponsorPitch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	tmpl, err := sponsor.LookupTemplate(spTemplate)
	if err != nil {
		return businessFailure(out, err)
	}
	history, err := files().LoadAnalytics()
	if err != nil {
		return fmt.Errorf("failed to load analytics: %w", err)
	}

	pitch, err := tmpl.Render(spCompany, sponsor.MetricsFromHistory(history), spFill)
	if err != nil {
		return businessFailure(out, err)
	}

	fmt.Fprintf(out, "\n%s\nSPONSORSHIP PITCH FOR: %s\n%s\n", banner, spCompany, banner)
	fmt.Fprintln(out, pitch)
	fmt.Fprintf(out, "%s\n\n", banner)

	path, err := sponsor.SavePitch(appCfg.Stores.DataDir, spCompany, pitch, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Pitch saved to: %s\n", path)
	return nil
}

func runSponsorStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	id, status := args[0], args[1]

	p, err := sponsor.NewPipeline(files(), logger).UpdateStatus(id, status, spNote)
	if err != nil {
		return businessFailure(out, err)
	}

	fmt.Fprintf(out, "✓ Updated prospect %s to status: %s (%s)\n", p.ID, p.Status, p.Status.Stage())
	return nil
}
