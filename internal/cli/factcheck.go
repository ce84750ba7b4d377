package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newsroom/internal/factcheck"
	"github.com/ppiankov/newsroom/internal/model"
)

var (
	fcDraft   string
	fcClaim   string
	fcStrict  bool
	fcAdd     bool
	fcSource  string
	fcContext string
)

// factcheckCmd represents the factcheck command
var factcheckCmd = &cobra.Command{
	Use:   "factcheck",
	Short: "Fact-check a draft or a single claim against the verified-claims library",
	Long: `Fact-check extracts percentage and statistic claims from a draft and
matches each against the verified-claims library.

In strict mode any claim missing from the library fails, and the draft is
reported as blocked.

Example:
  newsroom factcheck --draft content/drafts/essay.md
  newsroom factcheck --draft content/drafts/essay.md --strict
  newsroom factcheck --claim "Platform teams grew 45% in 2024"
  newsroom factcheck --claim "Platform teams grew 45% in 2024" --add --source https://example.com/report`,
	Args: cobra.NoArgs,
	RunE: runFactcheck,
}

func init() {
	rootCmd.AddCommand(factcheckCmd)

	factcheckCmd.Flags().StringVar(&fcDraft, "draft", "", "path to draft file to fact-check (markdown or HTML)")
	factcheckCmd.Flags().StringVar(&fcClaim, "claim", "", "single claim to verify")
	factcheckCmd.Flags().BoolVar(&fcStrict, "strict", false, "fail on any claim missing from the library")
	factcheckCmd.Flags().BoolVar(&fcAdd, "add", false, "add --claim to the library (requires --source)")
	factcheckCmd.Flags().StringVar(&fcSource, "source", "", "source URL for the claim")
	factcheckCmd.Flags().StringVar(&fcContext, "context", "", "context to store with an added claim")
}

func runFactcheck(cmd *cobra.Command, args []string) error {
	checker := factcheck.NewChecker(files(), logger)
	out := cmd.OutOrStdout()

	switch {
	case fcDraft != "":
		report, err := checker.CheckDraft(fcDraft, fcStrict)
		if err != nil {
			return businessFailure(out, err)
		}
		printFactCheckReport(cmd, report)

		path, err := checker.SaveReport(report)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Report saved to: %s\n", path)

	case fcClaim != "" && fcAdd:
		if fcSource == "" {
			fmt.Fprintln(out, "⚠ --add requires --source")
			return nil
		}
		if _, err := checker.AddToLibrary(fcClaim, fcSource, fcContext); err != nil {
			return businessFailure(out, err)
		}
		fmt.Fprintln(out, "✓ Added claim to fact-check library")

	case fcClaim != "":
		verdict, err := checker.VerifyClaim(fcClaim, fcStrict)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(verdict, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal verdict: %w", err)
		}
		fmt.Fprintf(out, "\nVerification result: %s\n", data)

	default:
		return cmd.Help()
	}
	return nil
}

func printFactCheckReport(cmd *cobra.Command, r *model.FactCheckReport) {
	out := cmd.OutOrStdout()
	mode := "relaxed"
	if r.Strict {
		mode = "strict"
	}

	fmt.Fprintf(out, "\n%s\n", banner)
	fmt.Fprintf(out, "FACT-CHECK REPORT: %s\n", r.Draft)
	fmt.Fprintf(out, "%s\n\n", banner)
	fmt.Fprintf(out, "  Mode:          %s\n", mode)
	fmt.Fprintf(out, "  Total claims:  %d\n", r.TotalClaims)
	fmt.Fprintf(out, "  Citations:     %d\n", r.Citations)
	fmt.Fprintf(out, "  ✓ Verified:    %d\n", r.Verified)
	fmt.Fprintf(out, "  ⚠ Unverified:  %d\n", r.Unverified)
	fmt.Fprintf(out, "  ✗ Failed:      %d\n\n", r.Failed)

	for _, d := range r.Details {
		if d.Verification.Verified == model.True {
			continue
		}
		glyph := "⚠"
		if d.Verification.Verified == model.False {
			glyph = "✗"
		}
		fmt.Fprintf(out, "%s [%s] %s\n", glyph, d.Kind, d.Claim)
		if d.Verification.Note != "" {
			fmt.Fprintf(out, "   %s\n", d.Verification.Note)
		}
	}

	if r.Blocked() {
		fmt.Fprintf(out, "\n✗ Draft blocked: %d claim(s) need a verified source\n", r.Failed)
	} else if r.Unverified == 0 && r.Failed == 0 {
		fmt.Fprintln(out, "✓ All claims verified")
	}
	fmt.Fprintln(out)
}
