package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/newsroom/internal/analytics"
	"github.com/ppiankov/newsroom/internal/model"
)

var (
	anPeriod  string
	anOutput  string
	anCompare bool
)

// analyticsCmd represents the analytics command
var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Generate weekly or monthly newsletter performance reports",
	Long: `Analytics records the current newsletter metrics in the history store
and renders a report.

Weekly reports show the latest snapshot, optionally compared with the
previous one. Monthly reports summarise the last four snapshots.

Example:
  newsroom analytics
  newsroom analytics --period week --compare
  newsroom analytics --period month --output html`,
	Args: cobra.NoArgs,
	RunE: runAnalytics,
}

func init() {
	rootCmd.AddCommand(analyticsCmd)

	analyticsCmd.Flags().StringVar(&anPeriod, "period", "week", "report period (week, month)")
	analyticsCmd.Flags().StringVar(&anOutput, "output", "markdown", "output format (markdown, json, html)")
	analyticsCmd.Flags().BoolVar(&anCompare, "compare", false, "compare with the previous snapshot")
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	period, err := model.ParsePeriod(anPeriod)
	if err != nil {
		return businessFailure(out, err)
	}
	output, err := analytics.ParseOutput(anOutput)
	if err != nil {
		return businessFailure(out, err)
	}

	reporter := analytics.NewReporter(analytics.MockSource{}, files(), logger)
	now := time.Now()

	var report any
	var markdown string
	switch period {
	case model.PeriodWeek:
		ctx, cancel := context.WithTimeout(commandContext(cmd), appCfg.HTTP.Timeout)
		defer cancel()
		r, err := reporter.Weekly(ctx, anCompare)
		if err != nil {
			return err
		}
		report, markdown = r, analytics.WeeklyMarkdown(r, now)
	case model.PeriodMonth:
		r, err := reporter.Monthly()
		if err != nil {
			return businessFailure(out, err)
		}
		report, markdown = r, analytics.MonthlyMarkdown(r, now)
	}

	var content string
	switch output {
	case analytics.OutputJSON:
		content, err = analytics.JSON(report)
	case analytics.OutputHTML:
		content, err = analytics.HTML(markdown, reportTitle(period))
	default:
		content = markdown
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, content)

	path, err := reporter.Save(period, output.Ext(), content)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n✓ Report saved to: %s\n", path)
	return nil
}

func reportTitle(p model.Period) string {
	if p == model.PeriodMonth {
		return "Monthly Newsletter Report"
	}
	return "Weekly Newsletter Report"
}
