package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ppiankov/newsroom/internal/model"
	"github.com/ppiankov/newsroom/internal/util"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Output selects how a report is rendered
type Output string

const (
	OutputMarkdown Output = "markdown"
	OutputJSON     Output = "json"
	OutputHTML     Output = "html"
)

// ParseOutput validates an output format name
func ParseOutput(s string) (Output, error) {
	switch o := Output(s); o {
	case OutputMarkdown, OutputJSON, OutputHTML:
		return o, nil
	}
	return "", fmt.Errorf("%w: unknown output %q (markdown, json, html)", model.ErrInvalidInput, s)
}

// Ext returns the file extension used when saving this output
func (o Output) Ext() string {
	switch o {
	case OutputJSON:
		return "json"
	case OutputHTML:
		return "html"
	default:
		return "md"
	}
}

// WeeklyMarkdown renders a weekly report
func WeeklyMarkdown(r *model.WeeklyReport, generated time.Time) string {
	c := r.Current
	md := header(model.PeriodWeek, generated)

	md = append(md,
		"## Subscribers",
		"- **Total:** "+humanize.Comma(int64(c.Subscribers.Total)),
		fmt.Sprintf("- **New this week:** %d", c.Subscribers.NewThisWeek),
		fmt.Sprintf("- **Unsubscribed:** %d", c.Subscribers.Unsubscribed),
		fmt.Sprintf("- **Net growth:** %d\n", c.Subscribers.NetGrowth),

		"## Engagement",
		"- **Open rate:** "+util.ShortFloat(c.Engagement.OpenRate)+"%",
		"- **Click-through rate:** "+util.ShortFloat(c.Engagement.ClickThroughRate)+"%",
		"- **Total opens:** "+humanize.Comma(int64(c.Engagement.TotalOpens)),
		fmt.Sprintf("- **Total clicks:** %d\n", c.Engagement.TotalClicks),

		"## Top Performing",
		"- **Most opened:** "+c.TopPerforming.MostOpened,
		"- **Most clicked:** "+c.TopPerforming.MostClicked,
		"- **Avg read time:** "+c.TopPerforming.AvgReadTime+"\n",

		"## Revenue",
		"- **Monthly recurring:** $"+humanize.Comma(int64(c.Revenue.MonthlyRecurring)),
		"- **Sponsors:** $"+humanize.Comma(int64(c.Revenue.Sponsors)),
		"- **Total:** $"+humanize.Comma(int64(c.Revenue.Total))+"\n",
	)

	if ch := r.Changes; ch != nil {
		md = append(md,
			"## Week-over-Week Changes",
			fmt.Sprintf("- **Subscriber growth:** %+.1f%%", ch.SubscriberGrowth),
			fmt.Sprintf("- **Open rate change:** %+.1f%%", ch.OpenRateChange),
			fmt.Sprintf("- **CTR change:** %+.1f%%\n", ch.CTRChange),
		)
	}

	return strings.Join(append(md, footer()...), "\n")
}

// MonthlyMarkdown renders a monthly report
func MonthlyMarkdown(r *model.MonthlyReport, generated time.Time) string {
	s := r.Summary
	md := header(model.PeriodMonth, generated)

	md = append(md,
		"## Monthly Summary",
		"- **Avg open rate:** "+util.ShortFloat(s.AvgOpenRate)+"%",
		"- **Avg click-through rate:** "+util.ShortFloat(s.AvgClickThroughRate)+"%",
		fmt.Sprintf("- **Total new subscribers:** %d", s.TotalNewSubscribers),
		"- **Total revenue:** $"+humanize.Comma(int64(s.TotalRevenue))+"\n",

		"## Trends",
		"- **Open rate:** "+r.Trends.OpenRateTrend,
		"- **Subscribers:** "+r.Trends.SubscriberTrend+"\n",
	)

	return strings.Join(append(md, footer()...), "\n")
}

// JSON renders any report as indented JSON
func JSON(report any) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return string(data), nil
}

// HTML renders a markdown report as a standalone HTML page
func HTML(markdown, title string) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}

	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n", title)
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.String(), nil
}

func header(period model.Period, generated time.Time) []string {
	return []string{
		fmt.Sprintf("# %sLY NEWSLETTER ANALYTICS\n", strings.ToUpper(string(period))),
		fmt.Sprintf("**Generated:** %s\n", generated.Format("2006-01-02 15:04")),
		"---\n",
	}
}

func footer() []string {
	return []string{"---", "\n*Generated by newsroom analytics*"}
}
