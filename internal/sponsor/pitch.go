package sponsor

import (
	"bytes"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ppiankov/newsroom/internal/model"
	"github.com/ppiankov/newsroom/internal/store"
	"github.com/ppiankov/newsroom/internal/util"
)

// Template is a named pitch letter. Placeholders lists, in order of
// appearance, the [MARKERS] a caller may fill; other bracketed markers such
// as [Contact Name] are left for manual editing.
type Template struct {
	Name         string
	Placeholders []string
	body         *template.Template
}

var templateFuncs = template.FuncMap{
	"comma": func(n int) string { return humanize.Comma(int64(n)) },
	"num":   util.ShortFloat,
}

func mustTemplate(name string, placeholders []string, text string) Template {
	return Template{
		Name:         name,
		Placeholders: placeholders,
		body:         template.Must(template.New(name).Funcs(templateFuncs).Parse(text)),
	}
}

var templates = map[string]Template{
	"standard": mustTemplate("standard", []string{"COMPANY_CATEGORY"}, `Subject: Partnership Opportunity - Strategic Tech Newsletter

Hi [Contact Name],

I'm reaching out about a potential sponsorship opportunity for {{.Company}} in my Strategic Tech Newsletter.

NEWSLETTER OVERVIEW:
• {{comma .Metrics.Subscribers}} subscribers (technical leaders, CTOs, senior engineers)
• {{num .Metrics.OpenRate}}% average open rate
• {{num .Metrics.ClickThroughRate}}% click-through rate
• {{.Metrics.AvgReadTime}} average read time

AUDIENCE:
Our readers are {{.Metrics.Audience}} who actively seek tools and platforms to improve their workflows. Based on {{.Company}}'s focus on [COMPANY_CATEGORY], I believe there's strong alignment.

SPONSORSHIP FORMATS:
1. **Featured Sponsor** - Dedicated paragraph + logo ($2,500/issue)
2. **Brief Mention** - 2-3 sentence callout + link ($1,000/issue)
3. **Multi-Issue Package** - 4 issues over 8 weeks ($8,000, 20% discount)

RECENT PERFORMANCE:
• [Last sponsor] saw 120+ click-throughs and 15+ demo signups
• [Previous sponsor] reported 8% conversion from newsletter to trial

NEXT STEPS:
Would you be open to a 15-minute call next week to discuss how we can showcase {{.Company}} to our audience?

I'm happy to provide case studies from previous sponsors and answer any questions.

Best regards,
[Your Name]
Strategic Tech Newsletter
[Your Email]
[Newsletter URL]
`),

	"data-driven": mustTemplate("data-driven", []string{}, `Subject: High-Intent Developer Audience for {{.Company}}

Hi [Contact Name],

Quick pitch: {{comma .Metrics.Subscribers}} technical decision-makers with {{num .Metrics.OpenRate}}% open rates and {{num .Metrics.ClickThroughRate}}% CTR.

WHY THIS WORKS:
✓ Audience matches your ICP (technical leaders, engineers, CTOs)
✓ High engagement (2-3x industry average)
✓ Long-form content = serious readers, not skimmers
✓ Previous sponsors report 8-12% newsletter → trial conversion

SPONSORSHIP OPTIONS:
→ Featured ($2,500): Dedicated 100-150 word spotlight + logo
→ Brief ($1,000): 2-3 sentence mention + link
→ Package deal: 4 issues across 8 weeks ($8,000, save 20%)

PROOF:
Last month's sponsor (dev tools company) got:
• 130 click-throughs
• 18 demo bookings
• 6 paid conversions
• ~3.5x ROI

15-minute call to discuss?

[Your Name]
[Contact]
`),

	"value-first": mustTemplate("value-first", []string{"RELEVANT_TOPIC", "UPCOMING_TOPIC"}, `Subject: Thought Leadership Opportunity for {{.Company}}

Hi [Contact Name],

I'm working on an upcoming essay about [RELEVANT_TOPIC] and thought {{.Company}}'s expertise would add tremendous value to my readers.

CONCEPT:
Instead of a traditional ad, I'd love to feature {{.Company}} as a case study or technical deep-dive within the essay. This gives readers genuine value while showcasing your solution in context.

FORMAT OPTIONS:
1. **Technical Deep Dive**: How {{.Company}} solves [problem] (400-500 words)
2. **Case Study**: Customer success story with {{.Company}} (300 words)
3. **Expert Quote**: Technical insight from your team's engineering lead

AUDIENCE & REACH:
• {{comma .Metrics.Subscribers}} subscribers ({{.Metrics.Audience}})
• {{num .Metrics.OpenRate}}% open rate, {{num .Metrics.ClickThroughRate}}% CTR
• Average {{.Metrics.AvgReadTime}} read time (highly engaged)

INVESTMENT:
$2,000 for integrated sponsorship + social amplification

This performs significantly better than banner ads because it's:
✓ Educational content, not interruption
✓ Builds trust through association
✓ Gets shared/referenced long-term

Interested in exploring this for [UPCOMING_TOPIC]?

[Your Name]
`),
}

// DefaultTemplate is used when no template is named
const DefaultTemplate = "standard"

// TemplateNames lists the available templates
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTemplate returns a template by name
func LookupTemplate(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: unknown template %q (%s)", model.ErrInvalidInput, name, strings.Join(TemplateNames(), ", "))
	}
	return t, nil
}

// Render writes the pitch for company. fill keys name placeholders
// case-insensitively, with or without brackets; a key the template does not
// declare is rejected.
func (t Template) Render(company string, metrics model.NewsletterMetrics, fill map[string]string) (string, error) {
	declared := make(map[string]bool, len(t.Placeholders))
	for _, p := range t.Placeholders {
		declared[p] = true
	}

	var pairs []string
	for key, value := range fill {
		marker := strings.ToUpper(strings.Trim(strings.TrimSpace(key), "[]"))
		if !declared[marker] {
			return "", fmt.Errorf("%w: template %s has no placeholder %q (accepts: %s)",
				model.ErrInvalidInput, t.Name, key, strings.Join(t.Placeholders, ", "))
		}
		pairs = append(pairs, "["+marker+"]", value)
	}

	var buf bytes.Buffer
	data := struct {
		Company string
		Metrics model.NewsletterMetrics
	}{company, metrics}
	if err := t.body.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", t.Name, err)
	}

	return strings.NewReplacer(pairs...).Replace(buf.String()), nil
}

// MetricsFromHistory quotes the latest stored snapshot, falling back to the
// default figures when there is none.
func MetricsFromHistory(h model.AnalyticsHistory) model.NewsletterMetrics {
	m := model.DefaultNewsletterMetrics()
	latest, ok := h.Latest()
	if !ok {
		return m
	}

	m.Subscribers = latest.Subscribers.Total
	m.OpenRate = latest.Engagement.OpenRate
	m.ClickThroughRate = latest.Engagement.ClickThroughRate
	if latest.TopPerforming.AvgReadTime != "" {
		m.AvgReadTime = latest.TopPerforming.AvgReadTime
	}
	return m
}

// PitchPath returns where a pitch for company is saved
func PitchPath(dataDir, company string, now time.Time) string {
	safe := strings.NewReplacer(" ", "_", "/", "_", string(filepath.Separator), "_").Replace(company)
	return filepath.Join(dataDir, fmt.Sprintf("pitch_%s_%s.txt", safe, now.Format(model.FileDateLayout)))
}

// SavePitch writes a pitch and returns its path
func SavePitch(dataDir, company, pitch string, now time.Time) (string, error) {
	path := PitchPath(dataDir, company, now)
	if err := store.WriteFile(path, []byte(pitch)); err != nil {
		return "", fmt.Errorf("failed to save pitch: %w", err)
	}
	return path, nil
}
