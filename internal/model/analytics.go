package model

import "fmt"

// MetricsSnapshot is one weekly reading from the newsletter platform
type MetricsSnapshot struct {
	Date          string        `json:"date"`
	Subscribers   Subscribers   `json:"subscribers"`
	Engagement    Engagement    `json:"engagement"`
	TopPerforming TopPerforming `json:"top_performing"`
	Revenue       Revenue       `json:"revenue"`
}

type Subscribers struct {
	Total        int `json:"total"`
	NewThisWeek  int `json:"new_this_week"`
	Unsubscribed int `json:"unsubscribed"`
	NetGrowth    int `json:"net_growth"`
}

type Engagement struct {
	OpenRate         float64 `json:"open_rate"`
	ClickThroughRate float64 `json:"click_through_rate"`
	TotalOpens       int     `json:"total_opens"`
	TotalClicks      int     `json:"total_clicks"`
}

type TopPerforming struct {
	MostOpened  string `json:"most_opened"`
	MostClicked string `json:"most_clicked"`
	AvgReadTime string `json:"avg_read_time"`
}

type Revenue struct {
	MonthlyRecurring int `json:"monthly_recurring"`
	Sponsors         int `json:"sponsors"`
	Total            int `json:"total"`
}

// AnalyticsHistory is the persisted analytics store
type AnalyticsHistory struct {
	Newsletter NewsletterHistory `json:"newsletter"`
}

type NewsletterHistory struct {
	Metrics     []MetricsSnapshot `json:"metrics"`
	LastUpdated *string           `json:"last_updated"`
}

// DefaultAnalyticsHistory returns the empty history
func DefaultAnalyticsHistory() AnalyticsHistory {
	return AnalyticsHistory{Newsletter: NewsletterHistory{Metrics: []MetricsSnapshot{}}}
}

// Normalize replaces nil slices
func (h *AnalyticsHistory) Normalize() {
	if h.Newsletter.Metrics == nil {
		h.Newsletter.Metrics = []MetricsSnapshot{}
	}
}

// Latest returns the most recent snapshot, if any
func (h AnalyticsHistory) Latest() (MetricsSnapshot, bool) {
	n := len(h.Newsletter.Metrics)
	if n == 0 {
		return MetricsSnapshot{}, false
	}
	return h.Newsletter.Metrics[n-1], true
}

// Period selects the analytics report type
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod validates a period name
func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case PeriodWeek, PeriodMonth:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown period %q (week, month)", ErrInvalidInput, s)
}

// WeeklyReport wraps the current snapshot and optional week-over-week changes
type WeeklyReport struct {
	Period  Period          `json:"period"`
	Date    string          `json:"date"`
	Current MetricsSnapshot `json:"current"`
	Changes *Changes        `json:"changes,omitempty"`
}

type Changes struct {
	SubscriberGrowth float64 `json:"subscriber_growth"`
	OpenRateChange   float64 `json:"open_rate_change"`
	CTRChange        float64 `json:"ctr_change"`
}

// MonthlyReport summarizes up to the last four weekly snapshots
type MonthlyReport struct {
	Period  Period         `json:"period"`
	Date    string         `json:"date"`
	Summary MonthlySummary `json:"summary"`
	Trends  MonthlyTrends  `json:"trends"`
}

type MonthlySummary struct {
	AvgOpenRate         float64 `json:"avg_open_rate"`
	AvgClickThroughRate float64 `json:"avg_click_through_rate"`
	TotalNewSubscribers int     `json:"total_new_subscribers"`
	TotalRevenue        int     `json:"total_revenue"`
}

type MonthlyTrends struct {
	OpenRateTrend   string `json:"open_rate_trend"`  // increasing, decreasing
	SubscriberTrend string `json:"subscriber_trend"` // growing, stable
}
