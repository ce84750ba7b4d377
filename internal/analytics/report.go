package analytics

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/ppiankov/newsroom/internal/model"
	"github.com/ppiankov/newsroom/internal/store"
	"go.uber.org/zap"
)

// monthlyWindow is the number of weekly snapshots a monthly report covers
const monthlyWindow = 4

// GrowthRate returns the percentage change from previous to current.
// A zero previous value yields 0.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// Reporter builds reports from a metrics source and the stored history
type Reporter struct {
	source Source
	files  *store.Files
	logger *zap.Logger
	now    func() time.Time
}

// NewReporter creates a reporter. A nil logger disables diagnostics.
func NewReporter(source Source, files *store.Files, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{
		source: source,
		files:  files,
		logger: logger,
		now:    time.Now,
	}
}

// Weekly fetches the current snapshot, optionally compares it with the last
// stored one, then appends it to the history.
func (r *Reporter) Weekly(ctx context.Context, compare bool) (*model.WeeklyReport, error) {
	current, err := r.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metrics from %s: %w", r.source.Name(), err)
	}
	r.logger.Debug("metrics fetched",
		zap.String("source", r.source.Name()),
		zap.Int("subscribers", current.Subscribers.Total))

	history, err := r.files.LoadAnalytics()
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics history: %w", err)
	}

	report := &model.WeeklyReport{
		Period:  model.PeriodWeek,
		Date:    model.Timestamp(r.now()),
		Current: current,
	}

	if previous, ok := history.Latest(); compare && ok {
		report.Changes = &model.Changes{
			SubscriberGrowth: GrowthRate(float64(current.Subscribers.Total), float64(previous.Subscribers.Total)),
			OpenRateChange:   current.Engagement.OpenRate - previous.Engagement.OpenRate,
			CTRChange:        current.Engagement.ClickThroughRate - previous.Engagement.ClickThroughRate,
		}
	}

	history.Newsletter.Metrics = append(history.Newsletter.Metrics, current)
	updated := model.Timestamp(r.now())
	history.Newsletter.LastUpdated = &updated

	if err := r.files.SaveAnalytics(history); err != nil {
		return nil, fmt.Errorf("failed to save analytics history: %w", err)
	}

	r.logger.Info("weekly snapshot recorded", zap.Int("history_size", len(history.Newsletter.Metrics)))
	return report, nil
}

// Monthly summarizes the last four stored snapshots
func (r *Reporter) Monthly() (*model.MonthlyReport, error) {
	history, err := r.files.LoadAnalytics()
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics history: %w", err)
	}

	recent := history.Newsletter.Metrics
	if len(recent) > monthlyWindow {
		recent = recent[len(recent)-monthlyWindow:]
	}
	if len(recent) == 0 {
		return nil, fmt.Errorf("monthly report needs at least one snapshot: %w", model.ErrInsufficientData)
	}

	var openSum, ctrSum float64
	var newSubs, revenue int
	for _, m := range recent {
		openSum += m.Engagement.OpenRate
		ctrSum += m.Engagement.ClickThroughRate
		newSubs += m.Subscribers.NewThisWeek
		revenue += m.Revenue.Total
	}
	n := float64(len(recent))

	report := &model.MonthlyReport{
		Period: model.PeriodMonth,
		Date:   model.Timestamp(r.now()),
		Summary: model.MonthlySummary{
			AvgOpenRate:         round2(openSum / n),
			AvgClickThroughRate: round2(ctrSum / n),
			TotalNewSubscribers: newSubs,
			TotalRevenue:        revenue,
		},
		Trends: model.MonthlyTrends{
			OpenRateTrend:   "decreasing",
			SubscriberTrend: "stable",
		},
	}
	if recent[len(recent)-1].Engagement.OpenRate > recent[0].Engagement.OpenRate {
		report.Trends.OpenRateTrend = "increasing"
	}
	if newSubs > 0 {
		report.Trends.SubscriberTrend = "growing"
	}

	return report, nil
}

// ReportPath returns where a rendered report for period is saved
func (r *Reporter) ReportPath(period model.Period, ext string) string {
	name := fmt.Sprintf("analytics_report_%s_%s.%s", period, r.now().Format(model.FileDateLayout), ext)
	return filepath.Join(r.files.Locations().DataDir, name)
}

// Save writes a rendered report next to the data stores
func (r *Reporter) Save(period model.Period, ext, content string) (string, error) {
	path := r.ReportPath(period, ext)
	if err := store.WriteFile(path, []byte(content)); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
