package analytics

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/newsroom/internal/model"
	"github.com/ppiankov/newsroom/internal/store"
)

var fixedNow = time.Date(2025, 2, 10, 9, 30, 0, 0, time.UTC)

type staticSource struct {
	snapshot model.MetricsSnapshot
	err      error
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Fetch(ctx context.Context) (model.MetricsSnapshot, error) {
	return s.snapshot, s.err
}

func newTestReporter(t *testing.T, src Source) (*Reporter, *store.Files) {
	t.Helper()
	files := store.New(model.StoresIn(t.TempDir()))
	r := NewReporter(src, files, nil)
	r.now = func() time.Time { return fixedNow }
	return r, files
}

func snapshot(total, newThisWeek, revenue int, openRate, ctr float64) model.MetricsSnapshot {
	return model.MetricsSnapshot{
		Subscribers: model.Subscribers{Total: total, NewThisWeek: newThisWeek},
		Engagement:  model.Engagement{OpenRate: openRate, ClickThroughRate: ctr},
		Revenue:     model.Revenue{Total: revenue},
	}
}

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		current, previous, expected float64
	}{
		{110, 100, 10},
		{90, 100, -10},
		{100, 0, 0},
		{0, 0, 0},
		{1250, 1250, 0},
	}

	for _, tt := range tests {
		got := GrowthRate(tt.current, tt.previous)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("GrowthRate(%v, %v) = %v, expected %v", tt.current, tt.previous, got, tt.expected)
		}
	}
}

func TestWeekly_AppendsAndCompares(t *testing.T) {
	r, files := newTestReporter(t, MockSource{Now: func() time.Time { return fixedNow }})

	first, err := r.Weekly(context.Background(), true)
	if err != nil {
		t.Fatalf("Weekly failed: %v", err)
	}
	if first.Changes != nil {
		t.Error("Expected no changes without a previous snapshot")
	}

	r.source = staticSource{snapshot: snapshot(1375, 10, 0, 45.0, 7.2)}
	second, err := r.Weekly(context.Background(), true)
	if err != nil {
		t.Fatalf("Weekly failed: %v", err)
	}
	if second.Changes == nil {
		t.Fatal("Expected changes against the stored snapshot")
	}
	if math.Abs(second.Changes.SubscriberGrowth-10) > 1e-9 {
		t.Errorf("Expected 10%% growth, got %v", second.Changes.SubscriberGrowth)
	}
	if math.Abs(second.Changes.OpenRateChange-2.5) > 1e-9 {
		t.Errorf("Expected +2.5 open rate, got %v", second.Changes.OpenRateChange)
	}
	if math.Abs(second.Changes.CTRChange+1.0) > 1e-9 {
		t.Errorf("Expected -1.0 CTR, got %v", second.Changes.CTRChange)
	}

	history, err := files.LoadAnalytics()
	if err != nil {
		t.Fatalf("LoadAnalytics failed: %v", err)
	}
	if len(history.Newsletter.Metrics) != 2 {
		t.Errorf("Expected 2 snapshots, got %d", len(history.Newsletter.Metrics))
	}
	if history.Newsletter.LastUpdated == nil {
		t.Error("Expected last_updated to be set")
	}
}

func TestWeekly_WithoutCompare(t *testing.T) {
	r, _ := newTestReporter(t, MockSource{})

	if _, err := r.Weekly(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	report, err := r.Weekly(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if report.Changes != nil {
		t.Error("Expected no changes when compare is off")
	}
}

func TestWeekly_SourceError(t *testing.T) {
	r, files := newTestReporter(t, staticSource{err: errors.New("boom")})

	if _, err := r.Weekly(context.Background(), true); err == nil {
		t.Fatal("Expected error from source")
	}

	history, _ := files.LoadAnalytics()
	if len(history.Newsletter.Metrics) != 0 {
		t.Error("Expected history untouched on source error")
	}
}

func TestMonthly(t *testing.T) {
	r, files := newTestReporter(t, MockSource{})

	h := model.DefaultAnalyticsHistory()
	h.Newsletter.Metrics = []model.MetricsSnapshot{
		snapshot(1000, 99, 9999, 10, 1),
		snapshot(1100, 10, 100, 40.0, 8.0),
		snapshot(1200, 20, 200, 41.0, 8.1),
		snapshot(1300, 30, 300, 42.0, 8.3),
		snapshot(1400, 40, 400, 43.0, 8.4),
	}
	if err := files.SaveAnalytics(h); err != nil {
		t.Fatal(err)
	}

	report, err := r.Monthly()
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}

	if report.Summary.AvgOpenRate != 41.5 {
		t.Errorf("Expected avg open rate 41.5, got %v", report.Summary.AvgOpenRate)
	}
	if report.Summary.AvgClickThroughRate != 8.2 {
		t.Errorf("Expected avg CTR 8.2, got %v", report.Summary.AvgClickThroughRate)
	}
	if report.Summary.TotalNewSubscribers != 100 {
		t.Errorf("Expected 100 new subscribers, got %d", report.Summary.TotalNewSubscribers)
	}
	if report.Summary.TotalRevenue != 1000 {
		t.Errorf("Expected revenue 1000, got %d", report.Summary.TotalRevenue)
	}
	if report.Trends.OpenRateTrend != "increasing" || report.Trends.SubscriberTrend != "growing" {
		t.Errorf("Unexpected trends: %+v", report.Trends)
	}
}

func TestMonthly_Trends(t *testing.T) {
	r, files := newTestReporter(t, MockSource{})

	h := model.DefaultAnalyticsHistory()
	h.Newsletter.Metrics = []model.MetricsSnapshot{
		snapshot(100, 0, 0, 40.0, 8),
		snapshot(100, 0, 0, 40.0, 8),
	}
	if err := files.SaveAnalytics(h); err != nil {
		t.Fatal(err)
	}

	report, err := r.Monthly()
	if err != nil {
		t.Fatal(err)
	}
	if report.Trends.OpenRateTrend != "decreasing" {
		t.Errorf("Expected flat open rate to read 'decreasing', got %q", report.Trends.OpenRateTrend)
	}
	if report.Trends.SubscriberTrend != "stable" {
		t.Errorf("Expected 'stable', got %q", report.Trends.SubscriberTrend)
	}
}

func TestMonthly_InsufficientData(t *testing.T) {
	r, _ := newTestReporter(t, MockSource{})

	_, err := r.Monthly()
	if !errors.Is(err, model.ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}

func TestSave(t *testing.T) {
	r, files := newTestReporter(t, MockSource{})

	path, err := r.Save(model.PeriodWeek, OutputMarkdown.Ext(), "# report")
	if err != nil {
		t.Fatal(err)
	}

	expected := filepath.Join(files.Locations().DataDir, "analytics_report_week_20250210.md")
	if path != expected {
		t.Errorf("Expected %s, got %s", expected, path)
	}
	data, err := os.ReadFile(path)
	if err != nil || !strings.HasPrefix(string(data), "# report") {
		t.Errorf("Unexpected saved content: %q, %v", data, err)
	}
}
