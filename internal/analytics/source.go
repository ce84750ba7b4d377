// Package analytics produces weekly and monthly newsletter performance reports.
package analytics

import (
	"context"
	"time"

	"github.com/ppiankov/newsroom/internal/model"
)

// Source provides the current newsletter metrics
type Source interface {
	Fetch(ctx context.Context) (model.MetricsSnapshot, error)
	Name() string
}

// MockSource returns a fixed demonstration snapshot dated now.
// It stands in for a real newsletter platform API.
type MockSource struct {
	Now func() time.Time
}

func (m MockSource) Name() string { return "mock" }

// Fetch returns the demonstration snapshot
func (m MockSource) Fetch(ctx context.Context) (model.MetricsSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.MetricsSnapshot{}, err
	}

	now := time.Now
	if m.Now != nil {
		now = m.Now
	}

	return model.MetricsSnapshot{
		Date: model.Timestamp(now()),
		Subscribers: model.Subscribers{
			Total:        1250,
			NewThisWeek:  45,
			Unsubscribed: 3,
			NetGrowth:    42,
		},
		Engagement: model.Engagement{
			OpenRate:         42.5,
			ClickThroughRate: 8.2,
			TotalOpens:       531,
			TotalClicks:      103,
		},
		TopPerforming: model.TopPerforming{
			MostOpened:  "AI Regulation Deep Dive",
			MostClicked: "The Future of Remote Work",
			AvgReadTime: "6.5 minutes",
		},
		Revenue: model.Revenue{
			MonthlyRecurring: 1200,
			Sponsors:         500,
			Total:            1700,
		},
	}, nil
}
