package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/newsroom/internal/model"
)

func sampleTopics() []model.Topic {
	return []model.Topic{
		{Date: "2025-01-20", Topic: "AI Regulation in the EU: What Tech Leaders Need to Know", SourcePlatform: "Hacker News", EngagementScore: 342, URL: "https://news.ycombinator.com/item?id=12345678"},
		{Date: "2025-01-19", Topic: "The Rise of Rust, in Production Systems", SourcePlatform: "Hacker News", EngagementScore: 287, URL: "https://news.ycombinator.com/item?id=12345679"},
	}
}

func TestAppendTrends_WritesHeaderAndRows(t *testing.T) {
	f := newTestFiles(t)

	all, err := f.AppendTrends(sampleTopics())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	data, err := os.ReadFile(f.Locations().TopicTrendsPath())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,topic,source_platform,engagement_score,url", lines[0])
	assert.Contains(t, lines[2], `"The Rise of Rust, in Production Systems"`)
}

func TestAppendTrends_AppendsToExisting(t *testing.T) {
	f := newTestFiles(t)
	_, err := f.AppendTrends(sampleTopics())
	require.NoError(t, err)

	extra := model.Topic{Date: "2025-01-21", Topic: "Platform Engineering", SourcePlatform: "Twitter", EngagementScore: 156, URL: "https://twitter.com/x"}
	all, err := f.AppendTrends([]model.Topic{extra})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, extra, all[2])

	loaded, err := f.LoadTrends()
	require.NoError(t, err)
	assert.Equal(t, all, loaded)
}

func TestAppendTrends_EmptyWritesNothing(t *testing.T) {
	f := newTestFiles(t)

	all, err := f.AppendTrends(nil)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = os.Stat(f.Locations().TopicTrendsPath())
	assert.True(t, os.IsNotExist(err))
}

func TestLoadTrends_ColumnsByHeaderAndBadScore(t *testing.T) {
	f := newTestFiles(t)
	path := f.Locations().TopicTrendsPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	content := "url,topic,engagement_score,date,source_platform\nhttps://x,Rust,n/a,2025-01-01,Hacker News\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	topics, err := f.LoadTrends()
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "Rust", topics[0].Topic)
	assert.Equal(t, "https://x", topics[0].URL)
	assert.Equal(t, 0, topics[0].EngagementScore)
}
