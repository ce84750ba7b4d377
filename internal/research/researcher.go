package research

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ppiankov/newsroom/internal/llm"
	"github.com/ppiankov/newsroom/internal/model"
	"github.com/ppiankov/newsroom/internal/store"
	"go.uber.org/zap"
)

const (
	hackerNewsPlatform = "Hacker News"
	hackerNewsItemURL  = "https://news.ycombinator.com/item?id=%d"
	defaultTopStories  = 30
)

// Researcher runs the research workflows against one set of stores
type Researcher struct {
	files      *store.Files
	hn         *HackerNews
	llm        llm.Provider
	topStories int
	logger     *zap.Logger
	now        func() time.Time
}

// NewResearcher creates a researcher. provider may be nil, which disables
// LLM insights.
func NewResearcher(files *store.Files, hn *HackerNews, provider llm.Provider, topStories int, logger *zap.Logger) *Researcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if topStories <= 0 {
		topStories = defaultTopStories
	}
	return &Researcher{
		files:      files,
		hn:         hn,
		llm:        provider,
		topStories: topStories,
		logger:     logger,
		now:        time.Now,
	}
}

// Trending collects the current top Hacker News stories and appends them to
// the trends file. Network failures are logged and whatever was collected
// before the failure is kept. days is informational.
func (r *Researcher) Trending(ctx context.Context, days int) ([]model.Topic, error) {
	r.logger.Info("fetching trending topics", zap.Int("days", days))

	topics := r.fetchTopics(ctx)

	if _, err := r.files.AppendTrends(topics); err != nil {
		return topics, fmt.Errorf("failed to save trends: %w", err)
	}
	return topics, nil
}

func (r *Researcher) fetchTopics(ctx context.Context) []model.Topic {
	topics := []model.Topic{}

	ids, err := r.hn.TopStories(ctx)
	if err != nil {
		r.logger.Warn("error fetching top stories", zap.Error(err))
		return topics
	}
	if len(ids) > r.topStories {
		ids = ids[:r.topStories]
	}

	for _, id := range ids {
		item, err := r.hn.Item(ctx, id)
		if err != nil {
			r.logger.Warn("error fetching story", zap.Int("id", id), zap.Error(err))
			break
		}
		if item == nil || item.Title == "" {
			continue
		}
		topics = append(topics, model.Topic{
			Date:            model.Timestamp(r.now()),
			Topic:           item.Title,
			SourcePlatform:  hackerNewsPlatform,
			EngagementScore: item.Score,
			URL:             fmt.Sprintf(hackerNewsItemURL, id),
		})
	}

	r.logger.Info("trending stories collected", zap.Int("count", len(topics)))
	return topics
}

// ParseDepth validates a research depth name
func ParseDepth(s string) (model.ResearchDepth, error) {
	switch d := model.ResearchDepth(s); d {
	case model.DepthBasic, model.DepthExpert:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown depth %q (basic, expert)", model.ErrInvalidInput, s)
}

// ResearchTopic gathers stored trends and experts relevant to topic. Expert
// depth also asks the LLM provider, when one is configured, for key insights.
func (r *Researcher) ResearchTopic(ctx context.Context, topic string, depth model.ResearchDepth) (*model.ResearchResult, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: empty topic", model.ErrInvalidInput)
	}

	trends, err := r.files.LoadTrends()
	if err != nil {
		return nil, fmt.Errorf("failed to load trends: %w", err)
	}
	db, err := r.files.LoadExperts()
	if err != nil {
		return nil, fmt.Errorf("failed to load experts: %w", err)
	}

	result := &model.ResearchResult{
		Topic:        topic,
		Depth:        depth,
		ResearchDate: model.Timestamp(r.now()),
		Sources:      matchTopics(trends, topic),
		Experts:      matchExperts(db.Experts, topic),
		KeyInsights:  []string{},
	}

	r.logger.Info("topic research",
		zap.String("topic", topic),
		zap.String("depth", string(depth)),
		zap.Int("sources", len(result.Sources)),
		zap.Int("experts", len(result.Experts)))

	if depth != model.DepthExpert || r.llm == nil {
		return result, nil
	}

	resp, err := r.llm.Insights(ctx, llm.InsightsRequest{
		Topic:   topic,
		Sources: result.Sources,
		Experts: result.Experts,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		r.logger.Warn("insight generation failed", zap.String("provider", r.llm.Name()), zap.Error(err))
		return result, nil
	}
	result.KeyInsights = resp.Insights
	r.logger.Debug("insights generated", zap.String("model", resp.Model), zap.Int("tokens", resp.TokensUsed))

	return result, nil
}

// SaveResult writes a research result next to the data stores
func (r *Researcher) SaveResult(result *model.ResearchResult) (string, error) {
	name := fmt.Sprintf("research_%s_%s.json", Slug(result.Topic), r.now().Format(model.FileDateLayout))
	path := filepath.Join(r.files.Locations().DataDir, name)
	if err := store.WriteJSON(path, result); err != nil {
		return "", fmt.Errorf("failed to save research: %w", err)
	}
	return path, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a topic into a file name fragment
func Slug(topic string) string {
	s := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(topic), "_"), "_")
	if s == "" {
		return "topic"
	}
	return s
}

func matchTopics(trends []model.Topic, query string) []model.Topic {
	q := strings.ToLower(query)
	out := []model.Topic{}
	for _, t := range trends {
		if strings.Contains(strings.ToLower(t.Topic), q) {
			out = append(out, t)
		}
	}
	return out
}

func matchExperts(experts []model.Expert, query string) []model.Expert {
	q := strings.ToLower(query)
	out := []model.Expert{}
	for _, e := range experts {
		if mentions(e.Expertise, q) || mentions(e.Topics, q) {
			out = append(out, e)
		}
	}
	return out
}

func mentions(values []string, q string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
