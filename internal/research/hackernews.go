// Package research gathers material for upcoming issues: trending topics from
// Hacker News, the expert database and per-topic research notes.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/newsroom/internal/cache"
	"github.com/ppiankov/newsroom/internal/model"
	"github.com/ppiankov/newsroom/internal/util"
	"go.uber.org/zap"
)

// Item is the subset of a Hacker News item the newsroom uses
type Item struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	By    string `json:"by"`
	Title string `json:"title"`
	Score int    `json:"score"`
	URL   string `json:"url"`
}

// HackerNews is a read-only client for the Hacker News Firebase API
type HackerNews struct {
	baseURL   string
	client    *http.Client
	userAgent string
	maxBytes  int64

	cache    cache.Cache
	cacheTTL time.Duration
	limiter  *util.HostLimiter
	robots   *util.RobotsChecker
	logger   *zap.Logger
}

// HackerNewsOption customizes a client
type HackerNewsOption func(*HackerNews)

// WithCache stores responses in c for ttl
func WithCache(c cache.Cache, ttl time.Duration) HackerNewsOption {
	return func(h *HackerNews) {
		h.cache = c
		h.cacheTTL = ttl
	}
}

// WithLimiter rate limits requests per host
func WithLimiter(l *util.HostLimiter) HackerNewsOption {
	return func(h *HackerNews) { h.limiter = l }
}

// WithRobots refuses URLs the API host disallows
func WithRobots(r *util.RobotsChecker) HackerNewsOption {
	return func(h *HackerNews) { h.robots = r }
}

// WithLogger sets the diagnostics logger
func WithLogger(l *zap.Logger) HackerNewsOption {
	return func(h *HackerNews) { h.logger = l }
}

// NewHackerNews creates a client for the API at baseURL
func NewHackerNews(baseURL string, httpCfg model.HTTPConfig, opts ...HackerNewsOption) *HackerNews {
	maxBytes := httpCfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 2_000_000
	}

	h := &HackerNews{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    util.NewHTTPClient(httpCfg),
		userAgent: httpCfg.UserAgent,
		maxBytes:  maxBytes,
		cache:     cache.Nop{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// TopStories returns the ids of the current top stories, best first
func (h *HackerNews) TopStories(ctx context.Context) ([]int, error) {
	var ids []int
	if err := h.getJSON(ctx, h.baseURL+"/topstories.json", &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Item returns one item. Deleted or unknown items come back as nil.
func (h *HackerNews) Item(ctx context.Context, id int) (*Item, error) {
	var item *Item
	if err := h.getJSON(ctx, fmt.Sprintf("%s/item/%d.json", h.baseURL, id), &item); err != nil {
		return nil, err
	}
	return item, nil
}

func (h *HackerNews) getJSON(ctx context.Context, rawURL string, v any) error {
	body, err := h.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w: %v", rawURL, model.ErrUpstream, err)
	}
	return nil
}

func (h *HackerNews) get(ctx context.Context, rawURL string) ([]byte, error) {
	key := cache.Key(rawURL)
	if body, ok := h.cache.Get(key); ok {
		h.logger.Debug("cache hit", zap.String("url", rawURL))
		return body, nil
	}

	if h.robots != nil && !h.robots.IsAllowed(ctx, rawURL) {
		return nil, fmt.Errorf("robots.txt disallows %s: %w", rawURL, model.ErrUpstream)
	}

	if h.limiter != nil {
		if err := h.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w: %v", rawURL, model.ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s: %w", resp.StatusCode, rawURL, model.ErrUpstream)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, h.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if err := h.cache.Set(key, body, h.cacheTTL); err != nil {
		h.logger.Warn("cache write failed", zap.Error(err))
	}
	return body, nil
}
