// Package llm asks a language model for research insights. The model may only
// cite URLs it was given.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/newsroom/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Insights distills key insights about a topic from the gathered sources
	Insights(ctx context.Context, req InsightsRequest) (*InsightsResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// InsightsRequest contains the research material for one topic
type InsightsRequest struct {
	Topic   string
	Sources []model.Topic
	Experts []model.Expert

	// MaxInsights bounds the number of returned bullet points
	MaxInsights int
}

// AllowedURLs returns the URLs the model may cite
func (r InsightsRequest) AllowedURLs() []string {
	urls := make([]string, 0, len(r.Sources))
	for _, s := range r.Sources {
		if s.URL != "" {
			urls = append(urls, s.URL)
		}
	}
	return urls
}

// InsightsResponse contains the model's answer
type InsightsResponse struct {
	Insights   []string
	CitedURLs  []string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama" or "" (disabled)
	Provider string

	Model     string
	APIKey    string
	BaseURL   string
	Timeout   int // seconds
	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
}

// ConfigFromModel converts the application config
func ConfigFromModel(cfg model.LLMConfig, httpCfg model.HTTPConfig) Config {
	return Config{
		Provider:   cfg.Provider,
		Model:      cfg.Model,
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxTokens:  cfg.MaxTokens,
		HTTPProxy:  httpCfg.HTTPProxy,
		HTTPSProxy: httpCfg.HTTPSProxy,
	}
}

const defaultMaxInsights = 5

// BuildPrompt constructs the insight prompt. Only the source URLs are citable.
func BuildPrompt(req InsightsRequest) string {
	limit := req.MaxInsights
	if limit <= 0 {
		limit = defaultMaxInsights
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are helping a technology newsletter editor research the topic %q.\n\n", req.Topic)
	b.WriteString("RULES:\n")
	b.WriteString("1. You MUST ONLY cite URLs from the source list below.\n")
	b.WriteString("2. If the sources are thin, say so instead of speculating.\n")
	fmt.Fprintf(&b, "3. Answer with at most %d lines, each starting with \"- \".\n\n", limit)

	b.WriteString("Sources:\n")
	if len(req.Sources) == 0 {
		b.WriteString("(No sources available)\n")
	}
	for i, s := range req.Sources {
		if i >= 20 {
			fmt.Fprintf(&b, "... and %d more sources\n", len(req.Sources)-20)
			break
		}
		fmt.Fprintf(&b, "- %s (score %d) %s\n", s.Topic, s.EngagementScore, s.URL)
	}

	if len(req.Experts) > 0 {
		b.WriteString("\nKnown experts:\n")
		for _, e := range req.Experts {
			fmt.Fprintf(&b, "- %s: %s\n", e.Name, strings.Join(e.Expertise, ", "))
		}
	}

	b.WriteString("\nList the key insights an editor should know before writing about this topic.")
	return b.String()
}

// parseInsights keeps the bullet lines of a model answer
func parseInsights(text string, limit int) []string {
	if limit <= 0 {
		limit = defaultMaxInsights
	}

	insights := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, prefix := range []string{"- ", "* ", "• "} {
			if strings.HasPrefix(line, prefix) {
				if item := strings.TrimSpace(strings.TrimPrefix(line, prefix)); item != "" {
					insights = append(insights, item)
				}
				break
			}
		}
		if len(insights) == limit {
			break
		}
	}
	return insights
}
