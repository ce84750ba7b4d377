package model

import (
	"path/filepath"
	"time"
)

// Config holds every tunable of the newsroom tools
type Config struct {
	Stores       StoreLocations `yaml:"stores" mapstructure:"stores"`
	HTTP         HTTPConfig     `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig    `yaml:"cache" mapstructure:"cache"`
	RateLimiting RateConfig     `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Research     ResearchConfig `yaml:"research" mapstructure:"research"`
	Social       SocialConfig   `yaml:"social" mapstructure:"social"`
	Setup        SetupConfig    `yaml:"setup" mapstructure:"setup"`
	LLM          LLMConfig      `yaml:"llm" mapstructure:"llm"`
	Log          LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreLocations names every flat-file store. File names are relative to DataDir
// unless absolute.
type StoreLocations struct {
	DataDir          string `yaml:"data_dir" mapstructure:"data_dir"`
	FactCheckLibrary string `yaml:"fact_check_library" mapstructure:"fact_check_library"`
	ExpertDatabase   string `yaml:"expert_database" mapstructure:"expert_database"`
	TopicTrends      string `yaml:"topic_trends" mapstructure:"topic_trends"`
	AnalyticsHistory string `yaml:"analytics_history" mapstructure:"analytics_history"`
	SponsorPipeline  string `yaml:"sponsor_pipeline" mapstructure:"sponsor_pipeline"`
	SocialDir        string `yaml:"social_dir" mapstructure:"social_dir"`
}

// Path resolves a store file name against DataDir
func (s StoreLocations) Path(name string) string {
	if filepath.IsAbs(name) || s.DataDir == "" {
		return name
	}
	return filepath.Join(s.DataDir, name)
}

func (s StoreLocations) FactCheckLibraryPath() string { return s.Path(s.FactCheckLibrary) }
func (s StoreLocations) ExpertDatabasePath() string   { return s.Path(s.ExpertDatabase) }
func (s StoreLocations) TopicTrendsPath() string      { return s.Path(s.TopicTrends) }
func (s StoreLocations) AnalyticsHistoryPath() string { return s.Path(s.AnalyticsHistory) }
func (s StoreLocations) SponsorPipelinePath() string  { return s.Path(s.SponsorPipeline) }

// StoresIn returns the default store layout rooted at dir
func StoresIn(dir string) StoreLocations {
	return StoreLocations{
		DataDir:          dir,
		FactCheckLibrary: "fact_check_library.json",
		ExpertDatabase:   "expert_database.json",
		TopicTrends:      "topic_trends.csv",
		AnalyticsHistory: "analytics_history.json",
		SponsorPipeline:  "sponsor_pipeline.json",
		SocialDir:        filepath.Join("content", "social_posts"),
	}
}

type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy     string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

type RateConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

type ResearchConfig struct {
	HackerNewsAPI string `yaml:"hacker_news_api" mapstructure:"hacker_news_api"`
	TopStories    int    `yaml:"top_stories" mapstructure:"top_stories"`
}

type SocialConfig struct {
	MaxUnitLength     int `yaml:"max_unit_length" mapstructure:"max_unit_length"`
	LongPostOptimal   int `yaml:"long_post_optimal" mapstructure:"long_post_optimal"`
	HookPreviewLength int `yaml:"hook_preview_length" mapstructure:"hook_preview_length"`
}

type SetupConfig struct {
	EnvFile   string        `yaml:"env_file" mapstructure:"env_file"`
	SkillsDir string        `yaml:"skills_dir" mapstructure:"skills_dir"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Stores: StoresIn("data"),
		HTTP: HTTPConfig{
			Timeout:       10 * time.Second,
			UserAgent:     "Newsroom/0.1 (+https://github.com/ppiankov/newsroom)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(".cache", "newsroom"),
			MemoryTTL: 5 * time.Minute,
			DiskTTL:   30 * time.Minute,
		},
		RateLimiting: RateConfig{
			RequestsPerSecond: 10,
			BurstSize:         5,
		},
		Research: ResearchConfig{
			HackerNewsAPI: "https://hacker-news.firebaseio.com/v0",
			TopStories:    30,
		},
		Social: SocialConfig{
			MaxUnitLength:     280,
			LongPostOptimal:   1300,
			HookPreviewLength: 200,
		},
		Setup: SetupConfig{
			EnvFile:   ".env.local",
			SkillsDir: filepath.Join(".claude", "skills"),
			Timeout:   5 * time.Second,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 600,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}
