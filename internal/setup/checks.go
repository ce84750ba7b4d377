// Package setup inspects a working directory and reports whether the
// newsroom tools can run there.
package setup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ppiankov/newsroom/internal/model"
)

// ErrChecksFailed is returned by the command when at least one check fails
var ErrChecksFailed = errors.New("setup checks failed")

// OptionalKeys are the API keys the environment file may carry, with what each enables
var OptionalKeys = []struct {
	Name        string
	Description string
}{
	{"SUBSTACK_API_TOKEN", "Substack analytics"},
	{"GHOST_API_KEY", "Ghost analytics"},
	{"TWITTER_BEARER_TOKEN", "Twitter trends"},
	{"SERPAPI_KEY", "Google Scholar search"},
	{"HUNTER_API_KEY", "Email finding"},
	{"OPENAI_API_KEY", "Topic insights"},
}

// RequiredSkills are the skill folders expected under the skills directory
var RequiredSkills = []struct {
	Name        string
	Description string
}{
	{"research", "Automated research and expert sourcing"},
	{"fact_checker", "Claim verification and citation"},
	{"social_repurpose", "Social media content generation"},
}

// Item is one line of a check
type Item struct {
	Label  string
	OK     bool
	Detail string
}

// Check is a named group of items with an overall verdict
type Check struct {
	Name   string
	Passed bool
	Items  []Item
	Notes  []string
}

// Report collects every check of one run
type Report struct {
	Checks []Check
}

// PassedCount returns how many checks passed
func (r Report) PassedCount() int {
	n := 0
	for _, c := range r.Checks {
		if c.Passed {
			n++
		}
	}
	return n
}

// Percent returns the share of passed checks, 0 when there are none
func (r Report) Percent() float64 {
	if len(r.Checks) == 0 {
		return 0
	}
	return float64(r.PassedCount()) / float64(len(r.Checks)) * 100
}

// OK reports whether every check passed
func (r Report) OK() bool {
	return r.PassedCount() == len(r.Checks)
}

// Prober reaches the research API
type Prober interface {
	TopStories(ctx context.Context) ([]int, error)
}

// Validator runs the checks relative to a base directory
type Validator struct {
	baseDir string
	stores  model.StoreLocations
	setup   model.SetupConfig
	prober  Prober
	logger  *zap.Logger
}

// NewValidator creates a Validator. prober may be nil, in which case the
// connectivity check fails.
func NewValidator(baseDir string, cfg *model.Config, prober Prober, logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{
		baseDir: baseDir,
		stores:  cfg.Stores,
		setup:   cfg.Setup,
		prober:  prober,
		logger:  logger,
	}
}

// Run executes every check in order
func (v *Validator) Run(ctx context.Context) Report {
	return Report{Checks: []Check{
		v.CheckEnvironment(),
		v.CheckDirectories(),
		v.CheckSkills(),
		v.CheckConnectivity(ctx),
	}}
}

// CheckEnvironment looks for the environment file and the optional keys.
// Keys are optional, so the check always passes.
func (v *Validator) CheckEnvironment() Check {
	c := Check{Name: "Environment Variables", Passed: true}
	path := v.path(v.setup.EnvFile)

	values, err := godotenv.Read(path)
	if err != nil {
		c.Items = append(c.Items, Item{Label: v.setup.EnvFile, Detail: "not found"})
		c.Notes = append(c.Notes, fmt.Sprintf("%s not found. Copy .env.example to %s and add API keys.", v.setup.EnvFile, v.setup.EnvFile))
		v.logger.Debug("env file unreadable", zap.String("path", path), zap.Error(err))
		values = map[string]string{}
	} else {
		c.Items = append(c.Items, Item{Label: v.setup.EnvFile, OK: true, Detail: "Contains API keys and secrets"})
	}

	configured := 0
	for _, key := range OptionalKeys {
		value := values[key.Name]
		if value == "" {
			value = os.Getenv(key.Name)
		}
		if value == "" {
			c.Items = append(c.Items, Item{Label: key.Name, Detail: "Optional - " + key.Description + " (not set)"})
			continue
		}
		configured++
		c.Items = append(c.Items, Item{Label: key.Name, OK: true, Detail: fmt.Sprintf("Optional - %s (%s)", key.Description, MaskKey(value))})
	}
	c.Notes = append(c.Notes, fmt.Sprintf("%d/%d optional API keys configured", configured, len(OptionalKeys)))
	return c
}

// CheckDirectories requires the data and content directories. Store files
// are listed for information only.
func (v *Validator) CheckDirectories() Check {
	c := Check{Name: "Data Directories", Passed: true}

	dirs := []string{
		v.stores.DataDir,
		filepath.Join("content", "essays"),
		filepath.Join("content", "drafts"),
		v.stores.SocialDir,
		v.setup.SkillsDir,
	}
	for _, dir := range dirs {
		ok := isDir(v.path(dir))
		if !ok {
			c.Passed = false
		}
		c.Items = append(c.Items, Item{Label: dir, OK: ok})
	}

	files := []struct{ path, desc string }{
		{v.stores.ExpertDatabasePath(), "Expert CRM database"},
		{v.stores.TopicTrendsPath(), "Trending topics history"},
		{v.stores.FactCheckLibraryPath(), "Verified claims library"},
	}
	for _, f := range files {
		_, err := os.Stat(v.path(f.path))
		c.Notes = append(c.Notes, fmt.Sprintf("%s %s (%s)", mark(err == nil), f.path, f.desc))
	}
	return c
}

// CheckSkills requires every skill definition and the settings file next to
// the skills directory.
func (v *Validator) CheckSkills() Check {
	c := Check{Name: "Skills"}
	dir := v.path(v.setup.SkillsDir)
	if !isDir(dir) {
		c.Items = append(c.Items, Item{Label: "Skills directory", Detail: v.setup.SkillsDir + " not found"})
		return c
	}

	c.Passed = true
	for _, skill := range RequiredSkills {
		_, err := os.Stat(filepath.Join(dir, skill.Name, "SKILL.md"))
		if err != nil {
			c.Passed = false
		}
		c.Items = append(c.Items, Item{Label: skill.Name, OK: err == nil, Detail: skill.Description})
	}

	_, err := os.Stat(filepath.Join(filepath.Dir(dir), "settings.json"))
	if err != nil {
		c.Passed = false
	}
	c.Items = append(c.Items, Item{Label: "settings.json", OK: err == nil, Detail: "Skill runner configuration"})
	return c
}

// CheckConnectivity fetches the top stories list within the setup timeout
func (v *Validator) CheckConnectivity(ctx context.Context) Check {
	c := Check{Name: "API Connectivity"}
	c.Notes = []string{"Other APIs (Twitter, SerpAPI, etc.) require authentication. Configure API keys in " + v.setup.EnvFile + " to enable."}
	if v.prober == nil {
		c.Items = append(c.Items, Item{Label: "Hacker News API", Detail: "no client configured"})
		return c
	}

	timeout := v.setup.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ids, err := v.prober.TopStories(ctx)
	if err != nil {
		v.logger.Debug("connectivity check failed", zap.Error(err))
		c.Items = append(c.Items, Item{Label: "Hacker News API", Detail: "Error: " + err.Error()})
		return c
	}
	c.Passed = true
	c.Items = append(c.Items, Item{Label: "Hacker News API", OK: true, Detail: fmt.Sprintf("%d top stories", len(ids))})
	return c
}

// MaskKey shows the first and last four characters of long values and
// hides short ones completely.
func MaskKey(value string) string {
	r := []rune(value)
	if len(r) <= 8 {
		return "***"
	}
	return string(r[:4]) + "..." + string(r[len(r)-4:])
}

func (v *Validator) path(name string) string {
	if filepath.IsAbs(name) || v.baseDir == "" {
		return name
	}
	return filepath.Join(v.baseDir, name)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
