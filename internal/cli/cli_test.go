package cli

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ppiankov/newsroom/internal/model"
	"github.com/ppiankov/newsroom/internal/setup"
	"github.com/ppiankov/newsroom/internal/store"
)

// useTestConfig points every store at a fresh temp dir and disables the
// cache and robots checks
func useTestConfig(t *testing.T) *model.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := model.DefaultConfig()
	cfg.Stores = model.StoresIn(filepath.Join(dir, "data"))
	cfg.Stores.SocialDir = filepath.Join(dir, "social")
	cfg.Cache.Enabled = false
	cfg.HTTP.RespectRobots = false

	appCfg = cfg
	logger = zap.NewNop()
	t.Cleanup(func() { appCfg = nil })
	return cfg
}

func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return cmd, &buf
}

func TestFactcheckCmd_Draft(t *testing.T) {
	useTestConfig(t)
	draft := filepath.Join(t.TempDir(), "essay.md")
	require.NoError(t, os.WriteFile(draft, []byte("Adoption grew 45% last year. Revenue is 3 billion dollars.\n"), 0644))

	fcDraft, fcStrict = draft, true
	t.Cleanup(func() { fcDraft, fcStrict = "", false })

	cmd, out := newTestCmd()
	require.NoError(t, runFactcheck(cmd, nil))

	assert.Contains(t, out.String(), "FACT-CHECK REPORT")
	assert.Contains(t, out.String(), "Draft blocked")
	_, err := os.Stat(filepath.Join(filepath.Dir(draft), "essay_factcheck.json"))
	assert.NoError(t, err)
}

func TestFactcheckCmd_MissingDraftIsNotAnError(t *testing.T) {
	useTestConfig(t)
	fcDraft = filepath.Join(t.TempDir(), "missing.md")
	t.Cleanup(func() { fcDraft = "" })

	cmd, out := newTestCmd()
	require.NoError(t, runFactcheck(cmd, nil))
	assert.Contains(t, out.String(), "not found")
}

func TestFactcheckCmd_AddThenVerify(t *testing.T) {
	cfg := useTestConfig(t)
	fcClaim, fcAdd, fcSource = "Platform teams grew 45% in 2024", true, "https://example.com/report"
	t.Cleanup(func() { fcClaim, fcAdd, fcSource = "", false, "" })

	cmd, out := newTestCmd()
	require.NoError(t, runFactcheck(cmd, nil))
	assert.Contains(t, out.String(), "Added claim")

	lib, err := store.New(cfg.Stores).LoadClaimLibrary()
	require.NoError(t, err)
	require.Len(t, lib.VerifiedClaims, 1)

	fcAdd = false
	cmd, out = newTestCmd()
	require.NoError(t, runFactcheck(cmd, nil))
	assert.Contains(t, out.String(), `"verified": true`)
}

func TestSocialCmd(t *testing.T) {
	cfg := useTestConfig(t)
	essay := filepath.Join(t.TempDir(), "platform-teams.md")
	require.NoError(t, os.WriteFile(essay, []byte("# Platform Teams\n\nWhy they win.\n\n- Fewer tickets\n- Faster deploys\n"), 0644))

	socialEssay, socialFormats = essay, "twitter,teaser"
	t.Cleanup(func() { socialEssay, socialFormats = "", "all" })

	cmd, out := newTestCmd()
	require.NoError(t, runSocial(cmd, nil))
	assert.Contains(t, out.String(), "SOCIAL REPURPOSE: Platform Teams")

	folder := filepath.Join(cfg.Stores.SocialDir, "platform-teams")
	for _, name := range []string{"twitter.txt", "teaser.txt", "metadata.json"} {
		_, err := os.Stat(filepath.Join(folder, name))
		assert.NoError(t, err, name)
	}
	_, err := os.Stat(filepath.Join(folder, "linkedin.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestSocialCmd_UnknownFormat(t *testing.T) {
	useTestConfig(t)
	socialEssay, socialFormats = "whatever.md", "myspace"
	t.Cleanup(func() { socialEssay, socialFormats = "", "all" })

	cmd, out := newTestCmd()
	require.NoError(t, runSocial(cmd, nil))
	assert.Contains(t, out.String(), "unknown format")
}

func TestAnalyticsCmd_WeekThenMonth(t *testing.T) {
	cfg := useTestConfig(t)
	t.Cleanup(func() { anPeriod, anOutput, anCompare = "week", "markdown", false })

	anPeriod, anOutput, anCompare = "month", "markdown", false
	cmd, out := newTestCmd()
	require.NoError(t, runAnalytics(cmd, nil))
	assert.Contains(t, out.String(), "insufficient data")

	anPeriod, anCompare = "week", true
	cmd, out = newTestCmd()
	require.NoError(t, runAnalytics(cmd, nil))
	assert.Contains(t, out.String(), "Report saved to")

	anPeriod, anOutput = "month", "html"
	cmd, out = newTestCmd()
	require.NoError(t, runAnalytics(cmd, nil))
	assert.Contains(t, out.String(), "<html")

	matches, err := filepath.Glob(filepath.Join(cfg.Stores.DataDir, "analytics_report_*"))
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestSponsorCmds(t *testing.T) {
	cfg := useTestConfig(t)
	spNiche, spCount = "devops", 3
	t.Cleanup(func() { spNiche, spCount, spNote = "developer-tools", 20, "" })

	cmd, out := newTestCmd()
	require.NoError(t, runSponsorProspects(cmd, nil))
	assert.Contains(t, out.String(), "Added 3 prospects")

	files := store.New(cfg.Stores)
	pipe, err := files.LoadPipeline()
	require.NoError(t, err)
	require.Len(t, pipe.Prospects, 3)
	id := pipe.Prospects[0].ID

	spNote = "Signed for Q3"
	cmd, out = newTestCmd()
	require.NoError(t, runSponsorStatus(cmd, []string{id, "active"}))
	assert.Contains(t, out.String(), "status: active")

	pipe, err = files.LoadPipeline()
	require.NoError(t, err)
	assert.Len(t, pipe.Prospects, 2)
	require.Len(t, pipe.Active, 1)
	assert.Equal(t, "Signed for Q3", pipe.Active[0].Notes[0].Note)

	cmd, out = newTestCmd()
	require.NoError(t, runSponsorStatus(cmd, []string{"PROSPECT_NOPE", "closed"}))
	assert.Contains(t, out.String(), "not found")
}

func TestSponsorPitchCmd(t *testing.T) {
	cfg := useTestConfig(t)
	spCompany, spTemplate = "Acme Corp", "standard"
	spFill = map[string]string{"company_category": "observability"}
	t.Cleanup(func() { spCompany, spTemplate, spFill = "", "standard", nil })

	cmd, out := newTestCmd()
	require.NoError(t, runSponsorPitch(cmd, nil))
	assert.Contains(t, out.String(), "SPONSORSHIP PITCH FOR: Acme Corp")
	assert.Contains(t, out.String(), "observability")

	matches, err := filepath.Glob(filepath.Join(cfg.Stores.DataDir, "pitch_Acme_Corp_*.txt"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	spFill = map[string]string{"BUDGET": "lots"}
	cmd, out = newTestCmd()
	require.NoError(t, runSponsorPitch(cmd, nil))
	assert.Contains(t, out.String(), "has no placeholder")
}

func hnTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/topstories.json":
			fmt.Fprint(w, `[1, 2]`)
		case strings.HasPrefix(r.URL.Path, "/item/"):
			id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/item/"), ".json")
			fmt.Fprintf(w, `{"id": %s, "type": "story", "title": "Story %s", "score": 10}`, id, id)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResearchTrendingCmd(t *testing.T) {
	cfg := useTestConfig(t)
	cfg.Research.HackerNewsAPI = hnTestServer(t).URL

	cmd, out := newTestCmd()
	require.NoError(t, runResearchTrending(cmd, nil))
	assert.Contains(t, out.String(), "Collected 2 topics")
	assert.Contains(t, out.String(), "1. Story 1 (score: 10)")

	trends, err := store.New(cfg.Stores).LoadTrends()
	require.NoError(t, err)
	assert.Len(t, trends, 2)
}

func TestResearchTopicCmd_Basic(t *testing.T) {
	cfg := useTestConfig(t)
	rsDepth = "basic"
	t.Cleanup(func() { rsDepth = "expert" })

	cmd, out := newTestCmd()
	require.NoError(t, runResearchTopic(cmd, []string{"platform", "engineering"}))
	assert.Contains(t, out.String(), "Research: platform engineering")

	matches, err := filepath.Glob(filepath.Join(cfg.Stores.DataDir, "research_platform_engineering_*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestExpertsAddCmd(t *testing.T) {
	cfg := useTestConfig(t)
	exName, exExpertise = "Jane Doe", "SRE, observability"
	t.Cleanup(func() { exName, exExpertise = "", "" })

	cmd, out := newTestCmd()
	require.NoError(t, runExpertsAdd(cmd, nil))
	assert.Contains(t, out.String(), "Added 1 new experts")

	cmd, out = newTestCmd()
	require.NoError(t, runExpertsAdd(cmd, nil))
	assert.Contains(t, out.String(), "Added 0 new experts")

	db, err := store.New(cfg.Stores).LoadExperts()
	require.NoError(t, err)
	require.Len(t, db.Experts, 1)
	assert.Equal(t, []string{"SRE", "observability"}, db.Experts[0].Expertise)
}

func TestValidateSetupCmd_FailsWithoutWorkspace(t *testing.T) {
	cfg := useTestConfig(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	cfg.Research.HackerNewsAPI = srv.URL

	cmd, out := newTestCmd()
	err := runValidateSetup(cmd, nil)
	assert.True(t, errors.Is(err, setup.ErrChecksFailed))
	assert.Contains(t, out.String(), "Checks passed:")
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsroom", "config.yaml")

	cmd, out := newTestCmd()
	require.NoError(t, writeDefaultConfig(cmd, path))
	assert.Contains(t, out.String(), "Created default configuration")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "data_dir: data")
	assert.NotContains(t, string(data), "api_key")

	cmd, out = newTestCmd()
	require.NoError(t, writeDefaultConfig(cmd, path))
	assert.Contains(t, out.String(), "already exists")
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(model.LogConfig{Level: "warn", Format: "json"}, false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))

	l, err = newLogger(model.LogConfig{Level: "warn"}, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	_, err = newLogger(model.LogConfig{Level: "loud"}, false)
	assert.Error(t, err)
}
