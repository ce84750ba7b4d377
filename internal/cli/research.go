package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/newsroom/internal/cache"
	"github.com/ppiankov/newsroom/internal/llm"
	"github.com/ppiankov/newsroom/internal/model"
	"github.com/ppiankov/newsroom/internal/research"
	"github.com/ppiankov/newsroom/internal/util"
)

var (
	rsDays  int
	rsDepth string

	exName        string
	exExpertise   string
	exTopics      string
	exTwitter     string
	exEmail       string
	exAffiliation string
	exCredibility int
	exNotes       string
	exFile        string
)

// researchCmd represents the research command
var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Collect trending topics, experts and per-topic research notes",
	Long: `Research gathers material for upcoming issues.

Example:
  newsroom research trending
  newsroom research topic "platform engineering" --depth basic
  newsroom research experts add --name "Jane Doe" --expertise "SRE,observability"`,
}

var researchTrendingCmd = &cobra.Command{
	Use:   "trending",
	Short: "Fetch current Hacker News top stories into the trends file",
	Args:  cobra.NoArgs,
	RunE:  runResearchTrending,
}

var researchTopicCmd = &cobra.Command{
	Use:   "topic <topic>",
	Short: "Research one topic from stored trends, experts and optional LLM insights",
	Long: `Topic collects stored trends whose title mentions the topic and experts
whose expertise or topics mention it. Expert depth also asks the configured
LLM provider for key insights, citing only the collected sources.

The result is saved as research_<topic>_<date>.json in the data directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResearchTopic,
}

var researchExpertsCmd = &cobra.Command{
	Use:   "experts",
	Short: "Manage the expert database",
}

var researchExpertsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add experts, skipping names already in the database",
	Long: `Add one expert from flags, or many from a JSON file holding an array
of expert records. Names already present are skipped.`,
	Args: cobra.NoArgs,
	RunE: runExpertsAdd,
}

func init() {
	rootCmd.AddCommand(researchCmd)
	researchCmd.AddCommand(researchTrendingCmd)
	researchCmd.AddCommand(researchTopicCmd)
	researchCmd.AddCommand(researchExpertsCmd)
	researchExpertsCmd.AddCommand(researchExpertsAddCmd)

	researchTrendingCmd.Flags().IntVar(&rsDays, "days", 7, "days to look back (informational)")
	researchTopicCmd.Flags().StringVar(&rsDepth, "depth", "expert", "research depth (basic, expert)")

	f := researchExpertsAddCmd.Flags()
	f.StringVar(&exName, "name", "", "expert name")
	f.StringVar(&exExpertise, "expertise", "", "comma-separated areas of expertise")
	f.StringVar(&exTopics, "topics", "", "comma-separated topics")
	f.StringVar(&exTwitter, "twitter", "", "twitter handle")
	f.StringVar(&exEmail, "email", "", "email address")
	f.StringVar(&exAffiliation, "affiliation", "", "company or institution")
	f.IntVar(&exCredibility, "credibility", 0, "credibility score (0-10)")
	f.StringVar(&exNotes, "notes", "", "free-form notes")
	f.StringVar(&exFile, "file", "", "JSON file with an array of experts")
}

// newHackerNews builds the API client from the loaded configuration.
// Setup checks pass cached=false so a cached list cannot hide an outage.
func newHackerNews(cached bool) *research.HackerNews {
	opts := []research.HackerNewsOption{
		research.WithLimiter(util.NewHostLimiter(appCfg.RateLimiting.RequestsPerSecond, appCfg.RateLimiting.BurstSize)),
		research.WithLogger(logger),
	}
	if cached {
		opts = append(opts, research.WithCache(cache.New(appCfg.Cache), appCfg.Cache.MemoryTTL))
	}
	if appCfg.HTTP.RespectRobots {
		opts = append(opts, research.WithRobots(util.NewRobotsChecker(util.NewHTTPClient(appCfg.HTTP), appCfg.HTTP.UserAgent)))
	}
	return research.NewHackerNews(appCfg.Research.HackerNewsAPI, appCfg.HTTP, opts...)
}

// newProvider returns the configured LLM provider, or nil when none is
// configured or it cannot be created
func newProvider() llm.Provider {
	p, err := llm.NewProvider(llm.ConfigFromModel(appCfg.LLM, appCfg.HTTP))
	if err != nil {
		logger.Warn("LLM provider disabled", zap.Error(err))
		return nil
	}
	return p
}

func newResearcher(withLLM bool) *research.Researcher {
	var provider llm.Provider
	if withLLM {
		provider = newProvider()
	}
	return research.NewResearcher(files(), newHackerNews(true), provider, appCfg.Research.TopStories, logger)
}

func runResearchTrending(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	heading(out, "Trending Topics")

	topics, err := newResearcher(false).Trending(commandContext(cmd), rsDays)
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		fmt.Fprintln(out, "⚠ No trending topics collected (see log for details)")
		return nil
	}

	fmt.Fprintf(out, "✓ Collected %d topics into %s\n\n", len(topics), appCfg.Stores.TopicTrendsPath())
	fmt.Fprintln(out, "Top 5 trending topics:")
	for i, t := range topics {
		if i == 5 {
			break
		}
		fmt.Fprintf(out, "%d. %s (score: %d)\n", i+1, t.Topic, t.EngagementScore)
	}
	return nil
}

func runResearchTopic(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	topic := strings.Join(args, " ")

	depth, err := research.ParseDepth(rsDepth)
	if err != nil {
		return businessFailure(out, err)
	}

	r := newResearcher(depth == model.DepthExpert)
	result, err := r.ResearchTopic(commandContext(cmd), topic, depth)
	if err != nil {
		return businessFailure(out, err)
	}

	heading(out, "Research: "+result.Topic)
	fmt.Fprintf(out, "  Sources:   %d\n", len(result.Sources))
	fmt.Fprintf(out, "  Experts:   %d\n", len(result.Experts))
	fmt.Fprintf(out, "  Insights:  %d\n\n", len(result.KeyInsights))
	for _, insight := range result.KeyInsights {
		fmt.Fprintf(out, "  - %s\n", insight)
	}

	path, err := r.SaveResult(result)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n✓ Research results saved to: %s\n", path)
	return nil
}

func runExpertsAdd(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	experts, err := expertsFromFlags()
	if err != nil {
		return businessFailure(out, err)
	}

	added, err := newResearcher(false).AddExperts(experts)
	if err != nil {
		return businessFailure(out, err)
	}

	for _, name := range added {
		fmt.Fprintf(out, "✓ Added expert: %s\n", name)
	}
	if skipped := len(experts) - len(added); skipped > 0 {
		fmt.Fprintf(out, "⚠ Skipped %d expert(s) already in the database\n", skipped)
	}
	fmt.Fprintf(out, "Added %d new experts to database\n", len(added))
	return nil
}

func expertsFromFlags() ([]model.Expert, error) {
	if exFile != "" {
		data, err := os.ReadFile(exFile)
		if err != nil {
			return nil, fmt.Errorf("%w: read experts file: %v", model.ErrInvalidInput, err)
		}
		var experts []model.Expert
		if err := json.Unmarshal(data, &experts); err != nil {
			return nil, fmt.Errorf("%w: decode experts file: %v", model.ErrInvalidInput, err)
		}
		return experts, nil
	}

	if exName == "" {
		return nil, fmt.Errorf("%w: --name or --file is required", model.ErrInvalidInput)
	}
	return []model.Expert{{
		Name:             exName,
		Expertise:        splitList(exExpertise),
		Topics:           splitList(exTopics),
		TwitterHandle:    exTwitter,
		Email:            exEmail,
		Affiliation:      exAffiliation,
		CredibilityScore: exCredibility,
		Notes:            exNotes,
	}}, nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
