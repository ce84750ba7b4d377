package model

// Topic is one trending item recorded in the trends CSV
type Topic struct {
	Date            string `json:"date"`
	Topic           string `json:"topic"`
	SourcePlatform  string `json:"source_platform"`
	EngagementScore int    `json:"engagement_score"`
	URL             string `json:"url"`
}

// TrendColumns is the fixed CSV column order
var TrendColumns = []string{"date", "topic", "source_platform", "engagement_score", "url"}

// Expert is a source contact kept in the expert database
type Expert struct {
	Name             string   `json:"name"`
	Expertise        []string `json:"expertise"`
	TwitterHandle    string   `json:"twitter_handle,omitempty"`
	Email            string   `json:"email,omitempty"`
	Affiliation      string   `json:"affiliation,omitempty"`
	LastContacted    string   `json:"last_contacted,omitempty"`
	Topics           []string `json:"topics,omitempty"`
	CredibilityScore int      `json:"credibility_score,omitempty"`
	Notes            string   `json:"notes,omitempty"`
}

// ExpertDatabase is the persisted expert store
type ExpertDatabase struct {
	Experts      []Expert `json:"experts"`
	LastUpdated  string   `json:"last_updated,omitempty"`
	TotalExperts int      `json:"total_experts,omitempty"`
}

// DefaultExpertDatabase returns the empty database
func DefaultExpertDatabase() ExpertDatabase {
	return ExpertDatabase{Experts: []Expert{}}
}

// Normalize replaces nil slices
func (d *ExpertDatabase) Normalize() {
	if d.Experts == nil {
		d.Experts = []Expert{}
	}
	for i := range d.Experts {
		if d.Experts[i].Expertise == nil {
			d.Experts[i].Expertise = []string{}
		}
	}
}

// ResearchDepth selects how much work topic research does
type ResearchDepth string

const (
	DepthBasic  ResearchDepth = "basic"
	DepthExpert ResearchDepth = "expert"
)

// ResearchResult is the output of researching one topic
type ResearchResult struct {
	Topic        string        `json:"topic"`
	Depth        ResearchDepth `json:"depth"`
	ResearchDate string        `json:"research_date"`
	Sources      []Topic       `json:"sources"`
	Experts      []Expert      `json:"experts"`
	KeyInsights  []string      `json:"key_insights"`
}
