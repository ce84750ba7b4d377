// Package sponsor manages sponsorship outreach: prospect generation, pitch
// drafting and the prospect pipeline.
package sponsor

import (
	"fmt"
	"time"

	"github.com/ppiankov/newsroom/internal/model"
)

// DefaultProspectCount is how many prospects a generation run asks for
const DefaultProspectCount = 20

var nicheCategories = map[string][]string{
	"developer-tools": {
		"IDE providers", "Code hosting platforms", "CI/CD services",
		"API platforms", "Monitoring/observability", "Cloud providers",
	},
	"ai-ml": {
		"MLOps platforms", "GPU cloud providers", "Vector databases",
		"AI model hosting", "Data labeling services", "LLM platforms",
	},
	"devops": {
		"Container platforms", "Kubernetes tools", "Infrastructure as code",
		"Secrets management", "Cloud cost optimization", "Security scanning",
	},
	"web3": {
		"Blockchain infrastructure", "Wallet providers", "NFT platforms",
		"DeFi protocols", "Layer 2 solutions", "Web3 analytics",
	},
}

var fallbackCategories = []string{"General SaaS", "Developer tools"}

// Categories returns the sponsor categories targeted for a niche
func Categories(niche string) []string {
	if cats, ok := nicheCategories[niche]; ok {
		return cats
	}
	return fallbackCategories
}

// GenerateProspects returns one placeholder prospect per target category,
// at most count, with decreasing fit scores.
func GenerateProspects(niche string, count int, now time.Time) []model.Prospect {
	cats := Categories(niche)
	if count >= 0 && count < len(cats) {
		cats = cats[:count]
	}

	prospects := make([]model.Prospect, 0, len(cats))
	for i, category := range cats {
		n := i + 1
		prospects = append(prospects, model.Prospect{
			ID:              fmt.Sprintf("PROSPECT_%s_%03d", now.Format(model.FileDateLayout), i),
			CompanyName:     fmt.Sprintf("Example %s Company %d", category, n),
			Category:        category,
			Website:         fmt.Sprintf("https://example-%d.com", n),
			EstimatedBudget: "$2,000 - $5,000",
			FitScore:        85 - i*2,
			ContactInfo: model.ContactInfo{
				MarketingEmail: fmt.Sprintf("marketing@example-%d.com", n),
				LinkedIn:       fmt.Sprintf("https://linkedin.com/company/example-%d", n),
			},
			Status:    model.StatusProspect,
			AddedDate: model.Timestamp(now),
		})
	}
	return prospects
}
