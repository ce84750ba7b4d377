package extract

import (
	"regexp"

	"github.com/ppiankov/newsroom/internal/model"
)

var (
	citedSentencePattern = regexp.MustCompile(`[^.!?]*\[([^\]]+)\]\(([^)]+)\)[^.!?]*[.!?]`)
	inlineLinkPattern    = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
)

// CountCitations counts sentence spans that carry a markdown inline citation.
// Citations are reported next to claims, never merged into them.
func CountCitations(text string) int {
	return len(citedSentencePattern.FindAllStringIndex(text, -1))
}

// Citations returns every markdown inline link in document order, without duplicates
func Citations(text string) []model.Citation {
	seen := make(map[string]bool)
	citations := []model.Citation{}

	for _, m := range inlineLinkPattern.FindAllStringSubmatch(text, -1) {
		key := m[1] + "\x00" + m[2]
		if seen[key] {
			continue
		}
		seen[key] = true
		citations = append(citations, model.Citation{Text: m[1], URL: m[2]})
	}

	return citations
}
