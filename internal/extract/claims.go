package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/newsroom/internal/model"
	"golang.org/x/net/html"
)

// Sentence-like spans are delimited by '.', '!' or '?'. Each pattern is run
// over the whole document independently, so one sentence can yield both kinds.
var (
	percentagePattern = regexp.MustCompile(`[^.!?]*\d+%[^.!?]*[.!?]`)
	statisticPattern  = regexp.MustCompile(`[^.!?]*\d{1,3}(?:,\d{3})+[^.!?]*[.!?]`)
)

// ClaimExtractor extracts factual claims from draft text
type ClaimExtractor struct {
	patterns []claimPattern
}

type claimPattern struct {
	re   *regexp.Regexp
	kind model.ClaimKind
}

// NewClaimExtractor creates a new claim extractor
func NewClaimExtractor() *ClaimExtractor {
	return &ClaimExtractor{
		patterns: []claimPattern{
			{re: percentagePattern, kind: model.ClaimKindPercentage},
			{re: statisticPattern, kind: model.ClaimKindStatistic},
		},
	}
}

// Extract extracts claims from plain or markdown text.
// All percentage claims come before all statistic claims.
func (e *ClaimExtractor) Extract(text string) []model.Claim {
	claims := []model.Claim{}
	if text == "" {
		return claims
	}

	for _, p := range e.patterns {
		for i, span := range p.re.FindAllString(text, -1) {
			claims = append(claims, model.Claim{
				Text:     strings.TrimSpace(span),
				Kind:     p.kind,
				Sentence: i,
			})
		}
	}

	return claims
}

// Claims extracts claims with the default extractor
func Claims(text string) []model.Claim {
	return NewClaimExtractor().Extract(text)
}

// VisibleText returns the text of an HTML document, skipping scripts and styles.
// Block elements end a line so sentence spans stay separated.
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	return extractVisibleText(doc), nil
}

// extractVisibleText extracts text nodes from HTML, skipping scripts/styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && isBlock(n.Data) {
			buf.WriteString("\n")
		}
	}

	walk(n)
	return buf.String()
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "br", "tr", "section", "article", "blockquote":
		return true
	}
	return false
}
