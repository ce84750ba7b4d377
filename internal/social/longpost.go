package social

import (
	"strings"

	"github.com/ppiankov/newsroom/internal/model"
)

const longPostContextLength = 300

// BuildLongPost renders the single long-form post. It never truncates the
// result; the second value reports whether optimalLength was exceeded.
func BuildLongPost(essay model.Essay, optimalLength int) (string, bool) {
	if optimalLength <= 0 {
		optimalLength = DefaultLongPostOptimal
	}

	lines := []string{essay.Title, ""}

	if essay.Hook != "" {
		lines = append(lines, truncate(essay.Hook, longPostContextLength), "")
	}

	if points := keyPoints(essay); len(points) > 0 {
		lines = append(lines, "Key insights:")
		for _, point := range points {
			lines = append(lines, "• "+point)
		}
		lines = append(lines, "")
	}

	lines = append(lines,
		"Read the full analysis in my newsletter (link in comments)",
		"",
		"What's your take? Share your thoughts below. 👇",
		"",
		"#TechStrategy #Innovation #Leadership",
	)

	post := strings.Join(lines, "\n")
	return post, runeLen(post) > optimalLength
}
