// Package social turns a parsed essay into posts that fit platform length
// budgets. Every length is measured in runes.
package social

import (
	"fmt"
	"unicode/utf8"

	"github.com/ppiankov/newsroom/internal/model"
)

const (
	DefaultMaxUnitLength     = 280
	DefaultLongPostOptimal   = 1300
	DefaultHookPreviewLength = 200

	threadCTA = "Read the full analysis in my newsletter:\n[INSERT LINK]\n\nLike/RT if you found this useful!"

	ellipsis = "..."
)

// BuildThread splits an essay into a sequence of units no longer than
// maxUnitLength. The short title fallback is the one unit not re-checked.
func BuildThread(essay model.Essay, maxUnitLength int) model.Thread {
	if maxUnitLength <= 0 {
		maxUnitLength = DefaultMaxUnitLength
	}

	thread := model.Thread{}

	opener := essay.Title + "\n\nA thread 🧵👇"
	if runeLen(opener) > maxUnitLength {
		opener = essay.Title + "\n\n🧵👇"
	}
	thread = append(thread, opener)

	if essay.Hook != "" {
		thread = append(thread, truncate(essay.Hook, maxUnitLength-10)+ellipsis)
	}

	for i, point := range keyPoints(essay) {
		unit := fmt.Sprintf("%d/ %s", i+1, point)
		if runeLen(unit) > maxUnitLength {
			unit = truncate(unit, maxUnitLength-3) + ellipsis
		}
		thread = append(thread, unit)
	}

	return append(thread, threadCTA)
}

func keyPoints(essay model.Essay) []string {
	if len(essay.KeyPoints) > model.MaxKeyPoints {
		return essay.KeyPoints[:model.MaxKeyPoints]
	}
	return essay.KeyPoints
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// truncate keeps the first n runes of s
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
