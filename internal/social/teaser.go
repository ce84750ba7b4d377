package social

import (
	"fmt"
	"strings"

	"github.com/ppiankov/newsroom/internal/model"
)

const teaserTemplate = `🚀 New Essay: %s

%s...

Read the full essay: [INSERT NEWSLETTER LINK]

Subscribe for weekly strategic tech insights 👉 [INSERT SUBSCRIBE LINK]`

// BuildTeaser renders the short announcement with a hook preview
func BuildTeaser(essay model.Essay, hookPreviewLength int) string {
	if hookPreviewLength <= 0 {
		hookPreviewLength = DefaultHookPreviewLength
	}
	teaser := fmt.Sprintf(teaserTemplate, essay.Title, truncate(essay.Hook, hookPreviewLength))
	return strings.TrimSpace(teaser)
}
