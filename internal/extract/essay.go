package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/ppiankov/newsroom/internal/model"
)

var (
	titlePattern  = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	bulletPattern = regexp.MustCompile(`(?m)^[-*]\s+(.+)$`)
)

// ParseEssay derives title, hook, key points and word count from markdown
func ParseEssay(content string) model.Essay {
	essay := model.Essay{
		Title:     model.UntitledEssay,
		Content:   content,
		KeyPoints: []string{},
		WordCount: len(strings.Fields(content)),
	}

	if m := titlePattern.FindStringSubmatch(content); m != nil {
		essay.Title = m[1]
	}

	for _, m := range bulletPattern.FindAllStringSubmatch(content, -1) {
		if len(essay.KeyPoints) == model.MaxKeyPoints {
			break
		}
		essay.KeyPoints = append(essay.KeyPoints, m[1])
	}

	// The heading check looks at the raw block, before trimming.
	for _, block := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(block) == "" || strings.HasPrefix(block, "#") {
			continue
		}
		essay.Hook = strings.TrimSpace(block)
		break
	}

	return essay
}

// ReadEssay loads an essay from disk. HTML essays are converted to markdown first.
func ReadEssay(path string) (model.Essay, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Essay{}, fmt.Errorf("essay not found: %s: %w", path, model.ErrInvalidInput)
		}
		return model.Essay{}, fmt.Errorf("failed to read essay: %w", err)
	}

	content := string(data)
	if isHTML(path) {
		content, err = HTMLToMarkdown(content)
		if err != nil {
			return model.Essay{}, fmt.Errorf("failed to convert %s: %w", path, err)
		}
	}

	return ParseEssay(content), nil
}

// HTMLToMarkdown converts an HTML document to CommonMark
func HTMLToMarkdown(htmlContent string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return conv.ConvertString(htmlContent)
}

func isHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}
