package social

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/newsroom/internal/model"
	"github.com/ppiankov/newsroom/internal/store"
	"go.uber.org/zap"
)

// Format is one output channel
type Format string

const (
	FormatTwitter  Format = "twitter"
	FormatLinkedIn Format = "linkedin"
	FormatTeaser   Format = "teaser"
)

// AllFormats lists every format in generation order
func AllFormats() []Format {
	return []Format{FormatTwitter, FormatLinkedIn, FormatTeaser}
}

// ParseFormats parses "all" or a comma-separated list of format names
func ParseFormats(s string) ([]Format, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return AllFormats(), nil
	}

	var formats []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		f := Format(strings.TrimSpace(part))
		switch f {
		case FormatTwitter, FormatLinkedIn, FormatTeaser:
		default:
			return nil, fmt.Errorf("%w: unknown format %q (twitter, linkedin, teaser)", model.ErrInvalidInput, part)
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// Bundle holds the generated content for the requested formats
type Bundle struct {
	Formats  []Format
	Thread   model.Thread
	LongPost string
	Teaser   string

	LongPostOverBudget bool
}

// Generate builds every requested format from one essay
func Generate(essay model.Essay, formats []Format, cfg model.SocialConfig) Bundle {
	b := Bundle{Formats: formats}
	for _, f := range formats {
		switch f {
		case FormatTwitter:
			b.Thread = BuildThread(essay, cfg.MaxUnitLength)
		case FormatLinkedIn:
			b.LongPost, b.LongPostOverBudget = BuildLongPost(essay, cfg.LongPostOptimal)
		case FormatTeaser:
			b.Teaser = BuildTeaser(essay, cfg.HookPreviewLength)
		}
	}
	return b
}

// Metadata describes one generated bundle on disk
type Metadata struct {
	EssayName     string   `json:"essay_name"`
	GeneratedDate string   `json:"generated_date"`
	Formats       []Format `json:"formats"`
}

// Writer saves bundles under a social posts directory
type Writer struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

// NewWriter creates a writer rooted at dir
func NewWriter(dir string, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{dir: dir, logger: logger, now: time.Now}
}

// Save writes one file per format plus metadata.json into <dir>/<essayName>
// and returns the written paths in order.
func (w *Writer) Save(essayName string, b Bundle) ([]string, error) {
	folder := filepath.Join(w.dir, essayName)
	var paths []string

	for _, f := range b.Formats {
		var content string
		switch f {
		case FormatTwitter:
			content = FormatThread(b.Thread)
		case FormatLinkedIn:
			content = b.LongPost
		case FormatTeaser:
			content = b.Teaser
		}

		path := filepath.Join(folder, string(f)+".txt")
		if err := store.WriteFile(path, []byte(content)); err != nil {
			return paths, fmt.Errorf("failed to save %s content: %w", f, err)
		}
		paths = append(paths, path)
		w.logger.Debug("social content saved", zap.String("format", string(f)), zap.String("path", path))
	}

	meta := Metadata{
		EssayName:     essayName,
		GeneratedDate: model.Timestamp(w.now()),
		Formats:       b.Formats,
	}
	if meta.Formats == nil {
		meta.Formats = []Format{}
	}
	metaPath := filepath.Join(folder, "metadata.json")
	if err := store.WriteJSON(metaPath, meta); err != nil {
		return paths, fmt.Errorf("failed to save metadata: %w", err)
	}

	return append(paths, metaPath), nil
}

// FormatThread renders a thread with numbered unit headers and separators
func FormatThread(thread model.Thread) string {
	var sb strings.Builder
	separator := strings.Repeat("=", 50)
	for i, unit := range thread {
		fmt.Fprintf(&sb, "Tweet %d/%d:\n", i+1, len(thread))
		sb.WriteString(unit)
		sb.WriteString("\n\n" + separator + "\n\n")
	}
	return sb.String()
}
