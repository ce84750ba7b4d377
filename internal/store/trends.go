package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/ppiankov/newsroom/internal/model"
)

// LoadTrends reads the topic trends CSV. Columns are matched by header name;
// an unparsable engagement score loads as 0.
func (f *Files) LoadTrends() ([]model.Topic, error) {
	path := f.loc.TopicTrendsPath()
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Topic{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []model.Topic{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	field := func(rec []string, name string) string {
		if i, ok := index[name]; ok && i < len(rec) {
			return rec[i]
		}
		return ""
	}

	topics := []model.Topic{}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parse %s: %v", model.ErrInvalidInput, path, err)
		}
		score, _ := strconv.Atoi(field(rec, "engagement_score"))
		topics = append(topics, model.Topic{
			Date:            field(rec, "date"),
			Topic:           field(rec, "topic"),
			SourcePlatform:  field(rec, "source_platform"),
			EngagementScore: score,
			URL:             field(rec, "url"),
		})
	}
	return topics, nil
}

// AppendTrends appends topics to the stored trends and rewrites the file.
// Nothing is written when the combined set is empty.
func (f *Files) AppendTrends(topics []model.Topic) ([]model.Topic, error) {
	existing, err := f.LoadTrends()
	if err != nil {
		return nil, err
	}
	all := append(existing, topics...)
	if len(all) == 0 {
		return all, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(model.TrendColumns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, t := range all {
		row := []string{t.Date, t.Topic, t.SourcePlatform, strconv.Itoa(t.EngagementScore), t.URL}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	if err := WriteFile(f.loc.TopicTrendsPath(), buf.Bytes()); err != nil {
		return nil, err
	}
	return all, nil
}
