package sponsor

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/newsroom/internal/model"
	"github.com/ppiankov/newsroom/internal/store"
	"go.uber.org/zap"
)

// Pipeline applies changes to the stored sponsor pipeline
type Pipeline struct {
	files  *store.Files
	logger *zap.Logger
	now    func() time.Time
}

// NewPipeline creates a pipeline over files. A nil logger disables diagnostics.
func NewPipeline(files *store.Files, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{files: files, logger: logger, now: time.Now}
}

// Now returns the pipeline clock
func (p *Pipeline) Now() time.Time {
	return p.now()
}

// AddProspects appends prospects to the prospects stage and saves
func (p *Pipeline) AddProspects(prospects []model.Prospect) error {
	pipe, err := p.files.LoadPipeline()
	if err != nil {
		return fmt.Errorf("failed to load pipeline: %w", err)
	}

	pipe.Prospects = append(pipe.Prospects, prospects...)
	if err := p.save(&pipe); err != nil {
		return err
	}

	p.logger.Info("prospects added", zap.Int("count", len(prospects)), zap.Int("pipeline_prospects", len(pipe.Prospects)))
	return nil
}

// UpdateStatus sets a prospect's status, appends note when non-empty and moves
// the record to the stage its status belongs to. The status is validated
// before anything is changed; an unknown id returns model.ErrNotFound.
func (p *Pipeline) UpdateStatus(id, status, note string) (model.Prospect, error) {
	st, err := model.ParseProspectStatus(status)
	if err != nil {
		return model.Prospect{}, err
	}

	pipe, err := p.files.LoadPipeline()
	if err != nil {
		return model.Prospect{}, fmt.Errorf("failed to load pipeline: %w", err)
	}

	for _, stage := range model.Stages() {
		records := pipe.StagePtr(stage)
		for i, prospect := range *records {
			if prospect.ID != id {
				continue
			}

			now := model.Timestamp(p.now())
			prospect.Status = st
			prospect.LastUpdated = now
			if note = strings.TrimSpace(note); note != "" {
				prospect.Notes = append(prospect.Notes, model.Note{Date: now, Note: note})
			}

			*records = append((*records)[:i], (*records)[i+1:]...)
			target := pipe.StagePtr(st.Stage())
			*target = append(*target, prospect)

			if err := p.save(&pipe); err != nil {
				return model.Prospect{}, err
			}

			p.logger.Info("prospect status updated",
				zap.String("id", id),
				zap.String("status", string(st)),
				zap.String("from_stage", string(stage)),
				zap.String("to_stage", string(st.Stage())))
			return prospect, nil
		}
	}

	return model.Prospect{}, fmt.Errorf("prospect %s: %w", id, model.ErrNotFound)
}

func (p *Pipeline) save(pipe *model.SponsorPipeline) error {
	updated := model.Timestamp(p.now())
	pipe.LastUpdated = &updated
	if err := p.files.SavePipeline(*pipe); err != nil {
		return fmt.Errorf("failed to save pipeline: %w", err)
	}
	return nil
}

// TopByFit returns up to n prospects ordered by fit score, best first.
// Equal scores keep their input order.
func TopByFit(prospects []model.Prospect, n int) []model.Prospect {
	sorted := append([]model.Prospect(nil), prospects...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FitScore > sorted[j].FitScore
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
