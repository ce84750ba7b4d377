package research

import (
	"fmt"
	"strings"

	"github.com/ppiankov/newsroom/internal/model"
)

// MergeExperts appends the incoming experts whose exact name is not yet in
// the database or earlier in the batch. It returns the names added.
func MergeExperts(db *model.ExpertDatabase, incoming []model.Expert) []string {
	existing := make(map[string]bool, len(db.Experts))
	for _, e := range db.Experts {
		existing[e.Name] = true
	}

	added := []string{}
	for _, e := range incoming {
		if existing[e.Name] {
			continue
		}
		if e.Expertise == nil {
			e.Expertise = []string{}
		}
		existing[e.Name] = true
		db.Experts = append(db.Experts, e)
		added = append(added, e.Name)
	}
	return added
}

// AddExperts merges experts into the stored database and returns the names
// added. Nothing is written when an expert has no name.
func (r *Researcher) AddExperts(experts []model.Expert) ([]string, error) {
	for i, e := range experts {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("%w: expert %d has no name", model.ErrInvalidInput, i+1)
		}
	}

	db, err := r.files.LoadExperts()
	if err != nil {
		return nil, fmt.Errorf("failed to load experts: %w", err)
	}

	added := MergeExperts(&db, experts)
	db.LastUpdated = model.Timestamp(r.now())
	db.TotalExperts = len(db.Experts)

	if err := r.files.SaveExperts(db); err != nil {
		return nil, fmt.Errorf("failed to save experts: %w", err)
	}
	return added, nil
}
