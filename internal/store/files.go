// Package store persists the newsroom documents as flat JSON and CSV files.
//
// Every document is read whole, modified in memory and written back whole.
// A missing file is not an error: it loads as the document's default value.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ppiankov/newsroom/internal/model"
)

// Files reads and writes the stores named by a StoreLocations value
type Files struct {
	loc model.StoreLocations
}

// New creates a Files for the given locations
func New(loc model.StoreLocations) *Files {
	return &Files{loc: loc}
}

// Locations returns the configured store locations
func (f *Files) Locations() model.StoreLocations {
	return f.loc
}

// LoadClaimLibrary loads the verified-claims library
func (f *Files) LoadClaimLibrary() (model.ClaimLibrary, error) {
	lib := model.DefaultClaimLibrary()
	if _, err := readJSON(f.loc.FactCheckLibraryPath(), &lib); err != nil {
		return model.DefaultClaimLibrary(), err
	}
	lib.Normalize()
	return lib, nil
}

// SaveClaimLibrary writes the verified-claims library
func (f *Files) SaveClaimLibrary(lib model.ClaimLibrary) error {
	lib.Normalize()
	return WriteJSON(f.loc.FactCheckLibraryPath(), lib)
}

// LoadExperts loads the expert database
func (f *Files) LoadExperts() (model.ExpertDatabase, error) {
	db := model.DefaultExpertDatabase()
	if _, err := readJSON(f.loc.ExpertDatabasePath(), &db); err != nil {
		return model.DefaultExpertDatabase(), err
	}
	db.Normalize()
	return db, nil
}

// SaveExperts writes the expert database
func (f *Files) SaveExperts(db model.ExpertDatabase) error {
	db.Normalize()
	return WriteJSON(f.loc.ExpertDatabasePath(), db)
}

// LoadAnalytics loads the analytics history
func (f *Files) LoadAnalytics() (model.AnalyticsHistory, error) {
	h := model.DefaultAnalyticsHistory()
	if _, err := readJSON(f.loc.AnalyticsHistoryPath(), &h); err != nil {
		return model.DefaultAnalyticsHistory(), err
	}
	h.Normalize()
	return h, nil
}

// SaveAnalytics writes the analytics history
func (f *Files) SaveAnalytics(h model.AnalyticsHistory) error {
	h.Normalize()
	return WriteJSON(f.loc.AnalyticsHistoryPath(), h)
}

// LoadPipeline loads the sponsor pipeline
func (f *Files) LoadPipeline() (model.SponsorPipeline, error) {
	p := model.DefaultSponsorPipeline()
	if _, err := readJSON(f.loc.SponsorPipelinePath(), &p); err != nil {
		return model.DefaultSponsorPipeline(), err
	}
	p.Normalize()
	return p, nil
}

// SavePipeline writes the sponsor pipeline
func (f *Files) SavePipeline(p model.SponsorPipeline) error {
	p.Normalize()
	return WriteJSON(f.loc.SponsorPipelinePath(), p)
}

// readJSON decodes path into v. It reports false, leaving v untouched, when
// the file does not exist.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", model.ErrInvalidInput, path, err)
	}
	return true, nil
}

// WriteJSON writes v as indented JSON with a trailing newline
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile replaces path with data through a temp file in the same directory
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
