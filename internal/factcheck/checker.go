package factcheck

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/newsroom/internal/extract"
	"github.com/ppiankov/newsroom/internal/model"
	"github.com/ppiankov/newsroom/internal/store"
	"go.uber.org/zap"
)

// Checker runs draft checks and library updates against one store
type Checker struct {
	files  *store.Files
	logger *zap.Logger
	now    func() time.Time
}

// NewChecker creates a checker. A nil logger disables diagnostics.
func NewChecker(files *store.Files, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		files:  files,
		logger: logger,
		now:    time.Now,
	}
}

// VerifyClaim checks a single claim against the stored library
func (c *Checker) VerifyClaim(claim string, strict bool) (model.Verdict, error) {
	lib, err := c.files.LoadClaimLibrary()
	if err != nil {
		return model.Verdict{}, fmt.Errorf("failed to load claim library: %w", err)
	}

	v := Verify(claim, lib.VerifiedClaims, strict)
	c.logger.Debug("claim verified",
		zap.String("verdict", v.Verified.String()),
		zap.Int("library_size", len(lib.VerifiedClaims)))
	return v, nil
}

// CheckDraft extracts every claim from a draft and verifies it.
// HTML drafts are reduced to their visible text first.
func (c *Checker) CheckDraft(path string, strict bool) (*model.FactCheckReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("draft file not found: %s: %w", path, model.ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	content := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		content, err = extract.VisibleText(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse HTML draft: %w", err)
		}
	}

	lib, err := c.files.LoadClaimLibrary()
	if err != nil {
		return nil, fmt.Errorf("failed to load claim library: %w", err)
	}

	claims := extract.Claims(content)
	report := &model.FactCheckReport{
		Draft:       path,
		CheckDate:   model.Timestamp(c.now()),
		Strict:      strict,
		TotalClaims: len(claims),
		Citations:   extract.CountCitations(content),
		Details:     []model.ClaimReport{},
	}

	c.logger.Info("claims extracted",
		zap.String("draft", path),
		zap.Int("claims", report.TotalClaims),
		zap.Int("citations", report.Citations))

	for _, claim := range claims {
		report.Tally(claim, Verify(claim.Text, lib.VerifiedClaims, strict))
	}

	return report, nil
}

// ReportPath returns where the report for a draft is written
func ReportPath(draft string) string {
	stem := strings.TrimSuffix(filepath.Base(draft), filepath.Ext(draft))
	return filepath.Join(filepath.Dir(draft), stem+"_factcheck.json")
}

// SaveReport writes the report next to its draft and returns the path
func (c *Checker) SaveReport(report *model.FactCheckReport) (string, error) {
	path := ReportPath(report.Draft)
	if err := store.WriteJSON(path, report); err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return path, nil
}

// AddToLibrary appends a verified claim dated now and rewrites the library
func (c *Checker) AddToLibrary(claim, sourceURL, context string) (model.VerifiedClaim, error) {
	if strings.TrimSpace(claim) == "" {
		return model.VerifiedClaim{}, fmt.Errorf("%w: empty claim", model.ErrInvalidInput)
	}

	lib, err := c.files.LoadClaimLibrary()
	if err != nil {
		return model.VerifiedClaim{}, fmt.Errorf("failed to load claim library: %w", err)
	}

	entry := model.VerifiedClaim{
		Claim:            claim,
		SourceURL:        sourceURL,
		VerificationDate: model.Timestamp(c.now()),
		Context:          context,
	}
	lib.VerifiedClaims = append(lib.VerifiedClaims, entry)

	if err := c.files.SaveClaimLibrary(lib); err != nil {
		return model.VerifiedClaim{}, fmt.Errorf("failed to save claim library: %w", err)
	}

	c.logger.Info("claim added to library",
		zap.String("source", sourceURL),
		zap.Int("library_size", len(lib.VerifiedClaims)))
	return entry, nil
}
