// Package factcheck verifies draft claims against the local library of
// previously verified claims.
package factcheck

import (
	"strings"

	"github.com/ppiankov/newsroom/internal/model"
)

const (
	matchConfidence   = 0.95
	relaxedConfidence = 0.5

	strictNote  = "Requires manual verification and source citation"
	relaxedNote = "Unverified - proceed with caution"

	unknownSource = "Unknown"
)

// Verify matches a claim against the library. An entry matches when either
// lowercased string contains the other; the first match in library order wins.
func Verify(claim string, library []model.VerifiedClaim, strict bool) model.Verdict {
	needle := strings.ToLower(claim)

	for _, entry := range library {
		candidate := strings.ToLower(entry.Claim)
		if !strings.Contains(candidate, needle) && !strings.Contains(needle, candidate) {
			continue
		}

		source := entry.SourceURL
		if source == "" {
			source = unknownSource
		}
		return model.Verdict{
			Verified:         model.True,
			Confidence:       matchConfidence,
			Source:           &source,
			VerificationDate: entry.VerificationDate,
		}
	}

	if strict {
		return model.Verdict{
			Verified:   model.False,
			Confidence: 0.0,
			Note:       strictNote,
		}
	}
	return model.Verdict{
		Verified:   model.Unknown,
		Confidence: relaxedConfidence,
		Note:       relaxedNote,
	}
}
