package model

import (
	"encoding/json"
	"fmt"
)

// Claim represents a factual assertion extracted from a draft
type Claim struct {
	Text     string    `json:"claim"`              // The claim text itself
	Kind     ClaimKind `json:"type"`               // Which lexical pattern matched
	Sentence int       `json:"sentence,omitempty"` // Match index within its pattern (0-based)
}

// ClaimKind categorizes the lexical pattern that produced a claim
type ClaimKind string

const (
	ClaimKindPercentage ClaimKind = "percentage" // Sentence contains a figure like 45%
	ClaimKindStatistic  ClaimKind = "statistic"  // Sentence contains a grouped number like 50,000,000
)

// VerifiedClaim is one record of the verified-claims library
type VerifiedClaim struct {
	Claim            string   `json:"claim"`
	SourceURL        string   `json:"source_url"`
	VerificationDate string   `json:"verification_date"`
	Context          string   `json:"context"`
	Confidence       *float64 `json:"confidence,omitempty"` // Carried through when present in the file
	Category         string   `json:"category,omitempty"`
}

// ClaimLibrary is the persisted verified-claims store.
// Records are kept in verification order; duplicates are legal.
type ClaimLibrary struct {
	VerifiedClaims      []VerifiedClaim `json:"verified_claims"`
	LastUpdated         string          `json:"last_updated,omitempty"`
	TotalVerifiedClaims int             `json:"total_verified_claims,omitempty"`
}

// DefaultClaimLibrary returns the empty library used when no file exists
func DefaultClaimLibrary() ClaimLibrary {
	return ClaimLibrary{VerifiedClaims: []VerifiedClaim{}}
}

// Normalize replaces nil slices so the document always round-trips as a list
func (l *ClaimLibrary) Normalize() {
	if l.VerifiedClaims == nil {
		l.VerifiedClaims = []VerifiedClaim{}
	}
}

// Tristate is a verification outcome that may be undecided
type Tristate int

const (
	Unknown Tristate = iota // Marshals as null
	True
	False
)

func (t Tristate) String() string {
	switch t {
	case True:
		return "verified"
	case False:
		return "failed"
	default:
		return "unverified"
	}
}

// MarshalJSON encodes the tristate as true, false or null
func (t Tristate) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes true, false or null
func (t *Tristate) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("tristate: %w", err)
	}
	switch {
	case b == nil:
		*t = Unknown
	case *b:
		*t = True
	default:
		*t = False
	}
	return nil
}

// Verdict is the derived result of checking one claim against the library
type Verdict struct {
	Verified         Tristate `json:"verified"`
	Confidence       float64  `json:"confidence"`
	Source           *string  `json:"source"`
	VerificationDate string   `json:"verification_date,omitempty"`
	Note             string   `json:"note,omitempty"`
}
