package factcheck

import (
	"testing"

	"github.com/ppiankov/newsroom/internal/model"
)

func TestVerify_MatchInLibrary(t *testing.T) {
	library := []model.VerifiedClaim{
		{Claim: "AI adoption grew 45% in 2024", SourceURL: "https://example.com/ai", VerificationDate: "2025-01-15T10:00:00"},
	}

	v := Verify("AI adoption grew 45% in 2024", library, true)

	if v.Verified != model.True {
		t.Errorf("Expected verified, got %s", v.Verified)
	}
	if v.Confidence != 0.95 {
		t.Errorf("Expected confidence 0.95, got %f", v.Confidence)
	}
	if v.Source == nil || *v.Source != "https://example.com/ai" {
		t.Errorf("Expected source URL, got %v", v.Source)
	}
	if v.VerificationDate != "2025-01-15T10:00:00" {
		t.Errorf("Expected verification date to be carried, got %q", v.VerificationDate)
	}
	if v.Note != "" {
		t.Errorf("Expected no note on a match, got %q", v.Note)
	}
}

func TestVerify_Bidirectional(t *testing.T) {
	library := []model.VerifiedClaim{{Claim: "X", SourceURL: "https://x.example", VerificationDate: "d"}}

	if v := Verify("this is x here", library, true); v.Verified != model.True {
		t.Errorf("Expected library claim inside input to match, got %s", v.Verified)
	}

	library = []model.VerifiedClaim{{Claim: "this is X here", SourceURL: "https://x.example", VerificationDate: "d"}}
	if v := Verify("x", library, true); v.Verified != model.True {
		t.Errorf("Expected input inside library claim to match, got %s", v.Verified)
	}
}

func TestVerify_FirstMatchWins(t *testing.T) {
	library := []model.VerifiedClaim{
		{Claim: "unrelated", SourceURL: "https://a.example", VerificationDate: "1"},
		{Claim: "cloud spend", SourceURL: "https://b.example", VerificationDate: "2"},
		{Claim: "cloud spend rose", SourceURL: "https://c.example", VerificationDate: "3"},
	}

	v := Verify("Cloud spend rose 20%.", library, false)

	if v.Source == nil || *v.Source != "https://b.example" {
		t.Errorf("Expected first matching entry, got %v", v.Source)
	}
}

func TestVerify_MissingSourceIsUnknown(t *testing.T) {
	library := []model.VerifiedClaim{{Claim: "fact", VerificationDate: "d"}}

	v := Verify("fact", library, true)

	if v.Source == nil || *v.Source != "Unknown" {
		t.Errorf("Expected 'Unknown' source, got %v", v.Source)
	}
}

func TestVerify_NoMatch(t *testing.T) {
	tests := []struct {
		name       string
		strict     bool
		verified   model.Tristate
		confidence float64
		note       string
	}{
		{"strict", true, model.False, 0.0, "Requires manual verification and source citation"},
		{"relaxed", false, model.Unknown, 0.5, "Unverified - proceed with caution"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Verify("anything", nil, tt.strict)

			if v.Verified != tt.verified {
				t.Errorf("Expected %s, got %s", tt.verified, v.Verified)
			}
			if v.Confidence != tt.confidence {
				t.Errorf("Expected confidence %f, got %f", tt.confidence, v.Confidence)
			}
			if v.Source != nil {
				t.Errorf("Expected nil source, got %q", *v.Source)
			}
			if v.Note != tt.note {
				t.Errorf("Expected note %q, got %q", tt.note, v.Note)
			}
		})
	}
}

func TestVerify_DoesNotMutateLibrary(t *testing.T) {
	library := []model.VerifiedClaim{{Claim: "Revenue", SourceURL: "", VerificationDate: "d"}}

	_ = Verify("revenue", library, true)

	if library[0].SourceURL != "" || library[0].Claim != "Revenue" {
		t.Errorf("Library entry was modified: %+v", library[0])
	}
}
