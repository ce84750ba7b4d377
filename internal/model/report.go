package model

// FactCheckReport is the result of checking every claim in a draft
type FactCheckReport struct {
	Draft       string        `json:"draft"`
	CheckDate   string        `json:"check_date"`
	Strict      bool          `json:"strict"`
	TotalClaims int           `json:"total_claims"`
	Citations   int           `json:"citations"`
	Verified    int           `json:"verified"`
	Unverified  int           `json:"unverified"`
	Failed      int           `json:"failed"`
	Details     []ClaimReport `json:"details"`
}

// ClaimReport pairs an extracted claim with its verdict
type ClaimReport struct {
	Claim        string    `json:"claim"`
	Kind         ClaimKind `json:"type"`
	Verification Verdict   `json:"verification"`
}

// Tally records a verdict in the report counters
func (r *FactCheckReport) Tally(claim Claim, v Verdict) {
	switch v.Verified {
	case True:
		r.Verified++
	case False:
		r.Failed++
	default:
		r.Unverified++
	}
	r.Details = append(r.Details, ClaimReport{
		Claim:        claim.Text,
		Kind:         claim.Kind,
		Verification: v,
	})
}

// Blocked reports whether strict mode forbids publication
func (r *FactCheckReport) Blocked() bool {
	return r.Strict && r.Failed > 0
}
