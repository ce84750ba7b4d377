package model

import "fmt"

// ProspectStatus is the outreach state of a sponsor prospect
type ProspectStatus string

const (
	StatusProspect    ProspectStatus = "prospect"
	StatusContacted   ProspectStatus = "contacted"
	StatusNegotiating ProspectStatus = "negotiating"
	StatusActive      ProspectStatus = "active"
	StatusClosed      ProspectStatus = "closed"
)

// Stage is one of the three ordered sequences of the pipeline
type Stage string

const (
	StageProspects Stage = "prospects"
	StageActive    Stage = "active"
	StageClosed    Stage = "closed"
)

// ParseProspectStatus validates a status name
func ParseProspectStatus(s string) (ProspectStatus, error) {
	switch st := ProspectStatus(s); st {
	case StatusProspect, StatusContacted, StatusNegotiating, StatusActive, StatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown status %q (prospect, contacted, negotiating, active, closed)", ErrInvalidInput, s)
}

// Stage returns the pipeline stage that holds prospects in this status
func (s ProspectStatus) Stage() Stage {
	switch s {
	case StatusActive:
		return StageActive
	case StatusClosed:
		return StageClosed
	default:
		return StageProspects
	}
}

// Prospect is a potential sponsor
type Prospect struct {
	ID              string         `json:"id"`
	CompanyName     string         `json:"company_name"`
	Category        string         `json:"category"`
	Website         string         `json:"website"`
	EstimatedBudget string         `json:"estimated_budget"`
	FitScore        int            `json:"fit_score"`
	ContactInfo     ContactInfo    `json:"contact_info"`
	Status          ProspectStatus `json:"status"`
	AddedDate       string         `json:"added_date"`
	LastUpdated     string         `json:"last_updated,omitempty"`
	Notes           []Note         `json:"notes,omitempty"`
}

type ContactInfo struct {
	MarketingEmail string `json:"marketing_email"`
	LinkedIn       string `json:"linkedin"`
}

// Note is one timestamped entry of a prospect's note log
type Note struct {
	Date string `json:"date"`
	Note string `json:"note"`
}

// SponsorPipeline is the persisted three-stage outreach store
type SponsorPipeline struct {
	Prospects   []Prospect `json:"prospects"`
	Active      []Prospect `json:"active"`
	Closed      []Prospect `json:"closed"`
	LastUpdated *string    `json:"last_updated"`
}

// DefaultSponsorPipeline returns the empty pipeline
func DefaultSponsorPipeline() SponsorPipeline {
	return SponsorPipeline{
		Prospects: []Prospect{},
		Active:    []Prospect{},
		Closed:    []Prospect{},
	}
}

// Normalize replaces nil slices
func (p *SponsorPipeline) Normalize() {
	if p.Prospects == nil {
		p.Prospects = []Prospect{}
	}
	if p.Active == nil {
		p.Active = []Prospect{}
	}
	if p.Closed == nil {
		p.Closed = []Prospect{}
	}
}

// StagePtr returns the slice backing a stage
func (p *SponsorPipeline) StagePtr(s Stage) *[]Prospect {
	switch s {
	case StageActive:
		return &p.Active
	case StageClosed:
		return &p.Closed
	default:
		return &p.Prospects
	}
}

// Stages lists the stages in search order
func Stages() []Stage {
	return []Stage{StageProspects, StageActive, StageClosed}
}

// NewsletterMetrics are the audience figures quoted in pitches
type NewsletterMetrics struct {
	Subscribers      int
	OpenRate         float64
	ClickThroughRate float64
	Audience         string
	AvgReadTime      string
}

// DefaultNewsletterMetrics returns the figures used when no history exists
func DefaultNewsletterMetrics() NewsletterMetrics {
	return NewsletterMetrics{
		Subscribers:      1250,
		OpenRate:         42.5,
		ClickThroughRate: 8.2,
		Audience:         "Technical leaders, CTOs, senior engineers",
		AvgReadTime:      "6.5 minutes",
	}
}
