package types

import "github.com/google/uuid"

// CompanyProfile holds the read-only company attributes that feed scoring
type CompanyProfile struct {
	CompanyID     uuid.UUID `json:"company_id"`
	IndustryID    uuid.UUID `json:"industry_id"`
	Stage         string    `json:"stage"`
	Size          string    `json:"size"`
	BusinessModel string    `json:"business_model"`
	FocusAreas    []string  `json:"focus_areas,omitempty"`
	MaturityScore float64   `json:"maturity_score"`
}
