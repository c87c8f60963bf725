package entities

import "time"

// ProjectEstimate is the complete estimate for a project: detected
// systems, the aggregated cost breakdown and the advisory findings
// (compliance codes, risk factors, value engineering).
//
// Immutable once produced; a re-estimate supersedes, never mutates.
type ProjectEstimate struct {
	EstimateID                   string                `json:"estimate_id"`
	ProjectID                    string                `json:"project_id"`
	ClientName                   string                `json:"client_name"`
	ProjectName                  string                `json:"project_name"`
	Location                     ProjectLocation       `json:"location"`
	Systems                      []SystemSpecification `json:"systems"`
	CostBreakdown                CostBreakdown         `json:"cost_breakdown"`
	ComplianceCodes              []string              `json:"compliance_codes"`
	RiskFactors                  []string              `json:"risk_factors"`
	ValueEngineeringSuggestions  []string              `json:"value_engineering_suggestions"`
	Notes                        string                `json:"notes,omitempty"`
	CreatedAt                    time.Time             `json:"created_at"`
	ValidUntil                   time.Time             `json:"valid_until"`
}

// Proposal is the client-facing document generated from an estimate.
//
// Version is "draft" while pending review and "final" once finalization
// re-runs the drafting stage with review notes applied.
type Proposal struct {
	ProposalID              string          `json:"proposal_id"`
	ProjectID               string          `json:"project_id"`
	ClientName              string          `json:"client_name"`
	ProjectName             string          `json:"project_name"`
	ExecutiveSummary        string          `json:"executive_summary"`
	ScopeOfWork             string          `json:"scope_of_work"`
	TechnicalSpecifications string          `json:"technical_specifications"`
	ComplianceMatrix        map[string]bool `json:"compliance_matrix"`
	TermsAndConditions      string          `json:"terms_and_conditions"`
	PaymentSchedule         string          `json:"payment_schedule"`
	Timeline                string          `json:"timeline"`
	TotalCost               float64         `json:"total_cost"`
	Version                 string          `json:"version"`
	ReviewNotes             []string        `json:"review_notes,omitempty"`
	GeneratedAt             time.Time       `json:"generated_at"`
	ValidUntil              time.Time       `json:"valid_until"`
}
