package response

import (
	"time"

	"firesec_estimator/internal/domain/entities"
)

type ApprovalResponse struct {
	RequestID       string                     `json:"request_id"`
	ProjectID       string                     `json:"project_id"`
	ProposalID      string                     `json:"proposal_id"`
	Status          string                     `json:"status"`
	Assignee        string                     `json:"assignee,omitempty"`
	Comments        []entities.ApprovalComment `json:"comments"`
	PDFURL          string                     `json:"pdf_url,omitempty"`
	ModifiedContent map[string]any             `json:"modified_content,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

func FromApproval(a entities.ApprovalRequest) ApprovalResponse {
	return ApprovalResponse{
		RequestID:       a.RequestID,
		ProjectID:       a.ProjectID,
		ProposalID:      a.ProposalID,
		Status:          string(a.Status),
		Assignee:        a.Assignee,
		Comments:        a.Comments,
		PDFURL:          a.PDFURL,
		ModifiedContent: a.ModifiedContent,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func FromApprovals(requests []entities.ApprovalRequest) []ApprovalResponse {
	out := make([]ApprovalResponse, 0, len(requests))
	for _, a := range requests {
		out = append(out, FromApproval(a))
	}
	return out
}
