package entities

import "time"

// ApprovalStatus tracks one human-review cycle over a generated proposal.
//
// pending -> approved | rejected | modified; a modified request may be
// resubmitted, cycling back to pending for the new content.

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
	ApprovalStatusModified ApprovalStatus = "modified"
)

// ApprovalComment is one timestamped entry in the request's audit trail.
// Every status transition appends exactly one.
type ApprovalComment struct {
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ApprovalRequest gates a generated proposal behind human review.
//
// Storage model (DynamoDB):
//   - PK: request_id
//   - GSI1 (project_id-index): project_id
//
// Ownership: mutated only by the approval gate; the project references it
// by id, never duplicates it.
type ApprovalRequest struct {
	RequestID       string            `json:"request_id"`
	ProjectID       string            `json:"project_id"`
	ProposalID      string            `json:"proposal_id"`
	Status          ApprovalStatus    `json:"status"`
	Assignee        string            `json:"assignee,omitempty"`
	Comments        []ApprovalComment `json:"comments"`
	PDFURL          string            `json:"pdf_url,omitempty"`
	ModifiedContent map[string]any    `json:"modified_content,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
