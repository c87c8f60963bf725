package request

type CreateApprovalRequest struct {
	ProjectID  string `json:"project_id" binding:"required"`
	ProposalID string `json:"proposal_id" binding:"required"`
	Assignee   string `json:"assignee"`
	PDFURL     string `json:"pdf_url"`
}

type ApproveRequest struct {
	User    string `json:"user"`
	Comment string `json:"comment"`
}

type RejectRequest struct {
	User   string `json:"user"`
	Reason string `json:"reason"`
}

type ModifyRequest struct {
	User    string         `json:"user"`
	Changes map[string]any `json:"changes" binding:"required"`
}

type ResubmitRequest struct {
	User string `json:"user"`
}
