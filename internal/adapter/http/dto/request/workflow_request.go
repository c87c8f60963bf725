package request

type ReviewRequest struct {
	// Decisions maps review items (requirements, estimate, proposal) to
	// "approved" or "rejected".
	Decisions map[string]string `json:"decisions" binding:"required"`
	Notes     []string          `json:"notes"`
}

type FinalizeRequest struct {
	ReviewNotes []string `json:"review_notes"`
}

type UploadURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}
