package response

import (
	"time"

	"firesec_estimator/internal/domain/entities"
)

type WorkflowResponse struct {
	WorkflowID     string                  `json:"workflow_id"`
	ProjectID      string                  `json:"project_id"`
	Status         string                  `json:"status"`
	CurrentStep    string                  `json:"current_step,omitempty"`
	StepsCompleted []string                `json:"steps_completed"`
	Result         entities.WorkflowResult `json:"result"`
	Error          string                  `json:"error,omitempty"`
	StartedAt      time.Time               `json:"started_at"`
	CompletedAt    *time.Time              `json:"completed_at,omitempty"`
}

func FromWorkflow(wf entities.AgentWorkflow) WorkflowResponse {
	return WorkflowResponse{
		WorkflowID:     wf.WorkflowID,
		ProjectID:      wf.ProjectID,
		Status:         string(wf.Status),
		CurrentStep:    wf.CurrentStep,
		StepsCompleted: wf.StepsCompleted,
		Result:         wf.Result,
		Error:          wf.Error,
		StartedAt:      wf.StartedAt,
		CompletedAt:    wf.CompletedAt,
	}
}

type IngestResponse struct {
	Documents  []entities.ParsedDocument `json:"documents"`
	ChunkCount int                       `json:"chunk_count"`
	Chunks     []entities.DocumentChunk  `json:"chunks"`
}

type UploadURLResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

type ComplianceCodesResponse struct {
	Country string              `json:"country"`
	Codes   map[string][]string `json:"codes"`
}

type LaborRatesResponse struct {
	Country string             `json:"country"`
	Rates   map[string]float64 `json:"rates"`
}
