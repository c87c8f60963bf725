package entities

import "time"

// Workflow stage names, in execution order. Each stage consumes the
// verbatim output of its predecessor as additional context.
const (
	StageDocumentParsing      = "document_parsing"
	StageRequirementsAnalysis = "requirements_analysis"
	StageCostEstimation       = "cost_estimation"
	StageProposalGeneration   = "proposal_generation"
)

// WorkflowStages is the canonical stage order.
var WorkflowStages = []string{
	StageDocumentParsing,
	StageRequirementsAnalysis,
	StageCostEstimation,
	StageProposalGeneration,
}

type WorkflowStatus string

const (
	WorkflowStatusRunning       WorkflowStatus = "running"
	WorkflowStatusPendingReview WorkflowStatus = "pending_review"
	WorkflowStatusFailed        WorkflowStatus = "failed"
	WorkflowStatusCompleted     WorkflowStatus = "completed"
)

type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Review items gated by human review before finalization.
const (
	ReviewItemRequirements = "requirements"
	ReviewItemEstimate     = "estimate"
	ReviewItemProposal     = "proposal"
)

// WorkflowResult holds per-stage outputs plus the human-review state.
// StageOutputs keeps every completed stage's verbatim output so a failed
// run retains its partial result and later stages are observable.
type WorkflowResult struct {
	StageOutputs map[string]string       `json:"stage_outputs"`
	ReviewStatus map[string]ReviewStatus `json:"review_status"`
	ReviewNotes  []string                `json:"review_notes"`
}

// AgentWorkflow is one execution of the four-stage pipeline for a project.
//
// Ownership: mutated only by the workflow orchestrator for its lifetime;
// handed to the project as a read-only snapshot once terminal.
type AgentWorkflow struct {
	WorkflowID     string         `json:"workflow_id"`
	ProjectID      string         `json:"project_id"`
	Status         WorkflowStatus `json:"status"`
	CurrentStep    string         `json:"current_step"`
	StepsCompleted []string       `json:"steps_completed"`
	Result         WorkflowResult `json:"result"`
	Error          string         `json:"error,omitempty"`
	StartedAt      time.Time      `json:"started_at"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
}
