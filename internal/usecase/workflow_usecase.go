package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrWorkflowNotFound      = errors.New("workflow not found")
	ErrWorkflowNotReviewable = errors.New("workflow not awaiting review")
	ErrInvalidReviewDecision = errors.New("invalid review decision")
	ErrNoEstimateRecorded    = errors.New("project has no recorded estimate")
)

// Each model-backed stage runs under its own deadline so a hung call
// fails the stage instead of stalling the run.
const stageTimeout = 2 * time.Minute

// IWorkflowUseCase drives the four-stage pipeline from ingested chunks to
// a reviewable draft proposal, plus the human review and finalization
// steps that follow.
type IWorkflowUseCase interface {
	RunWorkflow(ctx context.Context, projectID string, chunks []entities.DocumentChunk) (entities.AgentWorkflow, error)
	GetWorkflow(ctx context.Context, id string) (entities.AgentWorkflow, error)
	GetLatestWorkflow(ctx context.Context, projectID string) (entities.AgentWorkflow, error)
	ReviewWorkflow(ctx context.Context, workflowID string, decisions map[string]entities.ReviewStatus, notes []string) (entities.AgentWorkflow, error)
	GenerateFinalProposal(ctx context.Context, projectID string, reviewNotes []string) (entities.Proposal, error)
}

// WorkflowUseCase is the orchestrator. Stages run strictly in order, each
// consuming the previous stage's verbatim output; the workflow record is
// saved after every stage so partial results survive a failure.
type WorkflowUseCase struct {
	workflows interfaces.IWorkflowRepository
	projects  IProjectUseCase
	estimates IEstimateUseCase
	genai     interfaces.IGenerativeClient
	log       zerolog.Logger
}

var _ IWorkflowUseCase = (*WorkflowUseCase)(nil)

func NewWorkflowUseCase(workflows interfaces.IWorkflowRepository, projects IProjectUseCase, estimates IEstimateUseCase, genai interfaces.IGenerativeClient, log zerolog.Logger) *WorkflowUseCase {
	return &WorkflowUseCase{
		workflows: workflows,
		projects:  projects,
		estimates: estimates,
		genai:     genai,
		log:       log,
	}
}

// RunWorkflow executes document_parsing, requirements_analysis,
// cost_estimation and proposal_generation in order for the project.
//
// A stage failure marks the workflow failed, keeps every completed
// stage's output, rolls the project back to draft with the failure reason
// and returns the error. Success leaves the workflow pending_review with
// every review item pending.
func (u *WorkflowUseCase) RunWorkflow(ctx context.Context, projectID string, chunks []entities.DocumentChunk) (entities.AgentWorkflow, error) {
	project, err := u.projects.TransitionProject(ctx, projectID, entities.ProjectStatusEstimationInProgress, "workflow started")
	if err != nil {
		return entities.AgentWorkflow{}, err
	}

	wf := entities.AgentWorkflow{
		WorkflowID: uuid.NewString(),
		ProjectID:  projectID,
		Status:     entities.WorkflowStatusRunning,
		Result: entities.WorkflowResult{
			StageOutputs: map[string]string{},
			ReviewStatus: map[string]entities.ReviewStatus{},
		},
		StartedAt: time.Now().UTC(),
	}
	if wf, err = u.workflows.Save(ctx, wf); err != nil {
		return entities.AgentWorkflow{}, err
	}

	run := func(stage string, fn func(ctx context.Context) (string, error)) (string, error) {
		wf.CurrentStep = stage
		saved, saveErr := u.workflows.Save(ctx, wf)
		if saveErr != nil {
			return "", u.failWorkflow(ctx, &wf, stage, saveErr)
		}
		wf = saved

		stageCtx, cancel := context.WithTimeout(ctx, stageTimeout)
		out, stageErr := fn(stageCtx)
		cancel()
		if stageErr != nil {
			return "", u.failWorkflow(ctx, &wf, stage, stageErr)
		}

		wf.Result.StageOutputs[stage] = out
		wf.StepsCompleted = append(wf.StepsCompleted, stage)
		// Persistence failures fail the run too; a workflow must never
		// stay running after its state could not be recorded.
		saved, saveErr = u.workflows.Save(ctx, wf)
		if saveErr != nil {
			return "", u.failWorkflow(ctx, &wf, stage, saveErr)
		}
		wf = saved
		return out, nil
	}

	parsed, err := run(entities.StageDocumentParsing, func(ctx context.Context) (string, error) {
		return assembleDocumentText(chunks)
	})
	if err != nil {
		return wf, err
	}

	requirements, err := run(entities.StageRequirementsAnalysis, func(ctx context.Context) (string, error) {
		return u.genai.Complete(ctx, requirementsPrompt(parsed))
	})
	if err != nil {
		return wf, err
	}

	var estimate entities.ProjectEstimate
	if _, err = run(entities.StageCostEstimation, func(ctx context.Context) (string, error) {
		est, estErr := u.estimates.GenerateEstimate(ctx, project, parsed+"\n\n"+requirements)
		if estErr != nil {
			return "", estErr
		}
		estimate = est
		encoded, encErr := json.Marshal(est)
		return string(encoded), encErr
	}); err != nil {
		return wf, err
	}

	var proposal entities.Proposal
	if _, err = run(entities.StageProposalGeneration, func(ctx context.Context) (string, error) {
		proposal = u.estimates.BuildProposal(ctx, estimate)
		encoded, encErr := json.Marshal(proposal)
		return string(encoded), encErr
	}); err != nil {
		return wf, err
	}

	// Only now mutate the project: the fallible stages are done, so the
	// run can no longer roll back past an attached estimate.
	if _, err = u.projects.RecordEstimate(ctx, projectID, estimate); err != nil {
		return wf, u.failWorkflow(ctx, &wf, entities.StageCostEstimation, err)
	}

	wf.Status = entities.WorkflowStatusPendingReview
	wf.CurrentStep = ""
	wf.Result.ReviewStatus = map[string]entities.ReviewStatus{
		entities.ReviewItemRequirements: entities.ReviewPending,
		entities.ReviewItemEstimate:     entities.ReviewPending,
		entities.ReviewItemProposal:     entities.ReviewPending,
	}
	wf, err = u.workflows.Save(ctx, wf)
	if err != nil {
		return wf, err
	}

	u.log.Info().
		Str("workflow_id", wf.WorkflowID).
		Str("project_id", projectID).
		Msg("workflow completed, awaiting review")
	return wf, nil
}

func (u *WorkflowUseCase) GetWorkflow(ctx context.Context, id string) (entities.AgentWorkflow, error) {
	wf, err := u.workflows.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return entities.AgentWorkflow{}, err
	}
	if wf.WorkflowID == "" {
		return entities.AgentWorkflow{}, ErrWorkflowNotFound
	}
	return wf, nil
}

func (u *WorkflowUseCase) GetLatestWorkflow(ctx context.Context, projectID string) (entities.AgentWorkflow, error) {
	wf, err := u.workflows.GetLatestByProjectID(ctx, strings.TrimSpace(projectID))
	if err != nil {
		return entities.AgentWorkflow{}, err
	}
	if wf.WorkflowID == "" {
		return entities.AgentWorkflow{}, ErrWorkflowNotFound
	}
	return wf, nil
}

// ReviewWorkflow records the human review decisions. Any rejected item
// moves the project to revision_needed; a fully approved review moves it
// to finalizing. Decisions for unknown items or with unknown values are
// rejected before any state mutates.
func (u *WorkflowUseCase) ReviewWorkflow(ctx context.Context, workflowID string, decisions map[string]entities.ReviewStatus, notes []string) (entities.AgentWorkflow, error) {
	wf, err := u.GetWorkflow(ctx, workflowID)
	if err != nil {
		return entities.AgentWorkflow{}, err
	}
	if wf.Status != entities.WorkflowStatusPendingReview {
		return entities.AgentWorkflow{}, ErrWorkflowNotReviewable
	}

	var rejected []string
	for item, decision := range decisions {
		if _, known := wf.Result.ReviewStatus[item]; !known {
			return entities.AgentWorkflow{}, fmt.Errorf("%w: unknown review item %q", ErrInvalidReviewDecision, item)
		}
		if decision != entities.ReviewApproved && decision != entities.ReviewRejected {
			return entities.AgentWorkflow{}, fmt.Errorf("%w: %q for item %q", ErrInvalidReviewDecision, decision, item)
		}
		if decision == entities.ReviewRejected {
			rejected = append(rejected, item)
		}
	}
	if len(rejected) > 0 && len(notes) == 0 {
		return entities.AgentWorkflow{}, fmt.Errorf("%w: rejection requires review notes", ErrInvalidReviewDecision)
	}

	for item, decision := range decisions {
		wf.Result.ReviewStatus[item] = decision
	}
	wf.Result.ReviewNotes = append(wf.Result.ReviewNotes, notes...)

	allApproved := true
	for _, status := range wf.Result.ReviewStatus {
		if status != entities.ReviewApproved {
			allApproved = false
			break
		}
	}

	if len(rejected) > 0 {
		reason := "review rejected: " + strings.Join(rejected, ", ")
		if _, err := u.projects.TransitionProject(ctx, wf.ProjectID, entities.ProjectStatusRevisionNeeded, reason); err != nil {
			return entities.AgentWorkflow{}, err
		}
	} else if allApproved {
		if _, err := u.projects.TransitionProject(ctx, wf.ProjectID, entities.ProjectStatusFinalizing, "review approved"); err != nil {
			return entities.AgentWorkflow{}, err
		}
	}

	return u.workflows.Save(ctx, wf)
}

// GenerateFinalProposal re-runs the drafting stage with the review notes
// applied and records the final proposal on the project. If the model
// response does not parse as a proposal document, its raw text becomes
// the executive summary of the template-built proposal.
func (u *WorkflowUseCase) GenerateFinalProposal(ctx context.Context, projectID string, reviewNotes []string) (entities.Proposal, error) {
	project, err := u.projects.GetProject(ctx, projectID)
	if err != nil {
		return entities.Proposal{}, err
	}
	if project.Estimate == nil {
		return entities.Proposal{}, ErrNoEstimateRecorded
	}
	if project.Status == entities.ProjectStatusRevisionNeeded {
		if project, err = u.projects.TransitionProject(ctx, projectID, entities.ProjectStatusFinalizing, "finalization started"); err != nil {
			return entities.Proposal{}, err
		}
	}

	proposal := u.estimates.BuildProposal(ctx, *project.Estimate)

	draftCtx, cancel := context.WithTimeout(ctx, stageTimeout)
	raw, genErr := u.genai.CompleteJSON(draftCtx, finalProposalPrompt(proposal, reviewNotes))
	cancel()
	if genErr != nil {
		u.log.Warn().Err(genErr).Str("project_id", projectID).Msg("final proposal drafting failed, keeping template sections")
	} else if raw != "" {
		var revised struct {
			ExecutiveSummary        string `json:"executive_summary"`
			ScopeOfWork             string `json:"scope_of_work"`
			TechnicalSpecifications string `json:"technical_specifications"`
			TermsAndConditions      string `json:"terms_and_conditions"`
			PaymentSchedule         string `json:"payment_schedule"`
			Timeline                string `json:"timeline"`
		}
		if err := json.Unmarshal([]byte(raw), &revised); err != nil {
			proposal.ExecutiveSummary = strings.TrimSpace(raw)
		} else {
			overlay(&proposal.ExecutiveSummary, revised.ExecutiveSummary)
			overlay(&proposal.ScopeOfWork, revised.ScopeOfWork)
			overlay(&proposal.TechnicalSpecifications, revised.TechnicalSpecifications)
			overlay(&proposal.TermsAndConditions, revised.TermsAndConditions)
			overlay(&proposal.PaymentSchedule, revised.PaymentSchedule)
			overlay(&proposal.Timeline, revised.Timeline)
		}
	}

	proposal.Version = "final"
	proposal.ReviewNotes = reviewNotes
	proposal.GeneratedAt = time.Now().UTC()

	if _, err := u.projects.RecordProposal(ctx, projectID, proposal, entities.ProjectStatusCompleted, "final proposal generated"); err != nil {
		return entities.Proposal{}, err
	}

	if wf, err := u.workflows.GetLatestByProjectID(ctx, projectID); err == nil && wf.WorkflowID != "" {
		now := time.Now().UTC()
		wf.Status = entities.WorkflowStatusCompleted
		wf.CompletedAt = &now
		if encoded, err := json.Marshal(proposal); err == nil {
			wf.Result.StageOutputs[entities.StageProposalGeneration] = string(encoded)
		}
		if _, err := u.workflows.Save(ctx, wf); err != nil {
			u.log.Warn().Err(err).Str("workflow_id", wf.WorkflowID).Msg("saving completed workflow failed")
		}
	}

	return proposal, nil
}

// failWorkflow commits the failed state plus the rollback transition, then
// returns the stage error for the caller.
func (u *WorkflowUseCase) failWorkflow(ctx context.Context, wf *entities.AgentWorkflow, stage string, stageErr error) error {
	now := time.Now().UTC()
	wf.Status = entities.WorkflowStatusFailed
	wf.Error = fmt.Sprintf("%s: %v", stage, stageErr)
	wf.CompletedAt = &now
	if saved, err := u.workflows.Save(ctx, *wf); err != nil {
		u.log.Error().Err(err).Str("workflow_id", wf.WorkflowID).Msg("saving failed workflow")
	} else {
		*wf = saved
	}

	reason := fmt.Sprintf("workflow failed at %s: %v", stage, stageErr)
	if _, err := u.projects.TransitionProject(ctx, wf.ProjectID, entities.ProjectStatusDraft, reason); err != nil {
		u.log.Error().Err(err).Str("project_id", wf.ProjectID).Msg("rolling project back after workflow failure")
	}

	u.log.Warn().
		Str("workflow_id", wf.WorkflowID).
		Str("stage", stage).
		Err(stageErr).
		Msg("workflow failed")
	return fmt.Errorf("workflow stage %s: %w", stage, stageErr)
}

// assembleDocumentText reconstructs per-document text from chunks,
// relying on chunk order within each document, and prepends the shared
// metadata record of each document.
func assembleDocumentText(chunks []entities.DocumentChunk) (string, error) {
	if len(chunks) == 0 {
		return "", errors.New("no document chunks to parse")
	}

	var order []string
	byDoc := make(map[string][]entities.DocumentChunk)
	for _, chunk := range chunks {
		if _, seen := byDoc[chunk.DocumentID]; !seen {
			order = append(order, chunk.DocumentID)
		}
		byDoc[chunk.DocumentID] = append(byDoc[chunk.DocumentID], chunk)
	}

	var b strings.Builder
	for _, docID := range order {
		docChunks := byDoc[docID]
		if meta, err := json.Marshal(docChunks[0].Metadata); err == nil {
			fmt.Fprintf(&b, "Document %s metadata: %s\n", docID, meta)
		}
		for _, chunk := range docChunks {
			b.WriteString(chunk.Content)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func requirementsPrompt(parsed string) string {
	return fmt.Sprintf(`Analyze the following construction project documents and summarize the fire protection and security requirements: required systems, coverage areas, applicable codes, constraints and anything that affects cost.

%s`, parsed)
}

func finalProposalPrompt(proposal entities.Proposal, reviewNotes []string) string {
	return fmt.Sprintf(`Revise the following draft proposal applying the reviewer notes. Respond with a JSON object with keys: executive_summary, scope_of_work, technical_specifications, terms_and_conditions, payment_schedule, timeline. Keep all cost figures unchanged.

Reviewer notes:
%s

Draft proposal:
Executive summary: %s
Scope of work: %s
Technical specifications: %s
Total cost: $%.2f`,
		strings.Join(reviewNotes, "\n"),
		proposal.ExecutiveSummary, proposal.ScopeOfWork, proposal.TechnicalSpecifications, proposal.TotalCost,
	)
}

func overlay(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}
