package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrInvalidProjectID    = errors.New("invalid project id")
	ErrInvalidProjectInput = errors.New("invalid project input")
	ErrIllegalTransition   = errors.New("illegal status transition")
	ErrTransitionConflict  = errors.New("concurrent project mutation")
)

// legalTransitions is the canonical state machine. Anything not listed is
// rejected with ErrIllegalTransition, including self-transitions.
//
// estimation_in_progress -> draft is the workflow-failure path; the reason
// on the history entry records why the run was rolled back.
var legalTransitions = map[entities.ProjectStatus][]entities.ProjectStatus{
	entities.ProjectStatusDraft:                {entities.ProjectStatusEstimationInProgress},
	entities.ProjectStatusEstimationInProgress: {entities.ProjectStatusAnalyzed, entities.ProjectStatusDraft},
	entities.ProjectStatusAnalyzed:             {entities.ProjectStatusProposalSent, entities.ProjectStatusRevisionNeeded, entities.ProjectStatusFinalizing},
	entities.ProjectStatusProposalSent:         {entities.ProjectStatusNegotiation, entities.ProjectStatusRevisionNeeded},
	entities.ProjectStatusNegotiation:          {entities.ProjectStatusWon, entities.ProjectStatusLost},
	entities.ProjectStatusRevisionNeeded:       {entities.ProjectStatusFinalizing},
	entities.ProjectStatusFinalizing:           {entities.ProjectStatusCompleted},
}

// CreateProjectInput is the intake payload for a new project.
type CreateProjectInput struct {
	ProjectName  string
	ClientName   string
	ClientEmail  string
	ClientPhone  string
	BuildingType string
	BuildingSize string
	Location     entities.ProjectLocation
	Metadata     map[string]string
}

// IProjectUseCase owns the Project entity: its status machine, its
// append-only history and its message log. Every other component reports
// transitions through it.
type IProjectUseCase interface {
	CreateProject(ctx context.Context, in CreateProjectInput) (entities.Project, error)
	GetProject(ctx context.Context, id string) (entities.Project, error)
	ListProjects(ctx context.Context) ([]entities.Project, error)
	TransitionProject(ctx context.Context, id string, newStatus entities.ProjectStatus, reason string) (entities.Project, error)
	AppendMessage(ctx context.Context, id, sender, content string) (entities.Project, error)
	RecordEstimate(ctx context.Context, id string, estimate entities.ProjectEstimate) (entities.Project, error)
	RecordProposal(ctx context.Context, id string, proposal entities.Proposal, newStatus entities.ProjectStatus, reason string) (entities.Project, error)
	SendProposal(ctx context.Context, id string) (entities.Project, error)
}

type ProjectUseCase struct {
	repo     interfaces.IProjectRepository
	notifier interfaces.INotifier
	log      zerolog.Logger
}

var _ IProjectUseCase = (*ProjectUseCase)(nil)

func NewProjectUseCase(repo interfaces.IProjectRepository, notifier interfaces.INotifier, log zerolog.Logger) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, notifier: notifier, log: log}
}

func (u *ProjectUseCase) CreateProject(ctx context.Context, in CreateProjectInput) (entities.Project, error) {
	if strings.TrimSpace(in.ProjectName) == "" || strings.TrimSpace(in.ClientName) == "" {
		return entities.Project{}, ErrInvalidProjectInput
	}

	now := time.Now().UTC()
	p := entities.Project{
		ID:           uuid.NewString(),
		ProjectName:  strings.TrimSpace(in.ProjectName),
		ClientName:   strings.TrimSpace(in.ClientName),
		ClientEmail:  strings.TrimSpace(in.ClientEmail),
		ClientPhone:  strings.TrimSpace(in.ClientPhone),
		BuildingType: in.BuildingType,
		BuildingSize: in.BuildingSize,
		Location:     in.Location,
		Status:       entities.ProjectStatusDraft,
		History: []entities.HistoryEntry{{
			Status:    entities.ProjectStatusDraft,
			Timestamp: now,
			Reason:    "project created",
		}},
		Metadata:  in.Metadata,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return u.repo.Create(ctx, p)
}

func (u *ProjectUseCase) GetProject(ctx context.Context, id string) (entities.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Project{}, ErrInvalidProjectID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}
	if p.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (u *ProjectUseCase) ListProjects(ctx context.Context) ([]entities.Project, error) {
	return u.repo.List(ctx)
}

func (u *ProjectUseCase) TransitionProject(ctx context.Context, id string, newStatus entities.ProjectStatus, reason string) (entities.Project, error) {
	return u.transition(ctx, id, newStatus, reason, nil)
}

func (u *ProjectUseCase) AppendMessage(ctx context.Context, id, sender, content string) (entities.Project, error) {
	sender = strings.TrimSpace(sender)
	content = strings.TrimSpace(content)
	if sender == "" || content == "" {
		return entities.Project{}, ErrInvalidProjectInput
	}

	p, err := u.GetProject(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}

	p.Messages = append(p.Messages, entities.Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
	})
	return u.commit(ctx, p)
}

// RecordEstimate attaches the estimate snapshot and moves the project to
// analyzed in the same write.
func (u *ProjectUseCase) RecordEstimate(ctx context.Context, id string, estimate entities.ProjectEstimate) (entities.Project, error) {
	return u.transition(ctx, id, entities.ProjectStatusAnalyzed, "estimate generated", func(p *entities.Project) {
		est := estimate
		p.Estimate = &est
	})
}

// RecordProposal attaches the proposal snapshot together with a status
// transition (finalizing -> completed on finalization).
func (u *ProjectUseCase) RecordProposal(ctx context.Context, id string, proposal entities.Proposal, newStatus entities.ProjectStatus, reason string) (entities.Project, error) {
	return u.transition(ctx, id, newStatus, reason, func(p *entities.Project) {
		prop := proposal
		p.Proposal = &prop
	})
}

// SendProposal transitions analyzed -> proposal_sent and emails the client.
// Notification failure is logged, never reverted: the status change is
// already committed.
func (u *ProjectUseCase) SendProposal(ctx context.Context, id string) (entities.Project, error) {
	p, err := u.transition(ctx, id, entities.ProjectStatusProposalSent, "proposal sent to client", nil)
	if err != nil {
		return entities.Project{}, err
	}

	if u.notifier != nil && p.ClientEmail != "" {
		subject := "Proposal: " + p.ProjectName
		msg := "Your proposal for " + p.ProjectName + " is ready for review."
		if err := u.notifier.SendCustomerNotification(ctx, p.ClientEmail, p.ID, subject, msg, ""); err != nil {
			u.log.Warn().Err(err).Str("project_id", p.ID).Msg("customer notification failed")
		}
	}
	return p, nil
}

// transition validates legality, appends the history entry and commits
// status + history atomically through the repository's version condition.
func (u *ProjectUseCase) transition(ctx context.Context, id string, newStatus entities.ProjectStatus, reason string, mutate func(*entities.Project)) (entities.Project, error) {
	p, err := u.GetProject(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}

	if !transitionAllowed(p.Status, newStatus) {
		return entities.Project{}, ErrIllegalTransition
	}

	p.Status = newStatus
	p.History = append(p.History, entities.HistoryEntry{
		Status:    newStatus,
		Timestamp: time.Now().UTC(),
		Reason:    reason,
	})
	if mutate != nil {
		mutate(&p)
	}

	updated, err := u.commit(ctx, p)
	if err != nil {
		return entities.Project{}, err
	}

	u.log.Info().
		Str("project_id", updated.ID).
		Str("status", string(newStatus)).
		Str("reason", reason).
		Msg("project transitioned")
	return updated, nil
}

func (u *ProjectUseCase) commit(ctx context.Context, p entities.Project) (entities.Project, error) {
	expected := p.Version
	p.Version++
	p.UpdatedAt = time.Now().UTC()

	updated, err := u.repo.Update(ctx, p, expected)
	if err != nil {
		if errors.Is(err, interfaces.ErrVersionConflict) {
			return entities.Project{}, ErrTransitionConflict
		}
		return entities.Project{}, err
	}
	return updated, nil
}

func transitionAllowed(from, to entities.ProjectStatus) bool {
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
