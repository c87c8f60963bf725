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
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	ErrApprovalNotFound     = errors.New("approval request not found")
	ErrInvalidApprovalInput = errors.New("invalid approval input")
	ErrRejectionNeedsReason = errors.New("rejection requires a reason")
	ErrApprovalNotPending   = errors.New("approval request is not pending")
	ErrApprovalNotResumable = errors.New("only a modified request can be resubmitted")
	ErrModificationEmpty    = errors.New("modification requires changed content")
)

// CreateApprovalInput describes a proposal entering human review.
type CreateApprovalInput struct {
	ProjectID  string
	ProposalID string
	Assignee   string
	PDFURL     string
}

// IApprovalUseCase is the approval gate: every generated proposal passes
// through it before release, and every decision leaves an audit comment.
type IApprovalUseCase interface {
	CreateApproval(ctx context.Context, in CreateApprovalInput) (entities.ApprovalRequest, error)
	GetApproval(ctx context.Context, requestID string) (entities.ApprovalRequest, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.ApprovalRequest, error)
	ListByAssignee(ctx context.Context, assignee string) ([]entities.ApprovalRequest, error)
	Approve(ctx context.Context, requestID, user, comment string) (entities.ApprovalRequest, error)
	Reject(ctx context.Context, requestID, user, reason string) (entities.ApprovalRequest, error)
	Modify(ctx context.Context, requestID, user string, changes map[string]any) (entities.ApprovalRequest, error)
	Resubmit(ctx context.Context, requestID, user string) (entities.ApprovalRequest, error)
}

type ApprovalUseCase struct {
	repo     interfaces.IApprovalRepository
	projects IProjectUseCase
	notifier interfaces.INotifier
	log      zerolog.Logger
}

var _ IApprovalUseCase = (*ApprovalUseCase)(nil)

func NewApprovalUseCase(repo interfaces.IApprovalRepository, projects IProjectUseCase, notifier interfaces.INotifier, log zerolog.Logger) *ApprovalUseCase {
	return &ApprovalUseCase{repo: repo, projects: projects, notifier: notifier, log: log}
}

// CreateApproval opens a pending request and notifies the assignee. The
// notification is sent after the request is durably stored and its
// failure is absorbed.
func (u *ApprovalUseCase) CreateApproval(ctx context.Context, in CreateApprovalInput) (entities.ApprovalRequest, error) {
	if strings.TrimSpace(in.ProjectID) == "" || strings.TrimSpace(in.ProposalID) == "" {
		return entities.ApprovalRequest{}, ErrInvalidApprovalInput
	}

	now := time.Now().UTC()
	r := entities.ApprovalRequest{
		RequestID:  uuid.NewString(),
		ProjectID:  strings.TrimSpace(in.ProjectID),
		ProposalID: strings.TrimSpace(in.ProposalID),
		Status:     entities.ApprovalStatusPending,
		Assignee:   strings.TrimSpace(in.Assignee),
		PDFURL:     in.PDFURL,
		Comments: []entities.ApprovalComment{{
			User:      "system",
			Text:      "approval requested",
			Timestamp: now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	r, err := u.repo.Create(ctx, r)
	if err != nil {
		return entities.ApprovalRequest{}, err
	}

	if r.Assignee != "" {
		if err := u.notifier.SendApprovalRequest(ctx, r.Assignee, r.RequestID, r.ProjectID, r.PDFURL); err != nil {
			u.log.Warn().Err(err).Str("request_id", r.RequestID).Msg("approval request notification failed")
		}
	}

	u.log.Info().Str("request_id", r.RequestID).Str("project_id", r.ProjectID).Msg("approval request created")
	return r, nil
}

func (u *ApprovalUseCase) GetApproval(ctx context.Context, requestID string) (entities.ApprovalRequest, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return entities.ApprovalRequest{}, ErrInvalidApprovalInput
	}
	r, err := u.repo.GetByID(ctx, requestID)
	if err != nil {
		return entities.ApprovalRequest{}, err
	}
	if r.RequestID == "" {
		return entities.ApprovalRequest{}, ErrApprovalNotFound
	}
	return r, nil
}

func (u *ApprovalUseCase) ListByProject(ctx context.Context, projectID string) ([]entities.ApprovalRequest, error) {
	return u.repo.ListByProjectID(ctx, strings.TrimSpace(projectID))
}

func (u *ApprovalUseCase) ListByAssignee(ctx context.Context, assignee string) ([]entities.ApprovalRequest, error) {
	return u.repo.ListByAssignee(ctx, strings.TrimSpace(assignee))
}

// Approve moves a pending request to approved.
func (u *ApprovalUseCase) Approve(ctx context.Context, requestID, user, comment string) (entities.ApprovalRequest, error) {
	if comment = strings.TrimSpace(comment); comment == "" {
		comment = "approved"
	}
	return u.decide(ctx, requestID, user, entities.ApprovalStatusApproved, comment, nil)
}

// Reject moves a pending request to rejected. The reason is mandatory and
// is validated before any state mutates; the owning project moves to
// revision_needed.
func (u *ApprovalUseCase) Reject(ctx context.Context, requestID, user, reason string) (entities.ApprovalRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return entities.ApprovalRequest{}, ErrRejectionNeedsReason
	}
	r, err := u.decide(ctx, requestID, user, entities.ApprovalStatusRejected, strings.TrimSpace(reason), nil)
	if err != nil {
		return entities.ApprovalRequest{}, err
	}

	if _, err := u.projects.TransitionProject(ctx, r.ProjectID, entities.ProjectStatusRevisionNeeded, "proposal rejected: "+strings.TrimSpace(reason)); err != nil {
		u.log.Warn().Err(err).Str("project_id", r.ProjectID).Msg("moving project to revision after rejection failed")
	}
	return r, nil
}

// Modify stores reviewer edits on a pending request. The audit comment
// carries a line diff of every changed field so the modification is
// reconstructable.
func (u *ApprovalUseCase) Modify(ctx context.Context, requestID, user string, changes map[string]any) (entities.ApprovalRequest, error) {
	if len(changes) == 0 {
		return entities.ApprovalRequest{}, ErrModificationEmpty
	}
	return u.decide(ctx, requestID, user, entities.ApprovalStatusModified, "", changes)
}

// Resubmit returns a modified request to pending for a fresh decision
// over the edited content.
func (u *ApprovalUseCase) Resubmit(ctx context.Context, requestID, user string) (entities.ApprovalRequest, error) {
	r, err := u.GetApproval(ctx, requestID)
	if err != nil {
		return entities.ApprovalRequest{}, err
	}
	if r.Status != entities.ApprovalStatusModified {
		return entities.ApprovalRequest{}, ErrApprovalNotResumable
	}

	now := time.Now().UTC()
	r.Status = entities.ApprovalStatusPending
	r.Comments = append(r.Comments, entities.ApprovalComment{
		User:      userOrSystem(user),
		Text:      "resubmitted for review",
		Timestamp: now,
	})
	r.UpdatedAt = now

	r, err = u.repo.Update(ctx, r)
	if err != nil {
		return entities.ApprovalRequest{}, err
	}
	u.notifyDecision(ctx, r, userOrSystem(user), "resubmitted for review")
	return r, nil
}

// decide applies one status transition to a pending request, appending
// exactly one audit comment, and notifies after the write commits.
func (u *ApprovalUseCase) decide(ctx context.Context, requestID, user string, status entities.ApprovalStatus, comment string, changes map[string]any) (entities.ApprovalRequest, error) {
	r, err := u.GetApproval(ctx, requestID)
	if err != nil {
		return entities.ApprovalRequest{}, err
	}
	if r.Status != entities.ApprovalStatusPending {
		return entities.ApprovalRequest{}, ErrApprovalNotPending
	}

	if status == entities.ApprovalStatusModified {
		comment = "modified: " + modificationDiff(r.ModifiedContent, changes)
		r.ModifiedContent = changes
	}

	now := time.Now().UTC()
	r.Status = status
	r.Comments = append(r.Comments, entities.ApprovalComment{
		User:      userOrSystem(user),
		Text:      comment,
		Timestamp: now,
	})
	r.UpdatedAt = now

	r, err = u.repo.Update(ctx, r)
	if err != nil {
		return entities.ApprovalRequest{}, err
	}

	u.notifyDecision(ctx, r, userOrSystem(user), comment)
	u.log.Info().
		Str("request_id", r.RequestID).
		Str("status", string(status)).
		Str("user", userOrSystem(user)).
		Msg("approval decision recorded")
	return r, nil
}

func (u *ApprovalUseCase) notifyDecision(ctx context.Context, r entities.ApprovalRequest, actor, comment string) {
	if err := u.notifier.SendApprovalConfirmation(ctx, r.RequestID, r.ProjectID, string(r.Status), actor, comment); err != nil {
		u.log.Warn().Err(err).Str("request_id", r.RequestID).Msg("approval decision notification failed")
	}
}

// modificationDiff renders a per-field line diff between the previous and
// new modified content.
func modificationDiff(before, after map[string]any) string {
	dmp := diffmatchpatch.New()
	var b strings.Builder
	for field, newVal := range after {
		oldText := renderFieldValue(before[field])
		newText := renderFieldValue(newVal)
		if oldText == newText {
			continue
		}
		diffs := dmp.DiffMain(oldText, newText, false)
		dmp.DiffCleanupSemantic(diffs)
		fmt.Fprintf(&b, "%s: %s; ", field, compactDiff(diffs))
	}
	if b.Len() == 0 {
		return "no effective changes"
	}
	return strings.TrimSuffix(b.String(), "; ")
}

func compactDiff(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			fmt.Fprintf(&b, "+[%s]", d.Text)
		case diffmatchpatch.DiffDelete:
			fmt.Fprintf(&b, "-[%s]", d.Text)
		}
	}
	if b.Len() == 0 {
		return "unchanged"
	}
	return b.String()
}

func renderFieldValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(encoded)
}

func userOrSystem(user string) string {
	if user = strings.TrimSpace(user); user != "" {
		return user
	}
	return "system"
}
