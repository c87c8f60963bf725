package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"firesec_estimator/internal/adapter/persistence/repository"
	"firesec_estimator/internal/domain/entities"
	mock_interfaces "firesec_estimator/internal/usecase/interfaces/mocks"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

type approvalFixture struct {
	uc       *ApprovalUseCase
	projects *ProjectUseCase
	notifier *mock_interfaces.MockINotifier
}

func newApprovalFixture(t *testing.T, ctrl *gomock.Controller) approvalFixture {
	t.Helper()
	notifier := mock_interfaces.NewMockINotifier(ctrl)
	projects := NewProjectUseCase(repository.NewMemoryProjectRepository(), nil, zerolog.Nop())
	uc := NewApprovalUseCase(repository.NewMemoryApprovalRepository(), projects, notifier, zerolog.Nop())
	return approvalFixture{uc: uc, projects: projects, notifier: notifier}
}

// createPending opens a pending approval over a project sitting in
// proposal_sent, the state a rejection must be able to leave.
func (f approvalFixture) createPending(t *testing.T) entities.ApprovalRequest {
	t.Helper()
	p := createDraft(t, f.projects)
	mustTransition(t, f.projects, p.ID, entities.ProjectStatusEstimationInProgress)
	mustTransition(t, f.projects, p.ID, entities.ProjectStatusAnalyzed)
	mustTransition(t, f.projects, p.ID, entities.ProjectStatusProposalSent)

	f.notifier.EXPECT().
		SendApprovalRequest(gomock.Any(), "reviewer@firesec.test", gomock.Any(), p.ID, gomock.Any()).
		Return(nil)

	r, err := f.uc.CreateApproval(context.Background(), CreateApprovalInput{
		ProjectID:  p.ID,
		ProposalID: "prop-1",
		Assignee:   "reviewer@firesec.test",
		PDFURL:     "s3://proposals/prop-1.pdf",
	})
	if err != nil {
		t.Fatalf("creating approval: %v", err)
	}
	return r
}

func TestApprovalUseCase_CreateApproval(t *testing.T) {
	t.Run("missing identifiers", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newApprovalFixture(t, ctrl)

		_, err := f.uc.CreateApproval(context.Background(), CreateApprovalInput{ProjectID: " ", ProposalID: "prop-1"})
		if !errors.Is(err, ErrInvalidApprovalInput) {
			t.Fatalf("expected ErrInvalidApprovalInput, got %v", err)
		}
	})

	t.Run("opens pending with audit comment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newApprovalFixture(t, ctrl)

		r := f.createPending(t)
		if r.Status != entities.ApprovalStatusPending {
			t.Fatalf("expected pending, got %s", r.Status)
		}
		if len(r.Comments) != 1 || r.Comments[0].User != "system" {
			t.Fatalf("unexpected comments: %+v", r.Comments)
		}
	})

	t.Run("notification failure does not fail creation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newApprovalFixture(t, ctrl)
		p := createDraft(t, f.projects)

		f.notifier.EXPECT().
			SendApprovalRequest(gomock.Any(), "reviewer@firesec.test", gomock.Any(), p.ID, gomock.Any()).
			Return(errors.New("smtp down"))

		r, err := f.uc.CreateApproval(context.Background(), CreateApprovalInput{
			ProjectID:  p.ID,
			ProposalID: "prop-1",
			Assignee:   "reviewer@firesec.test",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.RequestID == "" {
			t.Fatalf("request not created")
		}
	})
}

func TestApprovalUseCase_Approve(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newApprovalFixture(t, ctrl)
	r := f.createPending(t)

	f.notifier.EXPECT().
		SendApprovalConfirmation(gomock.Any(), r.RequestID, r.ProjectID, string(entities.ApprovalStatusApproved), "alice", "looks good").
		Return(nil)

	updated, err := f.uc.Approve(context.Background(), r.RequestID, "alice", "looks good")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != entities.ApprovalStatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}
	// Exactly one comment per transition.
	if len(updated.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(updated.Comments))
	}
	last := updated.Comments[len(updated.Comments)-1]
	if last.User != "alice" || last.Text != "looks good" {
		t.Fatalf("unexpected audit comment: %+v", last)
	}

	t.Run("decided request is no longer pending", func(t *testing.T) {
		_, err := f.uc.Approve(context.Background(), r.RequestID, "bob", "")
		if !errors.Is(err, ErrApprovalNotPending) {
			t.Fatalf("expected ErrApprovalNotPending, got %v", err)
		}
	})
}

func TestApprovalUseCase_Reject(t *testing.T) {
	t.Run("reason required before any mutation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newApprovalFixture(t, ctrl)
		r := f.createPending(t)

		_, err := f.uc.Reject(context.Background(), r.RequestID, "alice", "   ")
		if !errors.Is(err, ErrRejectionNeedsReason) {
			t.Fatalf("expected ErrRejectionNeedsReason, got %v", err)
		}

		stored, err := f.uc.GetApproval(context.Background(), r.RequestID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.Status != entities.ApprovalStatusPending || len(stored.Comments) != 1 {
			t.Fatalf("request mutated by rejected call: %+v", stored)
		}
	})

	t.Run("moves project to revision_needed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newApprovalFixture(t, ctrl)
		r := f.createPending(t)

		f.notifier.EXPECT().
			SendApprovalConfirmation(gomock.Any(), r.RequestID, r.ProjectID, string(entities.ApprovalStatusRejected), "alice", "pricing is off").
			Return(nil)

		updated, err := f.uc.Reject(context.Background(), r.RequestID, "alice", "pricing is off")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != entities.ApprovalStatusRejected {
			t.Fatalf("expected rejected, got %s", updated.Status)
		}

		project, err := f.projects.GetProject(context.Background(), r.ProjectID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if project.Status != entities.ProjectStatusRevisionNeeded {
			t.Fatalf("expected revision_needed, got %s", project.Status)
		}
		last := project.History[len(project.History)-1]
		if !strings.Contains(last.Reason, "pricing is off") {
			t.Fatalf("rejection reason not in history: %+v", last)
		}
	})
}

func TestApprovalUseCase_ModifyAndResubmit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newApprovalFixture(t, ctrl)
	r := f.createPending(t)

	t.Run("empty modification rejected", func(t *testing.T) {
		_, err := f.uc.Modify(context.Background(), r.RequestID, "alice", nil)
		if !errors.Is(err, ErrModificationEmpty) {
			t.Fatalf("expected ErrModificationEmpty, got %v", err)
		}
	})

	t.Run("resubmit requires modified state", func(t *testing.T) {
		_, err := f.uc.Resubmit(context.Background(), r.RequestID, "alice")
		if !errors.Is(err, ErrApprovalNotResumable) {
			t.Fatalf("expected ErrApprovalNotResumable, got %v", err)
		}
	})

	t.Run("modify stores changes with field diff", func(t *testing.T) {
		f.notifier.EXPECT().
			SendApprovalConfirmation(gomock.Any(), r.RequestID, r.ProjectID, string(entities.ApprovalStatusModified), "alice", gomock.Any()).
			Return(nil)

		updated, err := f.uc.Modify(context.Background(), r.RequestID, "alice", map[string]any{
			"executive_summary": "Shorter summary.",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != entities.ApprovalStatusModified {
			t.Fatalf("expected modified, got %s", updated.Status)
		}
		if updated.ModifiedContent["executive_summary"] != "Shorter summary." {
			t.Fatalf("changes not stored: %+v", updated.ModifiedContent)
		}

		last := updated.Comments[len(updated.Comments)-1]
		if !strings.HasPrefix(last.Text, "modified: ") || !strings.Contains(last.Text, "executive_summary") {
			t.Fatalf("diff comment missing: %q", last.Text)
		}
		if !strings.Contains(last.Text, "+[Shorter summary.]") {
			t.Fatalf("insertion not in diff: %q", last.Text)
		}
	})

	t.Run("resubmit returns to pending", func(t *testing.T) {
		f.notifier.EXPECT().
			SendApprovalConfirmation(gomock.Any(), r.RequestID, r.ProjectID, string(entities.ApprovalStatusPending), "alice", "resubmitted for review").
			Return(nil)

		updated, err := f.uc.Resubmit(context.Background(), r.RequestID, "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Status != entities.ApprovalStatusPending {
			t.Fatalf("expected pending, got %s", updated.Status)
		}
		last := updated.Comments[len(updated.Comments)-1]
		if last.Text != "resubmitted for review" {
			t.Fatalf("unexpected comment: %+v", last)
		}
	})
}

func TestApprovalUseCase_Listing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newApprovalFixture(t, ctrl)
	r := f.createPending(t)

	byProject, err := f.uc.ListByProject(context.Background(), r.ProjectID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byProject) != 1 || byProject[0].RequestID != r.RequestID {
		t.Fatalf("unexpected project listing: %+v", byProject)
	}

	byAssignee, err := f.uc.ListByAssignee(context.Background(), "reviewer@firesec.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byAssignee) != 1 {
		t.Fatalf("unexpected assignee listing: %+v", byAssignee)
	}

	if _, err := f.uc.GetApproval(context.Background(), "missing"); !errors.Is(err, ErrApprovalNotFound) {
		t.Fatalf("expected ErrApprovalNotFound, got %v", err)
	}
}
