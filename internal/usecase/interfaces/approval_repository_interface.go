package interfaces

import (
	"context"

	"firesec_estimator/internal/domain/entities"
)

//go:generate mockgen -source=approval_repository_interface.go -destination=mocks/approval_repository_mock.go -package=mock_interfaces

// IApprovalRepository persists ApprovalRequest records.
//
// GetByID returns the zero request (RequestID == "") when not found.
// Update replaces the stored record; the approval gate is the only
// writer, so no version check is needed beyond existence.
type IApprovalRepository interface {
	Create(ctx context.Context, r entities.ApprovalRequest) (entities.ApprovalRequest, error)
	GetByID(ctx context.Context, id string) (entities.ApprovalRequest, error)
	Update(ctx context.Context, r entities.ApprovalRequest) (entities.ApprovalRequest, error)
	ListByProjectID(ctx context.Context, projectID string) ([]entities.ApprovalRequest, error)
	ListByAssignee(ctx context.Context, assignee string) ([]entities.ApprovalRequest, error)
}
