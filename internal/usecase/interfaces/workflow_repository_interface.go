package interfaces

import (
	"context"

	"firesec_estimator/internal/domain/entities"
)

//go:generate mockgen -source=workflow_repository_interface.go -destination=mocks/workflow_repository_mock.go -package=mock_interfaces

// IWorkflowRepository persists AgentWorkflow records.
//
// The orchestrator saves after every stage so partial results survive a
// failed run. GetByID/GetLatestByProjectID return the zero workflow
// (WorkflowID == "") when not found.
type IWorkflowRepository interface {
	Save(ctx context.Context, wf entities.AgentWorkflow) (entities.AgentWorkflow, error)
	GetByID(ctx context.Context, id string) (entities.AgentWorkflow, error)
	GetLatestByProjectID(ctx context.Context, projectID string) (entities.AgentWorkflow, error)
}
