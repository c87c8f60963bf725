package repository

import (
	"context"
	"sync"

	"firesec_estimator/internal/domain/entities"
	"firesec_estimator/internal/usecase/interfaces"
)

// In-memory repository implementations. They honor the same contracts as
// the DynamoDB ones, including the version condition on project updates,
// and back the test suites and local development.

type MemoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]entities.Project
}

var _ interfaces.IProjectRepository = (*MemoryProjectRepository)(nil)

func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{projects: make(map[string]entities.Project)}
}

func (r *MemoryProjectRepository) Create(_ context.Context, p entities.Project) (entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = p
	return p, nil
}

func (r *MemoryProjectRepository) GetByID(_ context.Context, id string) (entities.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.projects[id], nil
}

func (r *MemoryProjectRepository) List(_ context.Context) ([]entities.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, p)
	}
	return out, nil
}

func (r *MemoryProjectRepository) Update(_ context.Context, p entities.Project, expectedVersion int64) (entities.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.projects[p.ID]
	if !ok || stored.Version != expectedVersion {
		return entities.Project{}, interfaces.ErrVersionConflict
	}
	r.projects[p.ID] = p
	return p, nil
}

type MemoryWorkflowRepository struct {
	mu        sync.RWMutex
	workflows map[string]entities.AgentWorkflow
}

var _ interfaces.IWorkflowRepository = (*MemoryWorkflowRepository)(nil)

func NewMemoryWorkflowRepository() *MemoryWorkflowRepository {
	return &MemoryWorkflowRepository{workflows: make(map[string]entities.AgentWorkflow)}
}

func (r *MemoryWorkflowRepository) Save(_ context.Context, wf entities.AgentWorkflow) (entities.AgentWorkflow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.workflows[wf.WorkflowID] = wf
	return wf, nil
}

func (r *MemoryWorkflowRepository) GetByID(_ context.Context, id string) (entities.AgentWorkflow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.workflows[id], nil
}

func (r *MemoryWorkflowRepository) GetLatestByProjectID(_ context.Context, projectID string) (entities.AgentWorkflow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest entities.AgentWorkflow
	for _, wf := range r.workflows {
		if wf.ProjectID != projectID {
			continue
		}
		if latest.WorkflowID == "" || wf.StartedAt.After(latest.StartedAt) {
			latest = wf
		}
	}
	return latest, nil
}

type MemoryApprovalRepository struct {
	mu       sync.RWMutex
	requests map[string]entities.ApprovalRequest
}

var _ interfaces.IApprovalRepository = (*MemoryApprovalRepository)(nil)

func NewMemoryApprovalRepository() *MemoryApprovalRepository {
	return &MemoryApprovalRepository{requests: make(map[string]entities.ApprovalRequest)}
}

func (r *MemoryApprovalRepository) Create(_ context.Context, a entities.ApprovalRequest) (entities.ApprovalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[a.RequestID] = a
	return a, nil
}

func (r *MemoryApprovalRepository) GetByID(_ context.Context, id string) (entities.ApprovalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.requests[id], nil
}

func (r *MemoryApprovalRepository) Update(_ context.Context, a entities.ApprovalRequest) (entities.ApprovalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[a.RequestID] = a
	return a, nil
}

func (r *MemoryApprovalRepository) ListByProjectID(_ context.Context, projectID string) ([]entities.ApprovalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entities.ApprovalRequest
	for _, a := range r.requests {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *MemoryApprovalRepository) ListByAssignee(_ context.Context, assignee string) ([]entities.ApprovalRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entities.ApprovalRequest
	for _, a := range r.requests {
		if a.Assignee == assignee {
			out = append(out, a)
		}
	}
	return out, nil
}
