package response

import (
	"time"

	"firesec_estimator/internal/domain/entities"
)

type ProjectResponse struct {
	ID           string                    `json:"id"`
	ProjectName  string                    `json:"project_name"`
	ClientName   string                    `json:"client_name"`
	ClientEmail  string                    `json:"client_email,omitempty"`
	BuildingType string                    `json:"building_type,omitempty"`
	Location     entities.ProjectLocation  `json:"location"`
	Status       string                    `json:"status"`
	History      []entities.HistoryEntry   `json:"history"`
	Messages     []entities.Message        `json:"messages"`
	Estimate     *entities.ProjectEstimate `json:"estimate,omitempty"`
	Proposal     *entities.Proposal        `json:"proposal,omitempty"`
	Version      int64                     `json:"version"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
}

func FromProject(p entities.Project) ProjectResponse {
	return ProjectResponse{
		ID:           p.ID,
		ProjectName:  p.ProjectName,
		ClientName:   p.ClientName,
		ClientEmail:  p.ClientEmail,
		BuildingType: p.BuildingType,
		Location:     p.Location,
		Status:       string(p.Status),
		History:      p.History,
		Messages:     p.Messages,
		Estimate:     p.Estimate,
		Proposal:     p.Proposal,
		Version:      p.Version,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func FromProjects(projects []entities.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, FromProject(p))
	}
	return out
}
