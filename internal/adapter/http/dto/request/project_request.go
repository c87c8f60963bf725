package request

import "firesec_estimator/internal/domain/entities"

type LocationPayload struct {
	Country       string `json:"country"`
	StateProvince string `json:"state_province"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	SeismicZone   string `json:"seismic_zone"`
	ClimateZone   string `json:"climate_zone"`
}

func (l LocationPayload) ToEntity() entities.ProjectLocation {
	return entities.ProjectLocation{
		Country:       l.Country,
		StateProvince: l.StateProvince,
		City:          l.City,
		PostalCode:    l.PostalCode,
		SeismicZone:   l.SeismicZone,
		ClimateZone:   l.ClimateZone,
	}
}

type CreateProjectRequest struct {
	ProjectName  string            `json:"project_name" binding:"required"`
	ClientName   string            `json:"client_name" binding:"required"`
	ClientEmail  string            `json:"client_email"`
	ClientPhone  string            `json:"client_phone"`
	BuildingType string            `json:"building_type"`
	BuildingSize string            `json:"building_size"`
	Location     LocationPayload   `json:"location"`
	Metadata     map[string]string `json:"metadata"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type MessageRequest struct {
	Sender  string `json:"sender" binding:"required"`
	Content string `json:"content" binding:"required"`
}
