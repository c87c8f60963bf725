package entities

import "time"

// ProjectStatus is the canonical project lifecycle.
//
// Domain notes:
//   - One unified status set; the legal transitions live in the project
//     use case, not here.
//   - revision_needed/finalizing/completed is the human-review branch
//     reachable once a proposal review cycle occurs.

type ProjectStatus string

const (
	ProjectStatusDraft                ProjectStatus = "draft"
	ProjectStatusEstimationInProgress ProjectStatus = "estimation_in_progress"
	ProjectStatusAnalyzed             ProjectStatus = "analyzed"
	ProjectStatusProposalSent         ProjectStatus = "proposal_sent"
	ProjectStatusNegotiation          ProjectStatus = "negotiation"
	ProjectStatusWon                  ProjectStatus = "won"
	ProjectStatusLost                 ProjectStatus = "lost"
	ProjectStatusRevisionNeeded       ProjectStatus = "revision_needed"
	ProjectStatusFinalizing           ProjectStatus = "finalizing"
	ProjectStatusCompleted            ProjectStatus = "completed"
)

// HistoryEntry is one immutable record in the project's append-only status
// ledger. A status change without a matching entry is an invariant
// violation; the repository commits both in one conditional write.
type HistoryEntry struct {
	Status    ProjectStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Reason    string        `json:"reason"`
}

// Message is one entry in the project's communication log.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    string    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Project is the root entity the rest of the system reports into.
//
// Storage model (DynamoDB):
//   - PK: id
//   - version: optimistic-lock counter; every write conditions on the
//     version it read and increments it.
//
// Ownership:
//   - History and Messages are owned exclusively by the project; they are
//     appended through the project use case only.
//   - Estimate and Proposal are read-only result snapshots handed over by
//     the workflow orchestrator.
type Project struct {
	ID           string            `json:"id"`
	ProjectName  string            `json:"project_name"`
	ClientName   string            `json:"client_name"`
	ClientEmail  string            `json:"client_email,omitempty"`
	ClientPhone  string            `json:"client_phone,omitempty"`
	BuildingType string            `json:"building_type,omitempty"`
	BuildingSize string            `json:"building_size,omitempty"`
	Location     ProjectLocation   `json:"location"`
	Status       ProjectStatus     `json:"status"`
	Estimate     *ProjectEstimate  `json:"estimate,omitempty"`
	Proposal     *Proposal         `json:"proposal,omitempty"`
	History      []HistoryEntry    `json:"history"`
	Messages     []Message         `json:"messages"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	Version      int64             `json:"version"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
