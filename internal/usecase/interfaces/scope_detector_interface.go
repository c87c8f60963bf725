package interfaces

import (
	"context"

	"firesec_estimator/internal/domain/entities"
)

// IScopeDetector identifies which subsystems a body of project text
// requires. Two implementations exist: a keyword matcher (default) and an
// LLM-backed detector selected by configuration.
type IScopeDetector interface {
	DetectSystems(ctx context.Context, text string) ([]entities.SystemType, error)
}
