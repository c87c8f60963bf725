package interfaces

import (
	"context"
	"errors"

	"firesec_estimator/internal/domain/entities"
)

// ErrVersionConflict reports a concurrent mutation of the same entity: the
// version the caller read is no longer current. Callers surface this as a
// state-transition conflict, never overwrite.
var ErrVersionConflict = errors.New("version conflict")

//go:generate mockgen -source=project_repository_interface.go -destination=mocks/project_repository_mock.go -package=mock_interfaces

// IProjectRepository abstracts durable Project persistence.
//
// Contract:
//   - GetByID returns the zero Project (ID == "") when not found.
//   - Update conditions on expectedVersion and commits status, history,
//     messages and result snapshots in one write; it returns
//     ErrVersionConflict when the stored version differs, so a status
//     change can never land without its history entry.
type IProjectRepository interface {
	Create(ctx context.Context, p entities.Project) (entities.Project, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
	List(ctx context.Context) ([]entities.Project, error)
	Update(ctx context.Context, p entities.Project, expectedVersion int64) (entities.Project, error)
}
