package repositories

import (
	"context"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// ProjectReader defines read operations for project data.
type ProjectReader interface {
	FindProjectByID(ctx context.Context, workspaceID, projectID string) (*domain.Project, error)
	ListProjectsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Project, error)
	ListProjectsByClient(ctx context.Context, workspaceID, clientID string) ([]domain.Project, error)
}

// ProjectWriter defines write operations for project data.
type ProjectWriter interface {
	SaveProject(ctx context.Context, project domain.Project) error
	UpdateProject(ctx context.Context, project domain.Project) error
	DeleteProject(ctx context.Context, workspaceID, projectID string) error
}

// ProjectRepositoryFacade combines all project repository interfaces.
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}
