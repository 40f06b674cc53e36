package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
)

type PgxProjectRepository struct {
	BaseRepository
}

// newPgxProjectRepository creates a new repository for project data.
func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryFacade {
	return &PgxProjectRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ProjectRepositoryFacade = (*PgxProjectRepository)(nil)

var FULL_PROJECT_SELECT_QUERY = `
SELECT
	p.project_id, p.workspace_id, p.client_id, p.name, p.code, p.billing_type,
	p.hourly_rate, p.fixed_amount, p.status,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
FROM projects p
`

func (r *PgxProjectRepository) getProjects(ctx context.Context, filterQuery string, args ...any) ([]domain.Project, error) {
	query := FULL_PROJECT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query projects", err)
	}
	defer rows.Close()
	projects, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Project])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Project{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect project rows", err)
	}
	return projects, nil
}

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, workspaceID, projectID string) (*domain.Project, error) {
	projects, err := r.getProjects(ctx, `WHERE p.workspace_id = $1 AND p.project_id = $2`, workspaceID, projectID)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &projects[0], nil
}

func (r *PgxProjectRepository) ListProjectsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	return r.getProjects(ctx, `WHERE p.workspace_id = $1 ORDER BY p.name;`, workspaceID)
}

func (r *PgxProjectRepository) ListProjectsByClient(ctx context.Context, workspaceID, clientID string) ([]domain.Project, error) {
	return r.getProjects(ctx, `WHERE p.workspace_id = $1 AND p.client_id = $2 ORDER BY p.name;`, workspaceID, clientID)
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, project domain.Project) error {
	query := `
		INSERT INTO projects (
			project_id, workspace_id, client_id, name, code, billing_type,
			hourly_rate, fixed_amount, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		project.ProjectID,
		project.WorkspaceID,
		project.ClientID,
		project.Name,
		project.Code,
		project.BillingType,
		project.HourlyRate,
		project.FixedAmount,
		project.Status,
		project.CreatedAt,
		project.CreatedBy,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("project ID " + project.ProjectID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("client does not exist in this workspace")
			}
		}
		return apperrors.NewAppError(500, "failed to save project "+project.ProjectID, err)
	}
	return nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, project domain.Project) error {
	query := `
		UPDATE projects
		SET name = $3, code = $4, billing_type = $5, hourly_rate = $6,
			fixed_amount = $7, status = $8, last_updated_at = $9, last_updated_by = $10
		WHERE workspace_id = $1 AND project_id = $2;
	`
	result, err := r.Pool.Exec(ctx, query,
		project.WorkspaceID,
		project.ProjectID,
		project.Name,
		project.Code,
		project.BillingType,
		project.HourlyRate,
		project.FixedAmount,
		project.Status,
		project.LastUpdatedAt,
		project.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update project "+project.ProjectID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("project not found")
	}
	return nil
}

func (r *PgxProjectRepository) DeleteProject(ctx context.Context, workspaceID, projectID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM projects WHERE workspace_id = $1 AND project_id = $2;`, workspaceID, projectID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewValidationFailedError("project has timesheet entries or credits and cannot be deleted")
		}
		return apperrors.NewAppError(500, "failed to delete project "+projectID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("project not found")
	}
	return nil
}
