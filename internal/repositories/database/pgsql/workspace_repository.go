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

type PgxWorkspaceRepository struct {
	BaseRepository
}

// newPgxWorkspaceRepository creates a new repository for workspace data.
func newPgxWorkspaceRepository(pool *pgxpool.Pool) portsrepo.WorkspaceRepositoryFacade {
	return &PgxWorkspaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.WorkspaceRepositoryFacade = (*PgxWorkspaceRepository)(nil)

var FULL_WORKSPACE_SELECT_QUERY = `
SELECT
	w.workspace_id, w.name, w.description, w.is_active,
	w.created_at, w.created_by, w.last_updated_at, w.last_updated_by, w.version
FROM workspaces w
`

func (r *PgxWorkspaceRepository) getWorkspaces(ctx context.Context, filterQuery string, args ...any) ([]domain.Workspace, error) {
	query := FULL_WORKSPACE_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspaces", err)
	}
	defer rows.Close()
	workspaces, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Workspace])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Workspace{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect workspace rows", err)
	}
	return workspaces, nil
}

func (r *PgxWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	query := `
		INSERT INTO workspaces (
			workspace_id, name, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		workspace.WorkspaceID,
		workspace.Name,
		workspace.Description,
		workspace.IsActive,
		workspace.CreatedAt,
		workspace.CreatedBy,
		workspace.LastUpdatedAt,
		workspace.LastUpdatedBy,
		1,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("workspace ID " + workspace.WorkspaceID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save workspace "+workspace.WorkspaceID, err)
	}
	return nil
}

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	query := `WHERE w.workspace_id = $1`
	workspaces, err := r.getWorkspaces(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	if len(workspaces) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &workspaces[0], nil
}

func (r *PgxWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	query := `
		JOIN user_workspaces uw ON w.workspace_id = uw.workspace_id
		WHERE uw.user_id = $1 AND uw.role != $2 AND w.is_active = true
		ORDER BY w.name;
	`
	return r.getWorkspaces(ctx, query, userID, domain.RoleRemoved)
}

func (r *PgxWorkspaceRepository) AddUserToWorkspace(ctx context.Context, membership domain.UserWorkspace) error {
	query := `
		INSERT INTO user_workspaces (user_id, workspace_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, workspace_id) DO UPDATE SET role = EXCLUDED.role;
	` // Upsert: add user or update their role if they already exist
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.WorkspaceID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to add/update user "+membership.UserID+" in workspace "+membership.WorkspaceID, err)
	}
	return nil
}

func (r *PgxWorkspaceRepository) FindUserWorkspaceRole(ctx context.Context, userID, workspaceID string) (*domain.UserWorkspace, error) {
	query := `
		SELECT user_id, workspace_id, role, joined_at
		FROM user_workspaces
		WHERE user_id = $1 AND workspace_id = $2;
	`
	var uw domain.UserWorkspace
	err := r.Pool.QueryRow(ctx, query, userID, workspaceID).Scan(
		&uw.UserID,
		&uw.WorkspaceID,
		&uw.Role,
		&uw.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user is not a member of this workspace")
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+userID+" workspace role in "+workspaceID, err)
	}
	return &uw, nil
}

func (r *PgxWorkspaceRepository) ListUsersByWorkspaceID(ctx context.Context, workspaceID string) ([]domain.UserWorkspace, error) {
	query := `
		SELECT uw.user_id, u.name AS user_name, uw.workspace_id, uw.role, uw.joined_at
		FROM user_workspaces uw
		JOIN users u ON uw.user_id = u.user_id
		WHERE uw.workspace_id = $1 AND uw.role != $2
		ORDER BY uw.joined_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID, domain.RoleRemoved)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query users for workspace "+workspaceID, err)
	}
	defer rows.Close()

	var memberships []domain.UserWorkspace
	for rows.Next() {
		var uw domain.UserWorkspace
		if err := rows.Scan(&uw.UserID, &uw.UserName, &uw.WorkspaceID, &uw.Role, &uw.JoinedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan user workspace row", err)
		}
		memberships = append(memberships, uw)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating user workspace rows", err)
	}
	return memberships, nil
}

// RemoveUserFromWorkspace marks a user as removed by setting their role to REMOVED.
func (r *PgxWorkspaceRepository) RemoveUserFromWorkspace(ctx context.Context, userID, workspaceID string) error {
	query := `
		UPDATE user_workspaces
		SET role = $3
		WHERE user_id = $1 AND workspace_id = $2;
	`
	result, err := r.Pool.Exec(ctx, query, userID, workspaceID, domain.RoleRemoved)
	if err != nil {
		return apperrors.NewAppError(500, "failed to remove user "+userID+" from workspace "+workspaceID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership not found")
	}
	return nil
}
