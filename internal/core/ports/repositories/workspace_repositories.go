package repositories

import (
	"context"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data.
type WorkspaceReader interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// ListWorkspacesByUserID retrieves all workspaces a user belongs to.
	ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error)
}

// WorkspaceWriter defines write operations for workspace data.
type WorkspaceWriter interface {
	// SaveWorkspace persists a new workspace.
	SaveWorkspace(ctx context.Context, workspace domain.Workspace) error
}

// WorkspaceMembershipManager defines operations for managing workspace memberships.
type WorkspaceMembershipManager interface {
	// AddUserToWorkspace adds a user to a workspace with a specific role (upsert).
	AddUserToWorkspace(ctx context.Context, membership domain.UserWorkspace) error

	// FindUserWorkspaceRole retrieves the role of a user in a workspace.
	FindUserWorkspaceRole(ctx context.Context, userID, workspaceID string) (*domain.UserWorkspace, error)

	// ListUsersByWorkspaceID retrieves the memberships of a workspace.
	ListUsersByWorkspaceID(ctx context.Context, workspaceID string) ([]domain.UserWorkspace, error)

	// RemoveUserFromWorkspace marks a membership as removed.
	RemoveUserFromWorkspace(ctx context.Context, userID, workspaceID string) error
}

// WorkspaceSettingsRepository manages the flattened per-workspace settings map.
type WorkspaceSettingsRepository interface {
	// GetSettings returns all settings for a workspace (empty map when none).
	GetSettings(ctx context.Context, workspaceID string) (domain.WorkspaceSettings, error)

	// UpsertSettings writes the given keys, leaving absent keys untouched.
	UpsertSettings(ctx context.Context, workspaceID string, settings domain.WorkspaceSettings, updatedBy string) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces.
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
	WorkspaceMembershipManager
}
