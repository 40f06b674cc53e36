package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// WorkspaceAuthorizerSvc checks membership roles; split out so other
// services can authorize without depending on the full workspace facade.
type WorkspaceAuthorizerSvc interface {
	AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.UserWorkspaceRole) error
}

// WorkspaceSvcFacade defines workspace and membership operations.
type WorkspaceSvcFacade interface {
	WorkspaceAuthorizerSvc

	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)
	ListUserWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error)
	CreateWorkspace(ctx context.Context, name, description, creatorUserID string) (*domain.Workspace, error)
	AddUserToWorkspace(ctx context.Context, addingUserID, targetUserID, workspaceID string, role domain.UserWorkspaceRole) error
	ListWorkspaceUsers(ctx context.Context, requestingUserID, workspaceID string) ([]domain.UserWorkspace, error)
	RemoveUserFromWorkspace(ctx context.Context, removingUserID, targetUserID, workspaceID string) error
}

// SettingsSvcFacade defines the per-workspace key-value settings operations.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context, userID, workspaceID string) (domain.WorkspaceSettings, error)
	UpdateSettings(ctx context.Context, userID, workspaceID string, settings domain.WorkspaceSettings) (domain.WorkspaceSettings, error)

	// TaxRate parses the workspace's configured tax rate percentage,
	// defaulting to zero when unset or malformed.
	TaxRate(ctx context.Context, workspaceID string) (decimal.Decimal, error)

	// InvoicePrefix resolves the invoice number prefix for a workspace,
	// falling back to a slug of the workspace name.
	InvoicePrefix(ctx context.Context, workspaceID string) (string, error)
}
