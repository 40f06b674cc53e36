package dto

import (
	"time"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// --- Workspace DTOs ---

// CreateWorkspaceRequest defines data for creating a new workspace.
type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// WorkspaceResponse defines data returned for a workspace.
type WorkspaceResponse struct {
	WorkspaceID   string    `json:"workspaceID"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToWorkspaceResponse converts domain.Workspace to DTO.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID:   w.WorkspaceID,
		Name:          w.Name,
		Description:   w.Description,
		CreatedAt:     w.CreatedAt,
		CreatedBy:     w.CreatedBy,
		LastUpdatedAt: w.LastUpdatedAt,
		LastUpdatedBy: w.LastUpdatedBy,
	}
}

// ListWorkspacesResponse wraps a list of workspaces.
type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}

// ToListWorkspacesResponse converts a slice of domain.Workspace to DTO.
func ToListWorkspacesResponse(ws []domain.Workspace) ListWorkspacesResponse {
	list := make([]WorkspaceResponse, len(ws))
	for i, w := range ws {
		list[i] = ToWorkspaceResponse(&w)
	}
	return ListWorkspacesResponse{Workspaces: list}
}

// --- Membership DTOs ---

// AddUserToWorkspaceRequest defines data for adding a user to a workspace.
type AddUserToWorkspaceRequest struct {
	UserID string                   `json:"userID" binding:"required"`
	Role   domain.UserWorkspaceRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// UserWorkspaceResponse defines data returned about a user's membership.
type UserWorkspaceResponse struct {
	UserID      string                   `json:"userID"`
	UserName    string                   `json:"userName"`
	WorkspaceID string                   `json:"workspaceID"`
	Role        domain.UserWorkspaceRole `json:"role"`
	JoinedAt    time.Time                `json:"joinedAt"`
}

// ToUserWorkspaceResponse converts domain.UserWorkspace to DTO.
func ToUserWorkspaceResponse(uw *domain.UserWorkspace) UserWorkspaceResponse {
	return UserWorkspaceResponse{
		UserID:      uw.UserID,
		UserName:    uw.UserName,
		WorkspaceID: uw.WorkspaceID,
		Role:        uw.Role,
		JoinedAt:    uw.JoinedAt,
	}
}

// --- Settings DTOs ---

// UpdateSettingsRequest is the flattened key-value settings payload.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}
