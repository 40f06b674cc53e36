package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/cache"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
)

// workspaceService implements the WorkspaceSvcFacade interface.
type workspaceService struct {
	BaseService
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
	clientRepo    portsrepo.ClientReader
	projectRepo   portsrepo.ProjectReader
	settingsRepo  portsrepo.WorkspaceSettingsRepository
	cache         *cache.Service
}

// NewWorkspaceService creates a new workspace service with the provided dependencies.
func NewWorkspaceService(workspaceRepo portsrepo.WorkspaceRepositoryFacade, clientRepo portsrepo.ClientReader, projectRepo portsrepo.ProjectReader, settingsRepo portsrepo.WorkspaceSettingsRepository, cacheSvc *cache.Service) portssvc.WorkspaceSvcFacade {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		clientRepo:    clientRepo,
		projectRepo:   projectRepo,
		settingsRepo:  settingsRepo,
		cache:         cacheSvc,
	}
}

var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

// FindWorkspaceByID retrieves a workspace by its ID. Fetching a workspace is
// how a client switches into it, so the workspace's collection caches are
// warmed in the background for the list reads that follow.
func (s *workspaceService) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find workspace by ID",
				slog.String("workspace_id", workspaceID))
		}
		return nil, err
	}

	s.warmCaches(ctx, workspaceID)
	return workspace, nil
}

// warmCaches concurrently pre-populates the clients, projects and settings
// caches for a workspace. It must not block or fail the triggering request,
// so the work runs detached from the request context.
func (s *workspaceService) warmCaches(ctx context.Context, workspaceID string) {
	fetchers := map[cache.Resource]cache.FetchFunc{
		cache.ResourceClients: func(ctx context.Context) (any, error) {
			return s.clientRepo.ListClientsByWorkspace(ctx, workspaceID)
		},
		cache.ResourceProjects: func(ctx context.Context) (any, error) {
			return s.projectRepo.ListProjectsByWorkspace(ctx, workspaceID)
		},
		cache.ResourceSettings: func(ctx context.Context) (any, error) {
			return s.settingsRepo.GetSettings(ctx, workspaceID)
		},
	}

	detached := context.WithoutCancel(ctx)
	go func() {
		if err := s.cache.WarmWorkspace(detached, workspaceID, fetchers); err != nil {
			s.LogDebug(detached, "Workspace cache warm-up incomplete",
				slog.String("workspace_id", workspaceID),
				slog.String("error", err.Error()))
		}
	}()
}

// ListUserWorkspaces retrieves all workspaces a user belongs to.
func (s *workspaceService) ListUserWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListWorkspacesByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspaces for user",
			slog.String("user_id", userID))
		return nil, err
	}
	if workspaces == nil {
		return []domain.Workspace{}, nil
	}
	return workspaces, nil
}

// CreateWorkspace creates a new workspace and adds the creator as admin.
func (s *workspaceService) CreateWorkspace(ctx context.Context, name, description, creatorUserID string) (*domain.Workspace, error) {
	now := time.Now()
	workspace := domain.Workspace{
		WorkspaceID: uuid.NewString(),
		Name:        name,
		Description: description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.workspaceRepo.SaveWorkspace(ctx, workspace); err != nil {
		s.LogError(ctx, err, "Failed to save workspace",
			slog.String("workspace_id", workspace.WorkspaceID))
		return nil, err
	}

	membershipErr := s.AddUserToWorkspace(ctx, creatorUserID, creatorUserID, workspace.WorkspaceID, domain.RoleAdmin)
	if membershipErr != nil {
		// The workspace itself was created; surface the membership failure
		// in logs but keep the creation successful.
		s.LogError(ctx, membershipErr, "Failed to add creator as admin to new workspace",
			slog.String("workspace_id", workspace.WorkspaceID),
			slog.String("user_id", creatorUserID))
	}

	// Seed the settings cache so the first settings read after creation
	// (prefix, tax rate) skips the round trip.
	s.cache.Preload(context.WithoutCancel(ctx), cache.ResourceSettings, workspace.WorkspaceID, func(ctx context.Context) (any, error) {
		return s.settingsRepo.GetSettings(ctx, workspace.WorkspaceID)
	})

	s.LogInfo(ctx, "Workspace created successfully",
		slog.String("workspace_id", workspace.WorkspaceID),
		slog.String("creator_id", creatorUserID))
	return &workspace, nil
}

// AddUserToWorkspace adds a user to a workspace with a specific role.
func (s *workspaceService) AddUserToWorkspace(ctx context.Context, addingUserID, targetUserID, workspaceID string, role domain.UserWorkspaceRole) error {
	// Self-assignment is permitted (the creator adding themselves as admin).
	if addingUserID != targetUserID {
		if err := s.AuthorizeUserAction(ctx, addingUserID, workspaceID, domain.RoleAdmin); err != nil {
			s.LogError(ctx, err, "User not authorized to add members to workspace",
				slog.String("adding_user_id", addingUserID),
				slog.String("workspace_id", workspaceID))
			return err
		}
	}

	membership := domain.UserWorkspace{
		UserID:      targetUserID,
		WorkspaceID: workspaceID,
		Role:        role,
		JoinedAt:    time.Now(),
	}
	if err := s.workspaceRepo.AddUserToWorkspace(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to workspace",
			slog.String("target_user_id", targetUserID),
			slog.String("workspace_id", workspaceID))
		return err
	}

	s.LogInfo(ctx, "User added to workspace successfully",
		slog.String("target_user_id", targetUserID),
		slog.String("workspace_id", workspaceID),
		slog.String("role", string(role)))
	return nil
}

// ListWorkspaceUsers lists the memberships of a workspace.
func (s *workspaceService) ListWorkspaceUsers(ctx context.Context, requestingUserID, workspaceID string) ([]domain.UserWorkspace, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	members, err := s.workspaceRepo.ListUsersByWorkspaceID(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspace users",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	if members == nil {
		return []domain.UserWorkspace{}, nil
	}
	return members, nil
}

// RemoveUserFromWorkspace marks a membership as removed (admin only).
func (s *workspaceService) RemoveUserFromWorkspace(ctx context.Context, removingUserID, targetUserID, workspaceID string) error {
	if err := s.AuthorizeUserAction(ctx, removingUserID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.workspaceRepo.RemoveUserFromWorkspace(ctx, targetUserID, workspaceID); err != nil {
		s.LogError(ctx, err, "Failed to remove user from workspace",
			slog.String("target_user_id", targetUserID),
			slog.String("workspace_id", workspaceID))
		return err
	}
	s.LogInfo(ctx, "User removed from workspace",
		slog.String("target_user_id", targetUserID),
		slog.String("workspace_id", workspaceID))
	return nil
}

// AuthorizeUserAction checks if a user has required permissions for a workspace.
func (s *workspaceService) AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.UserWorkspaceRole) error {
	membership, err := s.workspaceRepo.FindUserWorkspaceRole(ctx, userID, workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of workspace",
				slog.String("user_id", userID),
				slog.String("workspace_id", workspaceID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user workspace role",
			slog.String("user_id", userID),
			slog.String("workspace_id", workspaceID))
		return err
	}

	if !hasRequiredRole(membership.Role, requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("workspace_id", workspaceID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}
	return nil
}

// hasRequiredRole checks if the user's role meets or exceeds the required role.
func hasRequiredRole(userRole, requiredRole domain.UserWorkspaceRole) bool {
	switch requiredRole {
	case domain.RoleReadOnly:
		return userRole == domain.RoleReadOnly || userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleMember:
		return userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleAdmin:
		return userRole == domain.RoleAdmin
	default:
		return false
	}
}
