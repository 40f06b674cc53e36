package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/cache"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
)

// projectService implements the ProjectSvcFacade interface.
type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryFacade
	clientRepo  portsrepo.ClientReader
	cache       *cache.Service
}

// NewProjectService creates a new project service with the provided dependencies.
func NewProjectService(projectRepo portsrepo.ProjectRepositoryFacade, clientRepo portsrepo.ClientReader, cacheSvc *cache.Service, authorizer portssvc.WorkspaceAuthorizerSvc) portssvc.ProjectSvcFacade {
	return &projectService{
		BaseService: BaseService{WorkspaceAuthorizer: authorizer},
		projectRepo: projectRepo,
		clientRepo:  clientRepo,
		cache:       cacheSvc,
	}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

// CreateProject creates a new project under an existing client.
func (s *projectService) CreateProject(ctx context.Context, userID, workspaceID string, req dto.CreateProjectRequest) (*domain.Project, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	if _, err := s.clientRepo.FindClientByID(ctx, workspaceID, req.ClientID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("client not found in workspace")
		}
		return nil, err
	}
	if err := validateBilling(req.BillingType, req.HourlyRate, req.FixedAmount); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.ProjectActive
	}
	now := time.Now()
	project := domain.Project{
		ProjectID:   uuid.NewString(),
		WorkspaceID: workspaceID,
		ClientID:    req.ClientID,
		Name:        req.Name,
		Code:        req.Code,
		BillingType: req.BillingType,
		HourlyRate:  req.HourlyRate,
		FixedAmount: req.FixedAmount,
		Status:      status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	s.cache.Invalidate(cache.ResourceProjects, workspaceID)

	s.LogInfo(ctx, "Project created successfully",
		slog.String("project_id", project.ProjectID),
		slog.String("workspace_id", workspaceID),
		slog.String("billing_type", string(project.BillingType)))
	return &project, nil
}

// GetProject retrieves a single project by ID.
func (s *projectService) GetProject(ctx context.Context, userID, workspaceID, projectID string) (*domain.Project, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindProjectByID(ctx, workspaceID, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find project",
				slog.String("project_id", projectID))
		}
		return nil, err
	}
	return project, nil
}

// ListProjects lists the workspace's projects through the cache.
func (s *projectService) ListProjects(ctx context.Context, userID, workspaceID string, forceRefresh bool) ([]domain.Project, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	data, err := s.cache.GetOrFetch(ctx, cache.ResourceProjects, workspaceID, forceRefresh, func(ctx context.Context) (any, error) {
		return s.projectRepo.ListProjectsByWorkspace(ctx, workspaceID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	projects, _ := data.([]domain.Project)
	if projects == nil {
		return []domain.Project{}, nil
	}
	return projects, nil
}

// UpdateProject applies the non-nil request fields to the project.
func (s *projectService) UpdateProject(ctx context.Context, userID, workspaceID, projectID string, req dto.UpdateProjectRequest) (*domain.Project, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.FindProjectByID(ctx, workspaceID, projectID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Code != nil {
		project.Code = *req.Code
	}
	if req.BillingType != nil {
		project.BillingType = *req.BillingType
	}
	if req.HourlyRate != nil {
		project.HourlyRate = *req.HourlyRate
	}
	if req.FixedAmount != nil {
		project.FixedAmount = *req.FixedAmount
	}
	if req.Status != nil {
		project.Status = *req.Status
	}
	if err := validateBilling(project.BillingType, project.HourlyRate, project.FixedAmount); err != nil {
		return nil, err
	}
	project.LastUpdatedAt = time.Now()
	project.LastUpdatedBy = userID

	if err := s.projectRepo.UpdateProject(ctx, *project); err != nil {
		s.LogError(ctx, err, "Failed to update project",
			slog.String("project_id", projectID))
		return nil, err
	}
	s.cache.Invalidate(cache.ResourceProjects, workspaceID)
	return project, nil
}

// DeleteProject removes a project from the workspace.
func (s *projectService) DeleteProject(ctx context.Context, userID, workspaceID, projectID string) error {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.projectRepo.DeleteProject(ctx, workspaceID, projectID); err != nil {
		s.LogError(ctx, err, "Failed to delete project",
			slog.String("project_id", projectID))
		return err
	}
	s.cache.Invalidate(cache.ResourceProjects, workspaceID)
	s.LogInfo(ctx, "Project deleted",
		slog.String("project_id", projectID),
		slog.String("workspace_id", workspaceID))
	return nil
}

// validateBilling ensures the rate matching the billing type is positive.
func validateBilling(billingType domain.BillingType, hourlyRate, fixedAmount decimal.Decimal) error {
	switch billingType {
	case domain.BillingHourly:
		if !hourlyRate.IsPositive() {
			return apperrors.NewValidationFailedError("hourly projects require a positive hourlyRate")
		}
	case domain.BillingFixed:
		if !fixedAmount.IsPositive() {
			return apperrors.NewValidationFailedError("fixed projects require a positive fixedAmount")
		}
	default:
		return apperrors.NewValidationFailedError("unknown billing type")
	}
	return nil
}
