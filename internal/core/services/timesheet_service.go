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
	"github.com/timekeep-hq/timekeep_app/internal/dto"
)

// timesheetService implements the TimesheetSvcFacade interface.
type timesheetService struct {
	BaseService
	timesheetRepo portsrepo.TimesheetRepositoryFacade
	projectRepo   portsrepo.ProjectReader
	cache         *cache.Service
}

// NewTimesheetService creates a new timesheet service with the provided dependencies.
func NewTimesheetService(timesheetRepo portsrepo.TimesheetRepositoryFacade, projectRepo portsrepo.ProjectReader, cacheSvc *cache.Service, authorizer portssvc.WorkspaceAuthorizerSvc) portssvc.TimesheetSvcFacade {
	return &timesheetService{
		BaseService:   BaseService{WorkspaceAuthorizer: authorizer},
		timesheetRepo: timesheetRepo,
		projectRepo:   projectRepo,
		cache:         cacheSvc,
	}
}

var _ portssvc.TimesheetSvcFacade = (*timesheetService)(nil)

// CreateEntry records a dated block of work against a project.
func (s *timesheetService) CreateEntry(ctx context.Context, userID, workspaceID string, req dto.CreateTimesheetEntryRequest) (*domain.TimesheetEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if !req.Hours.IsPositive() {
		return nil, apperrors.NewValidationFailedError("hours must be positive")
	}
	if _, err := s.projectRepo.FindProjectByID(ctx, workspaceID, req.ProjectID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("project not found in workspace")
		}
		return nil, err
	}

	now := time.Now()
	entry := domain.TimesheetEntry{
		EntryID:     uuid.NewString(),
		WorkspaceID: workspaceID,
		ProjectID:   req.ProjectID,
		Date:        req.Date,
		Hours:       req.Hours,
		Description: req.Description,
		Billable:    req.Billable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.timesheetRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save timesheet entry",
			slog.String("workspace_id", workspaceID),
			slog.String("project_id", req.ProjectID))
		return nil, err
	}
	s.cache.Invalidate(cache.ResourceTimesheets, workspaceID)

	s.LogInfo(ctx, "Timesheet entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("project_id", entry.ProjectID))
	return &entry, nil
}

// GetEntry retrieves a single timesheet entry by ID.
func (s *timesheetService) GetEntry(ctx context.Context, userID, workspaceID, entryID string) (*domain.TimesheetEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	entry, err := s.timesheetRepo.FindEntryByID(ctx, workspaceID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find timesheet entry",
				slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries lists the workspace's timesheet entries through the cache.
func (s *timesheetService) ListEntries(ctx context.Context, userID, workspaceID string, forceRefresh bool) ([]domain.TimesheetEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	data, err := s.cache.GetOrFetch(ctx, cache.ResourceTimesheets, workspaceID, forceRefresh, func(ctx context.Context) (any, error) {
		return s.timesheetRepo.ListEntriesByWorkspace(ctx, workspaceID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list timesheet entries",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	entries, _ := data.([]domain.TimesheetEntry)
	if entries == nil {
		return []domain.TimesheetEntry{}, nil
	}
	return entries, nil
}

// UpdateEntry applies the non-nil request fields to the entry.
func (s *timesheetService) UpdateEntry(ctx context.Context, userID, workspaceID, entryID string, req dto.UpdateTimesheetEntryRequest) (*domain.TimesheetEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	entry, err := s.timesheetRepo.FindEntryByID(ctx, workspaceID, entryID)
	if err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindProjectByID(ctx, workspaceID, *req.ProjectID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationFailedError("project not found in workspace")
			}
			return nil, err
		}
		entry.ProjectID = *req.ProjectID
	}
	if req.Date != nil {
		entry.Date = *req.Date
	}
	if req.Hours != nil {
		if !req.Hours.IsPositive() {
			return nil, apperrors.NewValidationFailedError("hours must be positive")
		}
		entry.Hours = *req.Hours
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Billable != nil {
		entry.Billable = *req.Billable
	}
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = userID

	if err := s.timesheetRepo.UpdateEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update timesheet entry",
			slog.String("entry_id", entryID))
		return nil, err
	}
	s.cache.Invalidate(cache.ResourceTimesheets, workspaceID)
	return entry, nil
}

// DeleteEntry removes a timesheet entry from the workspace.
func (s *timesheetService) DeleteEntry(ctx context.Context, userID, workspaceID, entryID string) error {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return err
	}
	if err := s.timesheetRepo.DeleteEntry(ctx, workspaceID, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete timesheet entry",
			slog.String("entry_id", entryID))
		return err
	}
	s.cache.Invalidate(cache.ResourceTimesheets, workspaceID)
	s.LogInfo(ctx, "Timesheet entry deleted",
		slog.String("entry_id", entryID),
		slog.String("workspace_id", workspaceID))
	return nil
}
