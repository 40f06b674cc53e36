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

// templateService implements the TemplateSvcFacade interface.
type templateService struct {
	BaseService
	templateRepo portsrepo.InvoiceTemplateRepository
	cache        *cache.Service
}

// NewTemplateService creates a new template service with the provided dependencies.
func NewTemplateService(templateRepo portsrepo.InvoiceTemplateRepository, cacheSvc *cache.Service, authorizer portssvc.WorkspaceAuthorizerSvc) portssvc.TemplateSvcFacade {
	return &templateService{
		BaseService:  BaseService{WorkspaceAuthorizer: authorizer},
		templateRepo: templateRepo,
		cache:        cacheSvc,
	}
}

var _ portssvc.TemplateSvcFacade = (*templateService)(nil)

// CreateTemplate creates a new invoice template.
func (s *templateService) CreateTemplate(ctx context.Context, userID, workspaceID string, req dto.CreateTemplateRequest) (*domain.InvoiceTemplate, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	now := time.Now()
	template := domain.InvoiceTemplate{
		TemplateID:   uuid.NewString(),
		WorkspaceID:  workspaceID,
		Name:         req.Name,
		HeaderText:   req.HeaderText,
		FooterText:   req.FooterText,
		AccentColor:  req.AccentColor,
		PaymentTerms: req.PaymentTerms,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.templateRepo.SaveTemplate(ctx, template); err != nil {
		s.LogError(ctx, err, "Failed to save invoice template",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	s.cache.Invalidate(cache.ResourceTemplates, workspaceID)

	s.LogInfo(ctx, "Invoice template created",
		slog.String("template_id", template.TemplateID),
		slog.String("workspace_id", workspaceID))
	return &template, nil
}

// GetTemplate retrieves a single template by ID.
func (s *templateService) GetTemplate(ctx context.Context, userID, workspaceID, templateID string) (*domain.InvoiceTemplate, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	template, err := s.templateRepo.FindTemplateByID(ctx, workspaceID, templateID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find invoice template",
				slog.String("template_id", templateID))
		}
		return nil, err
	}
	return template, nil
}

// ListTemplates lists the workspace's invoice templates through the cache.
func (s *templateService) ListTemplates(ctx context.Context, userID, workspaceID string) ([]domain.InvoiceTemplate, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	data, err := s.cache.GetOrFetch(ctx, cache.ResourceTemplates, workspaceID, false, func(ctx context.Context) (any, error) {
		return s.templateRepo.ListTemplatesByWorkspace(ctx, workspaceID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoice templates",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	templates, _ := data.([]domain.InvoiceTemplate)
	if templates == nil {
		return []domain.InvoiceTemplate{}, nil
	}
	return templates, nil
}

// UpdateTemplate applies the non-nil request fields to the template.
func (s *templateService) UpdateTemplate(ctx context.Context, userID, workspaceID, templateID string, req dto.UpdateTemplateRequest) (*domain.InvoiceTemplate, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	template, err := s.templateRepo.FindTemplateByID(ctx, workspaceID, templateID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		template.Name = *req.Name
	}
	if req.HeaderText != nil {
		template.HeaderText = *req.HeaderText
	}
	if req.FooterText != nil {
		template.FooterText = *req.FooterText
	}
	if req.AccentColor != nil {
		template.AccentColor = *req.AccentColor
	}
	if req.PaymentTerms != nil {
		template.PaymentTerms = *req.PaymentTerms
	}
	template.LastUpdatedAt = time.Now()
	template.LastUpdatedBy = userID

	if err := s.templateRepo.UpdateTemplate(ctx, *template); err != nil {
		s.LogError(ctx, err, "Failed to update invoice template",
			slog.String("template_id", templateID))
		return nil, err
	}
	s.cache.Invalidate(cache.ResourceTemplates, workspaceID)
	return template, nil
}

// DeleteTemplate removes a template from the workspace.
func (s *templateService) DeleteTemplate(ctx context.Context, userID, workspaceID, templateID string) error {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.templateRepo.DeleteTemplate(ctx, workspaceID, templateID); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice template",
			slog.String("template_id", templateID))
		return err
	}
	s.cache.Invalidate(cache.ResourceTemplates, workspaceID)
	s.LogInfo(ctx, "Invoice template deleted",
		slog.String("template_id", templateID),
		slog.String("workspace_id", workspaceID))
	return nil
}
