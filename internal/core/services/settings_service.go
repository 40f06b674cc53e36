package services

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/billing"
	"github.com/timekeep-hq/timekeep_app/internal/cache"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
)

// settingsService implements the SettingsSvcFacade interface.
type settingsService struct {
	BaseService
	settingsRepo  portsrepo.WorkspaceSettingsRepository
	workspaceRepo portsrepo.WorkspaceReader
	cache         *cache.Service
}

// NewSettingsService creates a new settings service with the provided dependencies.
func NewSettingsService(settingsRepo portsrepo.WorkspaceSettingsRepository, workspaceRepo portsrepo.WorkspaceReader, cacheSvc *cache.Service, authorizer portssvc.WorkspaceAuthorizerSvc) portssvc.SettingsSvcFacade {
	return &settingsService{
		BaseService:   BaseService{WorkspaceAuthorizer: authorizer},
		settingsRepo:  settingsRepo,
		workspaceRepo: workspaceRepo,
		cache:         cacheSvc,
	}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetSettings returns the workspace settings map, cached per workspace.
func (s *settingsService) GetSettings(ctx context.Context, userID, workspaceID string) (domain.WorkspaceSettings, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.cachedSettings(ctx, workspaceID, false)
}

// UpdateSettings upserts the given keys and returns the fresh, full map.
func (s *settingsService) UpdateSettings(ctx context.Context, userID, workspaceID string, settings domain.WorkspaceSettings) (domain.WorkspaceSettings, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		return nil, apperrors.NewValidationFailedError("no settings provided")
	}

	if err := s.settingsRepo.UpsertSettings(ctx, workspaceID, settings, userID); err != nil {
		s.LogError(ctx, err, "Failed to upsert workspace settings",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	s.cache.Invalidate(cache.ResourceSettings, workspaceID)

	updated, err := s.cachedSettings(ctx, workspaceID, true)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Workspace settings updated",
		slog.String("workspace_id", workspaceID),
		slog.Int("keys", len(settings)))
	return updated, nil
}

// TaxRate parses the configured tax rate percentage. Missing or malformed
// values mean no tax rather than an error.
func (s *settingsService) TaxRate(ctx context.Context, workspaceID string) (decimal.Decimal, error) {
	settings, err := s.cachedSettings(ctx, workspaceID, false)
	if err != nil {
		return decimal.Zero, err
	}
	raw, ok := settings[domain.SettingTaxRate]
	if !ok || raw == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.IsNegative() {
		s.LogDebug(ctx, "Ignoring unparseable tax rate setting",
			slog.String("workspace_id", workspaceID),
			slog.String("value", raw))
		return decimal.Zero, nil
	}
	return rate, nil
}

// InvoicePrefix resolves the invoice number prefix, falling back to a slug
// of the workspace name when the setting is absent.
func (s *settingsService) InvoicePrefix(ctx context.Context, workspaceID string) (string, error) {
	settings, err := s.cachedSettings(ctx, workspaceID, false)
	if err != nil {
		return "", err
	}
	if prefix, ok := settings[domain.SettingInvoicePrefix]; ok && prefix != "" {
		return prefix, nil
	}

	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return "", err
	}
	return billing.Slug(workspace.Name), nil
}

func (s *settingsService) cachedSettings(ctx context.Context, workspaceID string, forceRefresh bool) (domain.WorkspaceSettings, error) {
	data, err := s.cache.GetOrFetch(ctx, cache.ResourceSettings, workspaceID, forceRefresh, func(ctx context.Context) (any, error) {
		return s.settingsRepo.GetSettings(ctx, workspaceID)
	})
	if err != nil {
		return nil, err
	}
	settings, ok := data.(domain.WorkspaceSettings)
	if !ok {
		return domain.WorkspaceSettings{}, nil
	}
	return settings, nil
}
