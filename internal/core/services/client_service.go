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

// clientService implements the ClientSvcFacade interface.
type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
	cache      *cache.Service
}

// NewClientService creates a new client service with the provided dependencies.
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade, cacheSvc *cache.Service, authorizer portssvc.WorkspaceAuthorizerSvc) portssvc.ClientSvcFacade {
	return &clientService{
		BaseService: BaseService{WorkspaceAuthorizer: authorizer},
		clientRepo:  clientRepo,
		cache:       cacheSvc,
	}
}

var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// CreateClient creates a new client in the workspace.
func (s *clientService) CreateClient(ctx context.Context, userID, workspaceID string, req dto.CreateClientRequest) (*domain.Client, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.ClientActive
	}
	now := time.Now()
	client := domain.Client{
		ClientID:     uuid.NewString(),
		WorkspaceID:  workspaceID,
		Name:         req.Name,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		Status:       status,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.clientRepo.SaveClient(ctx, client); err != nil {
		s.LogError(ctx, err, "Failed to save client",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	s.cache.Invalidate(cache.ResourceClients, workspaceID)

	s.LogInfo(ctx, "Client created successfully",
		slog.String("client_id", client.ClientID),
		slog.String("workspace_id", workspaceID))
	return &client, nil
}

// GetClient retrieves a single client by ID.
func (s *clientService) GetClient(ctx context.Context, userID, workspaceID, clientID string) (*domain.Client, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindClientByID(ctx, workspaceID, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find client",
				slog.String("client_id", clientID))
		}
		return nil, err
	}
	return client, nil
}

// ListClients lists the workspace's clients through the cache.
func (s *clientService) ListClients(ctx context.Context, userID, workspaceID string, forceRefresh bool) ([]domain.Client, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	data, err := s.cache.GetOrFetch(ctx, cache.ResourceClients, workspaceID, forceRefresh, func(ctx context.Context) (any, error) {
		return s.clientRepo.ListClientsByWorkspace(ctx, workspaceID)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	clients, _ := data.([]domain.Client)
	if clients == nil {
		return []domain.Client{}, nil
	}
	return clients, nil
}

// UpdateClient applies the non-nil request fields to the client.
func (s *clientService) UpdateClient(ctx context.Context, userID, workspaceID, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	client, err := s.clientRepo.FindClientByID(ctx, workspaceID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.ContactName != nil {
		client.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		client.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		client.ContactPhone = *req.ContactPhone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Status != nil {
		client.Status = *req.Status
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = userID

	if err := s.clientRepo.UpdateClient(ctx, *client); err != nil {
		s.LogError(ctx, err, "Failed to update client",
			slog.String("client_id", clientID))
		return nil, err
	}
	s.cache.Invalidate(cache.ResourceClients, workspaceID)
	return client, nil
}

// DeleteClient removes a client from the workspace.
func (s *clientService) DeleteClient(ctx context.Context, userID, workspaceID, clientID string) error {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.clientRepo.DeleteClient(ctx, workspaceID, clientID); err != nil {
		s.LogError(ctx, err, "Failed to delete client",
			slog.String("client_id", clientID))
		return err
	}
	s.cache.Invalidate(cache.ResourceClients, workspaceID)
	s.LogInfo(ctx, "Client deleted",
		slog.String("client_id", clientID),
		slog.String("workspace_id", workspaceID))
	return nil
}
