package repositories

import (
	"context"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// ClientReader defines read operations for client data.
type ClientReader interface {
	FindClientByID(ctx context.Context, workspaceID, clientID string) (*domain.Client, error)
	ListClientsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Client, error)
}

// ClientWriter defines write operations for client data.
type ClientWriter interface {
	SaveClient(ctx context.Context, client domain.Client) error
	UpdateClient(ctx context.Context, client domain.Client) error
	DeleteClient(ctx context.Context, workspaceID, clientID string) error
}

// ClientRepositoryFacade combines all client repository interfaces.
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
