package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
)

type PgxClientRepository struct {
	BaseRepository
}

// newPgxClientRepository creates a new repository for client data.
func newPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

var FULL_CLIENT_SELECT_QUERY = `
SELECT
	c.client_id, c.workspace_id, c.name, c.contact_name, c.contact_email,
	c.contact_phone, c.address, c.status,
	c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
FROM clients c
`

func (r *PgxClientRepository) getClients(ctx context.Context, filterQuery string, args ...any) ([]domain.Client, error) {
	query := FULL_CLIENT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query clients", err)
	}
	defer rows.Close()
	clients, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Client])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Client{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect client rows", err)
	}
	return clients, nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, workspaceID, clientID string) (*domain.Client, error) {
	clients, err := r.getClients(ctx, `WHERE c.workspace_id = $1 AND c.client_id = $2`, workspaceID, clientID)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &clients[0], nil
}

func (r *PgxClientRepository) ListClientsByWorkspace(ctx context.Context, workspaceID string) ([]domain.Client, error) {
	return r.getClients(ctx, `WHERE c.workspace_id = $1 ORDER BY c.name;`, workspaceID)
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
		INSERT INTO clients (
			client_id, workspace_id, name, contact_name, contact_email,
			contact_phone, address, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.WorkspaceID,
		client.Name,
		client.ContactName,
		client.ContactEmail,
		client.ContactPhone,
		client.Address,
		client.Status,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("client ID " + client.ClientID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("workspace does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to save client "+client.ClientID, err)
	}
	return nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	query := `
		UPDATE clients
		SET name = $3, contact_name = $4, contact_email = $5, contact_phone = $6,
			address = $7, status = $8, last_updated_at = $9, last_updated_by = $10
		WHERE workspace_id = $1 AND client_id = $2;
	`
	result, err := r.Pool.Exec(ctx, query,
		client.WorkspaceID,
		client.ClientID,
		client.Name,
		client.ContactName,
		client.ContactEmail,
		client.ContactPhone,
		client.Address,
		client.Status,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update client "+client.ClientID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("client not found")
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, workspaceID, clientID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM clients WHERE workspace_id = $1 AND client_id = $2;`, workspaceID, clientID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewValidationFailedError("client has projects and cannot be deleted")
		}
		return apperrors.NewAppError(500, "failed to delete client "+clientID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("client not found")
	}
	return nil
}
