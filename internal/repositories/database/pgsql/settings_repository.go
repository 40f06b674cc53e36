package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
)

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for workspace settings.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.WorkspaceSettingsRepository {
	return &PgxSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.WorkspaceSettingsRepository = (*PgxSettingsRepository)(nil)

func (r *PgxSettingsRepository) GetSettings(ctx context.Context, workspaceID string) (domain.WorkspaceSettings, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT setting_key, setting_value FROM workspace_settings WHERE workspace_id = $1;`,
		workspaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspace settings", err)
	}
	defer rows.Close()

	settings := domain.WorkspaceSettings{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan workspace setting", err)
		}
		settings[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating workspace settings", err)
	}
	return settings, nil
}

func (r *PgxSettingsRepository) UpsertSettings(ctx context.Context, workspaceID string, settings domain.WorkspaceSettings, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	for k, v := range settings {
		_, err := tx.Exec(ctx, `
			INSERT INTO workspace_settings (workspace_id, setting_key, setting_value, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, NOW(), $4)
			ON CONFLICT (workspace_id, setting_key)
			DO UPDATE SET setting_value = EXCLUDED.setting_value,
				last_updated_at = NOW(), last_updated_by = EXCLUDED.last_updated_by;
		`, workspaceID, k, v, updatedBy)
		if err != nil {
			return apperrors.NewAppError(500, "failed to upsert workspace setting "+k, err)
		}
	}

	return r.Commit(ctx, tx)
}
