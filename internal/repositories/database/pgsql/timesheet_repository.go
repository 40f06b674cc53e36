package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
)

type PgxTimesheetRepository struct {
	BaseRepository
}

// newPgxTimesheetRepository creates a new repository for timesheet entries.
func newPgxTimesheetRepository(pool *pgxpool.Pool) portsrepo.TimesheetRepositoryFacade {
	return &PgxTimesheetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TimesheetRepositoryFacade = (*PgxTimesheetRepository)(nil)

var FULL_TIMESHEET_SELECT_QUERY = `
SELECT
	t.entry_id, t.workspace_id, t.project_id, t.entry_date, t.hours,
	t.description, t.billable,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
FROM timesheet_entries t
`

func (r *PgxTimesheetRepository) getEntries(ctx context.Context, filterQuery string, args ...any) ([]domain.TimesheetEntry, error) {
	query := FULL_TIMESHEET_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query timesheet entries", err)
	}
	defer rows.Close()
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.TimesheetEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.TimesheetEntry{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect timesheet rows", err)
	}
	return entries, nil
}

func (r *PgxTimesheetRepository) FindEntryByID(ctx context.Context, workspaceID, entryID string) (*domain.TimesheetEntry, error) {
	entries, err := r.getEntries(ctx, `WHERE t.workspace_id = $1 AND t.entry_id = $2`, workspaceID, entryID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &entries[0], nil
}

func (r *PgxTimesheetRepository) ListEntriesByWorkspace(ctx context.Context, workspaceID string) ([]domain.TimesheetEntry, error) {
	return r.getEntries(ctx, `WHERE t.workspace_id = $1 ORDER BY t.entry_date DESC, t.created_at DESC;`, workspaceID)
}

func (r *PgxTimesheetRepository) ListEntriesByMonth(ctx context.Context, workspaceID string, month time.Time) ([]domain.TimesheetEntry, error) {
	start := domain.MonthStart(month)
	end := start.AddDate(0, 1, 0)
	return r.getEntries(ctx,
		`WHERE t.workspace_id = $1 AND t.entry_date >= $2 AND t.entry_date < $3 ORDER BY t.entry_date;`,
		workspaceID, start, end)
}

func (r *PgxTimesheetRepository) SaveEntry(ctx context.Context, entry domain.TimesheetEntry) error {
	query := `
		INSERT INTO timesheet_entries (
			entry_id, workspace_id, project_id, entry_date, hours,
			description, billable,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.WorkspaceID,
		entry.ProjectID,
		entry.Date,
		entry.Hours,
		entry.Description,
		entry.Billable,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewConflictError("entry ID " + entry.EntryID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("project does not exist in this workspace")
			}
			if pgErr.Code == "23514" { // check_violation (positive hours)
				return apperrors.NewValidationFailedError("hours must be positive")
			}
		}
		return apperrors.NewAppError(500, "failed to save timesheet entry "+entry.EntryID, err)
	}
	return nil
}

func (r *PgxTimesheetRepository) UpdateEntry(ctx context.Context, entry domain.TimesheetEntry) error {
	query := `
		UPDATE timesheet_entries
		SET project_id = $3, entry_date = $4, hours = $5, description = $6,
			billable = $7, last_updated_at = $8, last_updated_by = $9
		WHERE workspace_id = $1 AND entry_id = $2;
	`
	result, err := r.Pool.Exec(ctx, query,
		entry.WorkspaceID,
		entry.EntryID,
		entry.ProjectID,
		entry.Date,
		entry.Hours,
		entry.Description,
		entry.Billable,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23514" { // check_violation
			return apperrors.NewValidationFailedError("hours must be positive")
		}
		return apperrors.NewAppError(500, "failed to update timesheet entry "+entry.EntryID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("timesheet entry not found")
	}
	return nil
}

func (r *PgxTimesheetRepository) DeleteEntry(ctx context.Context, workspaceID, entryID string) error {
	result, err := r.Pool.Exec(ctx, `DELETE FROM timesheet_entries WHERE workspace_id = $1 AND entry_id = $2;`, workspaceID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete timesheet entry "+entryID, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("timesheet entry not found")
	}
	return nil
}
