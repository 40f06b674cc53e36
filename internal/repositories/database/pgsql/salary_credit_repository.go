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

type PgxSalaryCreditRepository struct {
	BaseRepository
}

// newPgxSalaryCreditRepository creates a new repository for salary credits.
func newPgxSalaryCreditRepository(pool *pgxpool.Pool) portsrepo.SalaryCreditRepositoryFacade {
	return &PgxSalaryCreditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SalaryCreditRepositoryFacade = (*PgxSalaryCreditRepository)(nil)

var FULL_SALARY_CREDIT_SELECT_QUERY = `
SELECT
	sc.credit_id, sc.workspace_id, sc.project_id, sc.work_month, sc.credited_date,
	sc.amount, sc.notes,
	sc.created_at, sc.created_by, sc.last_updated_at, sc.last_updated_by
FROM salary_credits sc
`

func (r *PgxSalaryCreditRepository) getCredits(ctx context.Context, filterQuery string, args ...any) ([]domain.SalaryCredit, error) {
	query := FULL_SALARY_CREDIT_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query salary credits", err)
	}
	defer rows.Close()
	credits, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.SalaryCredit])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.SalaryCredit{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect salary credit rows", err)
	}
	return credits, nil
}

func (r *PgxSalaryCreditRepository) FindCreditByPeriod(ctx context.Context, projectID string, workMonth time.Time) (*domain.SalaryCredit, error) {
	credits, err := r.getCredits(ctx,
		`WHERE sc.project_id = $1 AND sc.work_month = $2`,
		projectID, domain.MonthStart(workMonth))
	if err != nil {
		return nil, err
	}
	if len(credits) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &credits[0], nil
}

func (r *PgxSalaryCreditRepository) ListCreditsByProjects(ctx context.Context, workspaceID string, projectIDs []string) ([]domain.SalaryCredit, error) {
	if len(projectIDs) == 0 {
		return []domain.SalaryCredit{}, nil
	}
	return r.getCredits(ctx,
		`WHERE sc.workspace_id = $1 AND sc.project_id = ANY($2) ORDER BY sc.work_month DESC;`,
		workspaceID, projectIDs)
}

func (r *PgxSalaryCreditRepository) SaveCredit(ctx context.Context, credit domain.SalaryCredit) error {
	query := `
		INSERT INTO salary_credits (
			credit_id, workspace_id, project_id, work_month, credited_date,
			amount, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		credit.CreditID,
		credit.WorkspaceID,
		credit.ProjectID,
		domain.MonthStart(credit.WorkMonth),
		credit.CreditedDate,
		credit.Amount,
		credit.Notes,
		credit.CreatedAt,
		credit.CreatedBy,
		credit.LastUpdatedAt,
		credit.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// The (project_id, work_month) unique constraint makes the
			// duplicate-period check race-free: two concurrent inserts for
			// the same period cannot both land.
			if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_salary_credits_project_work_month" {
				return apperrors.NewDuplicatePeriodError("a credit already exists for this project and work month")
			}
			if pgErr.Code == "23505" { // unique_violation on the primary key
				return apperrors.NewConflictError("credit ID " + credit.CreditID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("project does not exist in this workspace")
			}
		}
		return apperrors.NewAppError(500, "failed to save salary credit "+credit.CreditID, err)
	}
	return nil
}
