package repositories

import (
	"context"
	"time"

	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
)

// SalaryCreditReader defines read operations for salary credits.
type SalaryCreditReader interface {
	// FindCreditByPeriod returns the credit for (project, workMonth), or
	// apperrors.ErrNotFound when the period has not been credited.
	FindCreditByPeriod(ctx context.Context, projectID string, workMonth time.Time) (*domain.SalaryCredit, error)

	// ListCreditsByProjects returns all credits for the given projects,
	// newest work month first.
	ListCreditsByProjects(ctx context.Context, workspaceID string, projectIDs []string) ([]domain.SalaryCredit, error)
}

// SalaryCreditWriter defines write operations for salary credits.
type SalaryCreditWriter interface {
	// SaveCredit inserts a credit. The (project_id, work_month) unique
	// constraint maps violations to apperrors.ErrDuplicatePeriod.
	SaveCredit(ctx context.Context, credit domain.SalaryCredit) error
}

// SalaryCreditRepositoryFacade combines the salary credit repository interfaces.
type SalaryCreditRepositoryFacade interface {
	SalaryCreditReader
	SalaryCreditWriter
}
