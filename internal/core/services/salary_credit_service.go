package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/timekeep-hq/timekeep_app/internal/apperrors"
	"github.com/timekeep-hq/timekeep_app/internal/core/domain"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/dto"
)

// salaryCreditService implements the SalaryCreditSvcFacade interface.
//
// A credit marks one work month of a fixed-fee project as paid out. The
// manual path credits the month before the credited date; the automatic
// path, driven by invoices turning paid, credits the invoice's issue month.
type salaryCreditService struct {
	BaseService
	creditRepo  portsrepo.SalaryCreditRepositoryFacade
	projectRepo portsrepo.ProjectReader
}

// NewSalaryCreditService creates a new salary credit service with the provided dependencies.
func NewSalaryCreditService(creditRepo portsrepo.SalaryCreditRepositoryFacade, projectRepo portsrepo.ProjectReader, authorizer portssvc.WorkspaceAuthorizerSvc) portssvc.SalaryCreditSvcFacade {
	return &salaryCreditService{
		BaseService: BaseService{WorkspaceAuthorizer: authorizer},
		creditRepo:  creditRepo,
		projectRepo: projectRepo,
	}
}

var _ portssvc.SalaryCreditSvcFacade = (*salaryCreditService)(nil)

// MarkCredited records a manual credit for a fixed project. Crediting on
// any day of a month always targets the previous calendar month, so a
// payout arriving early or late in the month lands on the same work month.
func (s *salaryCreditService) MarkCredited(ctx context.Context, userID, workspaceID string, req dto.MarkCreditedRequest) (*domain.SalaryCredit, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindProjectByID(ctx, workspaceID, req.ProjectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationFailedError("project not found in workspace")
		}
		return nil, err
	}
	if !project.IsFixed() {
		return nil, apperrors.NewValidationFailedError("only fixed-billing projects can be credited")
	}

	// Floor to month start before stepping back: AddDate on a day-31 date
	// would normalize into the same month and misattribute the credit.
	workMonth := domain.MonthStart(req.CreditedDate).AddDate(0, -1, 0)

	// Pre-check for a friendly error message. The unique constraint on
	// (project_id, work_month) still backstops concurrent writers.
	if existing, err := s.creditRepo.FindCreditByPeriod(ctx, req.ProjectID, workMonth); err == nil && existing != nil {
		return nil, apperrors.NewDuplicatePeriodError("project already credited for " + workMonth.Format("2006-01"))
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	amount := project.FixedAmount
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, apperrors.NewValidationFailedError("amount must be positive")
		}
		amount = *req.Amount
	}

	credit := s.newCredit(workspaceID, req.ProjectID, workMonth, req.CreditedDate, amount, req.Notes, userID)
	if err := s.creditRepo.SaveCredit(ctx, credit); err != nil {
		if errors.Is(err, apperrors.ErrDuplicatePeriod) {
			return nil, apperrors.NewDuplicatePeriodError("project already credited for " + workMonth.Format("2006-01"))
		}
		s.LogError(ctx, err, "Failed to save salary credit",
			slog.String("project_id", req.ProjectID),
			slog.String("work_month", workMonth.Format("2006-01")))
		return nil, err
	}

	s.LogInfo(ctx, "Salary credit recorded",
		slog.String("credit_id", credit.CreditID),
		slog.String("project_id", req.ProjectID),
		slog.String("work_month", workMonth.Format("2006-01")))
	return &credit, nil
}

// RecordForPaidInvoice records credits for the fixed projects billed on an
// invoice that just turned paid. The work month is the invoice's issue
// month. Already-credited months are skipped silently; this path is
// best-effort and never returns an error that should fail the status change.
func (s *salaryCreditService) RecordForPaidInvoice(ctx context.Context, userID string, invoice *domain.Invoice) error {
	projects, err := s.projectRepo.ListProjectsByClient(ctx, invoice.WorkspaceID, invoice.ClientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list client projects for automatic credit",
			slog.String("invoice_id", invoice.InvoiceID))
		return err
	}

	workMonth := domain.MonthStart(invoice.DateIssued)
	for _, project := range projects {
		if !project.IsFixed() {
			continue
		}
		if _, err := s.creditRepo.FindCreditByPeriod(ctx, project.ProjectID, workMonth); err == nil {
			continue // month already credited
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to check existing credit",
				slog.String("project_id", project.ProjectID))
			continue
		}

		amount := project.FixedAmount
		if !amount.IsPositive() {
			amount = invoice.Total
		}
		credit := s.newCredit(invoice.WorkspaceID, project.ProjectID, workMonth, time.Now(), amount,
			"Auto-credited from invoice "+invoice.InvoiceNumber, userID)
		if err := s.creditRepo.SaveCredit(ctx, credit); err != nil {
			if errors.Is(err, apperrors.ErrDuplicatePeriod) {
				continue // lost a race, same outcome
			}
			s.LogError(ctx, err, "Failed to auto-record salary credit",
				slog.String("project_id", project.ProjectID),
				slog.String("invoice_id", invoice.InvoiceID))
			continue
		}
		s.LogInfo(ctx, "Salary credit auto-recorded from paid invoice",
			slog.String("credit_id", credit.CreditID),
			slog.String("project_id", project.ProjectID),
			slog.String("invoice_id", invoice.InvoiceID))
	}
	return nil
}

// ListCredits returns the credits for the given projects, newest first.
// An empty projectIDs list means all projects in the workspace.
func (s *salaryCreditService) ListCredits(ctx context.Context, userID, workspaceID string, projectIDs []string) ([]domain.SalaryCredit, error) {
	if err := s.AuthorizeUser(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	credits, err := s.creditRepo.ListCreditsByProjects(ctx, workspaceID, projectIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to list salary credits",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	if credits == nil {
		return []domain.SalaryCredit{}, nil
	}
	return credits, nil
}

func (s *salaryCreditService) newCredit(workspaceID, projectID string, workMonth, creditedDate time.Time, amount decimal.Decimal, notes, userID string) domain.SalaryCredit {
	now := time.Now()
	return domain.SalaryCredit{
		CreditID:     uuid.NewString(),
		WorkspaceID:  workspaceID,
		ProjectID:    projectID,
		WorkMonth:    workMonth,
		CreditedDate: creditedDate,
		Amount:       amount,
		Notes:        notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
}
