package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		WorkspaceRepo:    newPgxWorkspaceRepository(dbPool),
		SettingsRepo:     newPgxSettingsRepository(dbPool),
		ClientRepo:       newPgxClientRepository(dbPool),
		ProjectRepo:      newPgxProjectRepository(dbPool),
		TimesheetRepo:    newPgxTimesheetRepository(dbPool),
		InvoiceRepo:      newPgxInvoiceRepository(dbPool),
		TemplateRepo:     newPgxTemplateRepository(dbPool),
		SalaryCreditRepo: newPgxSalaryCreditRepository(dbPool),
	}
}
