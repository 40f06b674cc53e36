package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepositoryFacade
	WorkspaceRepo    WorkspaceRepositoryFacade
	SettingsRepo     WorkspaceSettingsRepository
	ClientRepo       ClientRepositoryFacade
	ProjectRepo      ProjectRepositoryFacade
	TimesheetRepo    TimesheetRepositoryFacade
	InvoiceRepo      InvoiceRepositoryFacade
	TemplateRepo     InvoiceTemplateRepository
	SalaryCreditRepo SalaryCreditRepositoryFacade
}
