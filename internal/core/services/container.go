package services

import (
	"github.com/timekeep-hq/timekeep_app/internal/cache"
	portsrepo "github.com/timekeep-hq/timekeep_app/internal/core/ports/repositories"
	portssvc "github.com/timekeep-hq/timekeep_app/internal/core/ports/services"
	"github.com/timekeep-hq/timekeep_app/internal/platform/config"
	"github.com/timekeep-hq/timekeep_app/internal/tracking"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cacheSvc *cache.Service, trackingStore tracking.KV) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Workspace service first since every other service authorizes through it.
	container.Workspace = NewWorkspaceService(repos.WorkspaceRepo, repos.ClientRepo, repos.ProjectRepo, repos.SettingsRepo, cacheSvc)
	authorizer := container.Workspace.(portssvc.WorkspaceAuthorizerSvc)

	container.Settings = NewSettingsService(repos.SettingsRepo, repos.WorkspaceRepo, cacheSvc, authorizer)
	container.Client = NewClientService(repos.ClientRepo, cacheSvc, authorizer)
	container.Project = NewProjectService(repos.ProjectRepo, repos.ClientRepo, cacheSvc, authorizer)
	container.Timesheet = NewTimesheetService(repos.TimesheetRepo, repos.ProjectRepo, cacheSvc, authorizer)
	container.Template = NewTemplateService(repos.TemplateRepo, cacheSvc, authorizer)
	container.SalaryCredit = NewSalaryCreditService(repos.SalaryCreditRepo, repos.ProjectRepo, authorizer)
	container.Invoice = NewInvoiceService(
		repos.InvoiceRepo,
		repos.TemplateRepo,
		repos.ClientRepo,
		repos.ProjectRepo,
		repos.TimesheetRepo,
		container.Settings,
		container.SalaryCredit,
		cacheSvc,
		authorizer,
	)
	container.Export = NewExportService(repos.InvoiceRepo, repos.TemplateRepo, repos.ClientRepo, container.Settings, authorizer)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	container.Tracking = tracking.NewManager(trackingStore)

	return container
}
