package services

import "github.com/timekeep-hq/timekeep_app/internal/tracking"

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what the
// handlers receive.
type ServiceContainer struct {
	User         UserSvcFacade
	Token        TokenSvcFacade
	GoogleOAuth  GoogleOAuthHandlerSvcFacade
	Workspace    WorkspaceSvcFacade
	Settings     SettingsSvcFacade
	Client       ClientSvcFacade
	Project      ProjectSvcFacade
	Timesheet    TimesheetSvcFacade
	Invoice      InvoiceSvcFacade
	SalaryCredit SalaryCreditSvcFacade
	Template     TemplateSvcFacade
	Export       ExportSvcFacade

	// Tracking is the per-user timer state machine. It is a concrete type:
	// its persistence boundary is already abstracted behind tracking.KV.
	Tracking *tracking.Manager
}
